// Package fitfile decodes FIT activity files into the normalized power
// series consumed by the interval engine.
package fitfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/tormoder/fit"

	intervals "github.com/lucasjlepore/interval-report"
)

// maxGapFill is the widest recording gap, in seconds, filled by repeating
// the previous reading. Wider gaps mean the recording stopped and the series
// cannot be normalized.
const maxGapFill = 30

// Load decodes the activity at path and returns its normalized power series.
func Load(path string) (intervals.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return intervals.Series{}, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	series, err := Decode(f)
	if err != nil {
		return intervals.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// Decode reads a FIT activity stream and extracts its record-message power
// readings: sorted by timestamp, invalid sentinels dropped, duplicate
// timestamps collapsed, sub-30s gaps filled with the previous reading.
func Decode(r io.Reader) (intervals.Series, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return intervals.Series{}, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return intervals.Series{}, fmt.Errorf("activity FIT expected: %w", err)
	}
	return buildSeries(activity.Records)
}

type reading struct {
	ts    time.Time
	power int
}

func buildSeries(records []*fit.RecordMsg) (intervals.Series, error) {
	rows := make([]reading, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Power == math.MaxUint16 {
			continue
		}
		if rec.Timestamp.IsZero() || fit.IsBaseTime(rec.Timestamp) {
			continue
		}
		rows = append(rows, reading{ts: rec.Timestamp, power: int(rec.Power)})
	}
	if len(rows) == 0 {
		return intervals.Series{}, fmt.Errorf("activity has no power samples")
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ts.Before(rows[j].ts)
	})

	start := rows[0].ts
	samples := make([]intervals.Sample, 0, len(rows))
	for _, row := range rows {
		offset := int(row.ts.Sub(start) / time.Second)
		if n := len(samples); n > 0 {
			prev := samples[n-1]
			if offset == prev.Offset {
				// Duplicate timestamp: the first reading wins.
				continue
			}
			if gap := offset - prev.Offset - 1; gap > 0 {
				if gap > maxGapFill {
					return intervals.Series{}, fmt.Errorf("recording gap of %ds at t=%ds is too large to fill", gap, prev.Offset)
				}
				for g := prev.Offset + 1; g < offset; g++ {
					samples = append(samples, intervals.Sample{Offset: g, Power: prev.Power})
				}
			}
		}
		samples = append(samples, intervals.Sample{Offset: offset, Power: row.power})
	}
	return intervals.Series{StartTime: start, Samples: samples}, nil
}
