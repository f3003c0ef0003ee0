package fitfile

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/tormoder/fit"
)

// buildActivityFIT encodes an activity file with one power record per entry
// of powers, one second apart. Indexes in skip get no record at all.
func buildActivityFIT(t *testing.T, start time.Time, powers []uint16, skip map[int]bool) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	event := fit.NewEventMsg()
	event.Timestamp = start
	event.Event = fit.EventTimer
	event.EventType = fit.EventTypeStart
	activity.Events = append(activity.Events, event)

	for i, p := range powers {
		if skip[i] {
			continue
		}
		record := fit.NewRecordMsg()
		record.Timestamp = start.Add(time.Duration(i) * time.Second)
		record.Power = p
		activity.Records = append(activity.Records, record)
	}

	stop := fit.NewEventMsg()
	stop.Timestamp = start.Add(time.Duration(len(powers)) * time.Second)
	stop.Event = fit.EventTimer
	stop.EventType = fit.EventTypeStop
	activity.Events = append(activity.Events, stop)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBuildsContiguousSeries(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	powers := make([]uint16, 60)
	for i := range powers {
		powers[i] = uint16(100 + i)
	}
	data := buildActivityFIT(t, start, powers, nil)

	series, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !series.StartTime.Equal(start) {
		t.Fatalf("start time = %v, want %v", series.StartTime, start)
	}
	if len(series.Samples) != 60 {
		t.Fatalf("got %d samples, want 60", len(series.Samples))
	}
	for i, s := range series.Samples {
		if s.Offset != i {
			t.Fatalf("sample %d has offset %d, want %d", i, s.Offset, i)
		}
		if s.Power != 100+i {
			t.Fatalf("sample %d has power %d, want %d", i, s.Power, 100+i)
		}
	}
}

func TestDecodeFillsShortGaps(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	powers := make([]uint16, 40)
	for i := range powers {
		powers[i] = 200
	}
	powers[29] = 180
	data := buildActivityFIT(t, start, powers, map[int]bool{30: true, 31: true})

	series, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(series.Samples) != 40 {
		t.Fatalf("got %d samples, want 40 (gap filled)", len(series.Samples))
	}
	// The filled seconds repeat the reading before the gap.
	if series.Samples[30].Power != 180 || series.Samples[31].Power != 180 {
		t.Fatalf("filled powers = %d, %d, want 180, 180", series.Samples[30].Power, series.Samples[31].Power)
	}
	if series.Samples[32].Power != 200 {
		t.Fatalf("power after gap = %d, want 200", series.Samples[32].Power)
	}
}

func TestDecodeRejectsLongGaps(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	powers := make([]uint16, 120)
	for i := range powers {
		powers[i] = 200
	}
	skip := make(map[int]bool)
	for i := 40; i < 80; i++ {
		skip[i] = true
	}
	data := buildActivityFIT(t, start, powers, skip)

	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("Decode() succeeded across a 40s recording gap, want error")
	}
}

func TestDecodeRequiresPowerSamples(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}
	// A record without power carries the invalid sentinel and must be
	// dropped, leaving nothing to analyze.
	record := fit.NewRecordMsg()
	record.Timestamp = start
	activity.Records = append(activity.Records, record)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}

	if _, err := Decode(&buf); err == nil {
		t.Fatal("Decode() succeeded without power samples, want error")
	}
}
