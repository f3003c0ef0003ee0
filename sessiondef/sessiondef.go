// Package sessiondef parses the two session description inputs: repetition
// specs given on the command line and PiCave session definition files.
package sessiondef

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	intervals "github.com/lucasjlepore/interval-report"
)

// ParseDuration parses compound duration strings such as "30s", "1m" or
// "1m30s" into seconds. Whitespace between chunks is tolerated. A bare
// number has no unit and is an error.
func ParseDuration(s string) (int, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, fmt.Errorf("empty duration")
	}
	total := 0
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		if i >= len(rest) {
			return 0, fmt.Errorf("duration %q is missing a unit", s)
		}
		value, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		switch rest[i] {
		case 'm':
			total += value * 60
		case 's':
			total += value
		default:
			return 0, fmt.Errorf("invalid unit %q in duration %q", string(rest[i]), s)
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	return total, nil
}

// ParseReps converts command-line repetition arguments ("8x30s", "5m") into
// repetition groups, preserving argument order. Recovery entries are not
// part of the grammar: the detector budgets recovery itself.
func ParseReps(args []string) ([]intervals.RepetitionGroup, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one repetition is required")
	}
	groups := make([]intervals.RepetitionGroup, 0, len(args))
	for _, arg := range args {
		spec := strings.TrimSpace(arg)
		if strings.HasPrefix(spec, "-") {
			return nil, fmt.Errorf("recovery entry %q is not accepted in a reps spec", arg)
		}
		count := 1
		durn := spec
		if before, after, found := strings.Cut(spec, "x"); found {
			c, err := strconv.Atoi(strings.TrimSpace(before))
			if err != nil {
				return nil, fmt.Errorf("invalid repetition count in %q", arg)
			}
			count = c
			durn = after
		}
		seconds, err := ParseDuration(durn)
		if err != nil {
			return nil, fmt.Errorf("invalid repetition %q: %w", arg, err)
		}
		groups = append(groups, intervals.RepetitionGroup{Count: count, Duration: seconds})
	}
	return groups, nil
}

// picaveInterval is one entry of a PiCave session definition file.
type picaveInterval struct {
	Type     string `json:"type"`
	Effort   string `json:"effort"`
	Duration string `json:"duration"`
}

// ParsePiCaveFile reads a PiCave session definition from disk.
func ParsePiCaveFile(path string) ([]intervals.ExplicitSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session definition: %w", err)
	}
	segments, err := ParsePiCave(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// ParsePiCave parses a PiCave session definition: a JSON array of segments,
// each with a type ("MAX" or "%FTP"), an effort percentage and a duration.
// Offsets accumulate through the definition so each segment maps to its
// place in the session timeline. MAX segments carry intensity 100.
func ParsePiCave(data []byte) ([]intervals.ExplicitSegment, error) {
	var defs []picaveInterval
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse session definition: %w", err)
	}

	segments := make([]intervals.ExplicitSegment, 0, len(defs))
	offset := 0
	for i, def := range defs {
		seconds, err := ParseDuration(def.Duration)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		var intensity float64
		switch def.Type {
		case "MAX":
			intensity = 100
		case "%FTP":
			effort := strings.TrimSpace(def.Effort)
			if !strings.HasSuffix(effort, "%") {
				return nil, fmt.Errorf("segment %d: effort %q is not a percentage", i+1, def.Effort)
			}
			v, err := strconv.Atoi(strings.TrimSuffix(effort, "%"))
			if err != nil {
				return nil, fmt.Errorf("segment %d: effort %q: %w", i+1, def.Effort, err)
			}
			intensity = float64(v)
		default:
			return nil, fmt.Errorf("segment %d: unknown interval type %q", i+1, def.Type)
		}
		segments = append(segments, intervals.ExplicitSegment{
			Offset:       offset,
			Duration:     seconds,
			IntensityPct: intensity,
		})
		offset += seconds
	}
	return segments, nil
}
