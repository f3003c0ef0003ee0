package intervals

import (
	"fmt"
	"sort"
)

// ExplicitSegment is one pre-resolved segment from a session definition
// file: an offset and duration in seconds plus the segment's intensity as a
// percentage of the reference threshold power.
type ExplicitSegment struct {
	Offset       int
	Duration     int
	IntensityPct float64
}

// ResolveSegments converts the segments at or above effortThreshold into
// intervals without searching, mapping each segment's offsets onto sample
// indexes by timestamp lookup. The definition file is trusted but not
// blindly: segments outside the series fail with DefinitionOutOfBounds, and
// a resolved list that is not chronological and non-overlapping fails with
// MalformedDefinition.
func ResolveSegments(samples []Sample, segments []ExplicitSegment, effortThreshold float64) ([]Interval, error) {
	out := make([]Interval, 0, len(segments))
	for i, seg := range segments {
		if seg.IntensityPct < effortThreshold {
			continue
		}
		if seg.Duration <= 0 {
			return nil, &MalformedDefinitionError{Segment: i, Reason: fmt.Sprintf("non-positive duration %ds", seg.Duration)}
		}
		start, ok := indexAtOffset(samples, seg.Offset)
		if !ok {
			return nil, &DefinitionOutOfBoundsError{Segment: i, Offset: seg.Offset, Duration: seg.Duration}
		}
		end := start + seg.Duration
		if end > len(samples) {
			return nil, &DefinitionOutOfBoundsError{Segment: i, Offset: seg.Offset, Duration: seg.Duration}
		}
		if n := len(out); n > 0 && start < out[n-1].End {
			return nil, &MalformedDefinitionError{Segment: i, Reason: "overlaps the previous work segment"}
		}
		out = append(out, Interval{Start: start, End: end, TargetDuration: seg.Duration, Origin: OriginExplicit})
	}
	return out, nil
}

// indexAtOffset locates the sample recorded exactly at offset.
func indexAtOffset(samples []Sample, offset int) (int, bool) {
	i := sort.Search(len(samples), func(i int) bool { return samples[i].Offset >= offset })
	if i >= len(samples) || samples[i].Offset != offset {
		return 0, false
	}
	return i, true
}
