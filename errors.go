package intervals

import "fmt"

// InvalidRepetitionSpecError reports a repetition group with a non-positive
// count or duration. Detected before any scanning.
type InvalidRepetitionSpecError struct {
	Group    int
	Count    int
	Duration int
}

func (e *InvalidRepetitionSpecError) Error() string {
	return fmt.Sprintf("invalid repetition spec: group %d has count %d and duration %ds", e.Group+1, e.Count, e.Duration)
}

// NoCandidateFoundError reports that no sample reached the interval power
// within the recovery budget while searching for one repetition.
type NoCandidateFoundError struct {
	RepIndex     int
	SearchedFrom int // sample index where the search for this repetition began
	FromOffset   int // seconds from session start at SearchedFrom
}

func (e *NoCandidateFoundError) Error() string {
	return fmt.Sprintf("repetition %d: no sample reached the interval power within the recovery budget (search began at sample %d, t=%ds)",
		e.RepIndex+1, e.SearchedFrom, e.FromOffset)
}

// WindowOutOfRangeError reports a confirmed candidate whose full-duration
// window would run past the end of the recording.
type WindowOutOfRangeError struct {
	RepIndex int
}

func (e *WindowOutOfRangeError) Error() string {
	return fmt.Sprintf("repetition %d: the required window runs past the end of the recording", e.RepIndex+1)
}

// DefinitionOutOfBoundsError reports a definition segment whose timestamps
// fall outside the recorded series.
type DefinitionOutOfBoundsError struct {
	Segment  int
	Offset   int
	Duration int
}

func (e *DefinitionOutOfBoundsError) Error() string {
	return fmt.Sprintf("definition segment %d (t=%ds, %ds long) falls outside the recorded series", e.Segment+1, e.Offset, e.Duration)
}

// MalformedDefinitionError reports a definition that violates ordering or
// non-overlap once mapped onto the series.
type MalformedDefinitionError struct {
	Segment int
	Reason  string
}

func (e *MalformedDefinitionError) Error() string {
	return fmt.Sprintf("malformed definition at segment %d: %s", e.Segment+1, e.Reason)
}
