package intervals

import "time"

// Sample is one power reading, offset in whole seconds from session start.
type Sample struct {
	Offset int `json:"offset_s"`
	Power  int `json:"power_w"`
}

// Series is the normalized power series for one session: ordered by offset,
// strictly increasing, gap-free, read-only once built.
type Series struct {
	StartTime time.Time
	Samples   []Sample
}

// SearchConfig holds the thresholds driving automatic interval detection.
// The zero value is not usable; start from DefaultSearchConfig.
type SearchConfig struct {
	// LongestRecovery bounds how many seconds of sub-threshold riding the
	// search tolerates between efforts before giving up on a repetition.
	LongestRecovery int
	// RecoveryDuration is the half-width, in seconds, of the refinement
	// range around a confirmed candidate start.
	RecoveryDuration int
	// IntervalPower is the minimum power, in watts, a sample must reach to
	// count toward a work interval.
	IntervalPower int
	// IntervalDuration is the contiguous seconds at or above IntervalPower
	// required to confirm a candidate.
	IntervalDuration int
}

// DefaultEffortThreshold is the %FTP at or above which a definition segment
// counts as an effort.
const DefaultEffortThreshold = 70.0

// DefaultSearchConfig returns the detection thresholds used when the caller
// supplies none.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		LongestRecovery:  301,
		RecoveryDuration: 10,
		IntervalPower:    250,
		IntervalDuration: 10,
	}
}

// Origin records how an interval was resolved.
type Origin int

const (
	OriginDetected Origin = iota
	OriginExplicit
)

func (o Origin) String() string {
	switch o {
	case OriginDetected:
		return "detected"
	case OriginExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Interval is one resolved work interval covering the half-open sample index
// range [Start, End).
type Interval struct {
	Start          int
	End            int
	TargetDuration int
	Origin         Origin
}
