package intervals

import (
	"io"
	"log/slog"
)

// Detector locates one work interval per plan entry by scanning the series
// forward. Each repetition is resolved in three phases: seek a sample at the
// interval power, confirm the effort holds for the confirmation duration,
// then refine the window start within the configured range to the
// highest-mean placement.
type Detector struct {
	cfg SearchConfig
	log *slog.Logger
}

// NewDetector returns a detector for one run. A non-nil logger receives a
// debug trace of every seek/confirm/refine decision; tracing never changes
// the resulting interval list.
func NewDetector(cfg SearchConfig, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{cfg: cfg, log: logger}
}

// Detect resolves every target duration in plan, in order, searching forward
// from the previous interval's end. The returned list is chronological and
// non-overlapping, with exactly one interval per plan entry. Detection is all
// or nothing: if any repetition cannot be resolved, no partial result is
// returned.
func (d *Detector) Detect(samples []Sample, plan []int) ([]Interval, error) {
	out := make([]Interval, 0, len(plan))
	cursor := 0
	for i, target := range plan {
		iv, err := d.detectOne(samples, i, target, cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
		cursor = iv.End
	}
	return out, nil
}

func (d *Detector) detectOne(samples []Sample, rep, target, cursor int) (Interval, error) {
	fromOffset := 0
	if cursor < len(samples) {
		fromOffset = samples[cursor].Offset
	} else if len(samples) > 0 {
		fromOffset = samples[len(samples)-1].Offset
	}
	noCandidate := func() (Interval, error) {
		return Interval{}, &NoCandidateFoundError{RepIndex: rep, SearchedFrom: cursor, FromOffset: fromOffset}
	}

	i := cursor
	for {
		// Seek: advance while below the interval power, spending the single
		// recovery budget for this repetition.
		for {
			if i >= len(samples) {
				d.log.Debug("series exhausted while seeking", "rep", rep, "from", fromOffset)
				return noCandidate()
			}
			if samples[i].Power >= d.cfg.IntervalPower {
				break
			}
			if samples[i].Offset-fromOffset > d.cfg.LongestRecovery {
				d.log.Debug("recovery budget exhausted",
					"rep", rep, "from", fromOffset, "at", samples[i].Offset, "budget", d.cfg.LongestRecovery)
				return noCandidate()
			}
			i++
		}

		// Confirm: the streak must hold the threshold for the confirmation
		// duration without a contiguity break.
		start0 := i
		streakStart := samples[start0].Offset
		d.log.Debug("candidate", "rep", rep, "at", streakStart, "power", samples[start0].Power)
		confirmed := false
		for i < len(samples) && samples[i].Power >= d.cfg.IntervalPower {
			if samples[i].Offset-streakStart+1 >= d.cfg.IntervalDuration {
				confirmed = true
				break
			}
			i++
		}
		if confirmed {
			d.log.Debug("candidate confirmed", "rep", rep, "start0", streakStart)
			return d.refine(samples, rep, target, cursor, start0)
		}
		if i >= len(samples) {
			d.log.Debug("series exhausted mid-streak", "rep", rep, "candidate", streakStart)
			return noCandidate()
		}
		// False start: the streak broke early. Resume seeking from the break
		// without resetting the recovery budget.
		d.log.Debug("false start", "rep", rep, "candidate", streakStart, "broke", samples[i].Offset)
	}
}

// refine evaluates every window of length target whose start lies within
// RecoveryDuration samples of start0, clipped to the series bounds and to the
// previous interval's end, and picks the one with the highest mean power.
// A rolling sum keeps the scan linear; ties resolve to the earliest start.
func (d *Detector) refine(samples []Sample, rep, target, prevEnd, start0 int) (Interval, error) {
	lo := start0 - d.cfg.RecoveryDuration
	if lo < prevEnd {
		lo = prevEnd
	}
	if lo < 0 {
		lo = 0
	}
	hi := start0 + d.cfg.RecoveryDuration
	if last := len(samples) - target; hi > last {
		hi = last
	}
	if hi < lo {
		d.log.Debug("no window fits", "rep", rep, "start0", samples[start0].Offset, "target", target)
		return Interval{}, &WindowOutOfRangeError{RepIndex: rep}
	}

	sum := 0
	for _, s := range samples[lo : lo+target] {
		sum += s.Power
	}
	bestStart, bestSum := lo, sum
	for s := lo + 1; s <= hi; s++ {
		sum += samples[s+target-1].Power - samples[s-1].Power
		if sum > bestSum {
			bestStart, bestSum = s, sum
		}
	}
	d.log.Debug("window refined",
		"rep", rep, "start", samples[bestStart].Offset, "end", samples[bestStart].Offset+target,
		"mean", float64(bestSum)/float64(target), "candidates", hi-lo+1)
	return Interval{Start: bestStart, End: bestStart + target, TargetDuration: target, Origin: OriginDetected}, nil
}
