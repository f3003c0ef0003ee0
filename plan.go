package intervals

// RepetitionGroup prescribes Count repetitions of Duration seconds each.
type RepetitionGroup struct {
	Count    int
	Duration int
}

// BuildPlan flattens an ordered sequence of repetition groups into the
// per-repetition target durations the detector consumes, preserving group
// order. Groups with mixed durations are allowed.
func BuildPlan(groups []RepetitionGroup) ([]int, error) {
	plan := make([]int, 0, len(groups))
	for i, g := range groups {
		if g.Count <= 0 || g.Duration <= 0 {
			return nil, &InvalidRepetitionSpecError{Group: i, Count: g.Count, Duration: g.Duration}
		}
		for r := 0; r < g.Count; r++ {
			plan = append(plan, g.Duration)
		}
	}
	return plan, nil
}
