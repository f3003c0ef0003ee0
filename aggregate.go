package intervals

// IntervalStats summarizes one work interval, keeping the raw readings for
// confirmation reporting.
type IntervalStats struct {
	Index    int
	MaxPower int
	AvgPower float64
	Readings []Sample
}

// Statistics is the aggregate output for one session. WorkAvgPower is the
// mean over the concatenation of all interval windows, so longer intervals
// contribute proportionally more than shorter ones.
type Statistics struct {
	Intervals       []IntervalStats
	SessionMaxPower int
	WorkAvgPower    float64
}

// Aggregate computes per-interval and session statistics from the resolved
// interval list. An empty list yields empty statistics, not an error.
func Aggregate(samples []Sample, intervals []Interval) Statistics {
	stats := Statistics{Intervals: make([]IntervalStats, 0, len(intervals))}
	for _, s := range samples {
		if s.Power > stats.SessionMaxPower {
			stats.SessionMaxPower = s.Power
		}
	}

	workSum, workCount := 0, 0
	for i, iv := range intervals {
		window := samples[iv.Start:iv.End]
		maxPower, sum := 0, 0
		for _, s := range window {
			if s.Power > maxPower {
				maxPower = s.Power
			}
			sum += s.Power
		}
		workSum += sum
		workCount += len(window)
		stats.Intervals = append(stats.Intervals, IntervalStats{
			Index:    i + 1,
			MaxPower: maxPower,
			AvgPower: float64(sum) / float64(len(window)),
			Readings: window,
		})
	}
	if workCount > 0 {
		stats.WorkAvgPower = float64(workSum) / float64(workCount)
	}
	return stats
}
