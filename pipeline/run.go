// Package pipeline wires decoding, session description parsing, interval
// resolution and rendering into one run.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	intervals "github.com/lucasjlepore/interval-report"
	"github.com/lucasjlepore/interval-report/config"
	"github.com/lucasjlepore/interval-report/fitfile"
	"github.com/lucasjlepore/interval-report/report"
	"github.com/lucasjlepore/interval-report/sessiondef"
)

// Run executes the full analysis for one activity file and renders the
// statistics tables to opts.Out.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.FitPath) == "" {
		return nil, fmt.Errorf("fit path is required")
	}
	if (len(opts.Reps) == 0) == (opts.DefinitionPath == "") {
		return nil, fmt.Errorf("exactly one of a reps spec or a session definition is required")
	}
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, opts)

	series, err := fitfile.Load(opts.FitPath)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}

	resolved, err := resolveIntervals(series.Samples, cfg, opts)
	if err != nil {
		return nil, err
	}

	stats := intervals.Aggregate(series.Samples, resolved)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if err := report.Write(out, series, stats, format); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	result := &Result{Intervals: resolved, Statistics: stats}
	if opts.ParquetPath != "" {
		if err := report.WriteReadingsParquet(opts.ParquetPath, stats); err != nil {
			return nil, fmt.Errorf("write readings parquet: %w", err)
		}
		result.ParquetPath = opts.ParquetPath
	}
	return result, nil
}

func resolveIntervals(samples []intervals.Sample, cfg *config.Config, opts Options) ([]intervals.Interval, error) {
	if len(opts.Reps) > 0 {
		groups, err := sessiondef.ParseReps(opts.Reps)
		if err != nil {
			return nil, err
		}
		plan, err := intervals.BuildPlan(groups)
		if err != nil {
			return nil, err
		}
		detector := intervals.NewDetector(cfg.EngineSearchConfig(), opts.Logger)
		return detector.Detect(samples, plan)
	}

	segments, err := sessiondef.ParsePiCaveFile(opts.DefinitionPath)
	if err != nil {
		return nil, err
	}
	return intervals.ResolveSegments(samples, segments, cfg.EffortThreshold)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.IntervalPower > 0 {
		cfg.Search.IntervalPower = opts.IntervalPower
	}
	if opts.IntervalDuration > 0 {
		cfg.Search.IntervalDuration = opts.IntervalDuration
	}
	if opts.RecoveryDuration > 0 {
		cfg.Search.RecoveryDuration = opts.RecoveryDuration
	}
	if opts.LongestRecovery > 0 {
		cfg.Search.LongestRecovery = opts.LongestRecovery
	}
	if opts.EffortThreshold > 0 {
		cfg.EffortThreshold = opts.EffortThreshold
	}
}
