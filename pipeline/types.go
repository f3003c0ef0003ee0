package pipeline

import (
	"io"
	"log/slog"

	intervals "github.com/lucasjlepore/interval-report"
)

// Options configures one analysis run. Exactly one of Reps or
// DefinitionPath must be set.
type Options struct {
	FitPath        string
	Reps           []string // repetition spec arguments, e.g. "8x30s"
	DefinitionPath string   // PiCave session definition file
	ConfigPath     string   // optional YAML defaults file
	Format         string   // text|csv|tsv
	ParquetPath    string   // optional raw-readings parquet output

	// Threshold overrides; zero values keep the configured defaults.
	EffortThreshold  float64
	IntervalPower    int
	IntervalDuration int
	RecoveryDuration int
	LongestRecovery  int

	Out    io.Writer    // rendered tables, defaults to os.Stdout
	Logger *slog.Logger // detector debug trace, nil disables
}

// Result summarizes one completed run.
type Result struct {
	Intervals   []intervals.Interval
	Statistics  intervals.Statistics
	ParquetPath string
}
