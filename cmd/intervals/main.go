package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasjlepore/interval-report/pipeline"
)

type repsFlag []string

func (r *repsFlag) String() string { return strings.Join(*r, " ") }

func (r *repsFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	var reps repsFlag
	var (
		fitPath          = flag.String("fit", "", "Path to input .fit file")
		definition       = flag.String("definition", "", "PiCave session definition file")
		configPath       = flag.String("config", "", "YAML config file with analyzer defaults")
		effortThreshold  = flag.Float64("effort-threshold", 0, "Definition segments at or above this %FTP count as efforts")
		intervalPower    = flag.Int("interval-power", 0, "Minimum power to find when looking for an interval (watts)")
		intervalDuration = flag.Int("interval-duration", 0, "Contiguous seconds at or above interval-power to confirm an interval")
		recoveryDuration = flag.Int("recovery-duration", 0, "Half-width of the window refinement range (seconds)")
		longestRecovery  = flag.Int("longest-recovery", 0, "Longest recovery tolerated between efforts (seconds)")
		csvOut           = flag.Bool("csv", false, "Write output as CSV (default is plain text)")
		tsvOut           = flag.Bool("tsv", false, "Write output as TSV")
		parquetPath      = flag.String("parquet", "", "Also write raw interval readings to a parquet file")
		debug            = flag.Bool("debug", false, "Trace detector decisions to stderr")
	)
	flag.Var(&reps, "reps", "Repetition to detect, e.g. 8x30s (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s --fit input.fit (--reps 8x30s | --definition session.json) [--csv|--tsv] [flags]\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*fitPath) == "" {
		flag.Usage()
		os.Exit(2)
	}
	if (len(reps) == 0) == (*definition == "") {
		fmt.Fprintln(os.Stderr, "exactly one of --reps or --definition is required")
		os.Exit(2)
	}
	if *csvOut && *tsvOut {
		fmt.Fprintln(os.Stderr, "--csv and --tsv are mutually exclusive")
		os.Exit(2)
	}

	format := "text"
	if *csvOut {
		format = "csv"
	}
	if *tsvOut {
		format = "tsv"
	}

	var logger *slog.Logger
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	result, err := pipeline.Run(pipeline.Options{
		FitPath:          *fitPath,
		Reps:             reps,
		DefinitionPath:   *definition,
		ConfigPath:       *configPath,
		Format:           format,
		ParquetPath:      *parquetPath,
		EffortThreshold:  *effortThreshold,
		IntervalPower:    *intervalPower,
		IntervalDuration: *intervalDuration,
		RecoveryDuration: *recoveryDuration,
		LongestRecovery:  *longestRecovery,
		Out:              os.Stdout,
		Logger:           logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "intervals failed: %v\n", err)
		os.Exit(1)
	}

	if result.ParquetPath != "" {
		fmt.Fprintf(os.Stderr, "readings parquet: %s\n", result.ParquetPath)
	}
}
