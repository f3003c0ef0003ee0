package pipeline

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tormoder/fit"

	intervals "github.com/lucasjlepore/interval-report"
)

// writeSessionFIT encodes a session of two hard efforts separated by easy
// riding and returns the path of the activity file: 10s at 50W, 32s at
// 220W, 30s at 60W, 30s at 230W and 9s at 50W.
func writeSessionFIT(t *testing.T) string {
	t.Helper()

	var powers []uint16
	appendBlock := func(n int, p uint16) {
		for i := 0; i < n; i++ {
			powers = append(powers, p)
		}
	}
	appendBlock(10, 50)
	appendBlock(32, 220)
	appendBlock(30, 60)
	appendBlock(30, 230)
	appendBlock(9, 50)

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, p := range powers {
		record := fit.NewRecordMsg()
		record.Timestamp = start.Add(time.Duration(i) * time.Second)
		record.Power = p
		activity.Records = append(activity.Records, record)
	}

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	path := filepath.Join(t.TempDir(), "session.fit")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fit: %v", err)
	}
	return path
}

func TestRunWithRepsSpec(t *testing.T) {
	var out bytes.Buffer
	result, err := Run(Options{
		FitPath:          writeSessionFIT(t),
		Reps:             []string{"2x30s"},
		Format:           "csv",
		IntervalPower:    200,
		IntervalDuration: 10,
		RecoveryDuration: 5,
		LongestRecovery:  120,
		Out:              &out,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []intervals.Interval{
		{Start: 10, End: 40, TargetDuration: 30, Origin: intervals.OriginDetected},
		{Start: 72, End: 102, TargetDuration: 30, Origin: intervals.OriginDetected},
	}
	if diff := cmp.Diff(want, result.Intervals); diff != "" {
		t.Fatalf("intervals mismatch (-want +got):\n%s", diff)
	}
	if result.Statistics.SessionMaxPower != 230 {
		t.Fatalf("SessionMaxPower = %d, want 230", result.Statistics.SessionMaxPower)
	}
	if result.Statistics.WorkAvgPower != 225 {
		t.Fatalf("WorkAvgPower = %v, want 225", result.Statistics.WorkAvgPower)
	}
	for _, row := range []string{"Session,230\n", "Session,225.0\n", "Interval 1,220\n", "Interval 2,230\n"} {
		if !strings.Contains(out.String(), row) {
			t.Fatalf("output missing row %q:\n%s", row, out.String())
		}
	}
}

func TestRunWithSessionDefinition(t *testing.T) {
	definition := `[
		{"type": "%FTP", "effort": "50%", "duration": "10s"},
		{"type": "MAX", "effort": "100%", "duration": "30s"},
		{"type": "%FTP", "effort": "50%", "duration": "32s"},
		{"type": "%FTP", "effort": "90%", "duration": "30s"}
	]`
	defPath := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(defPath, []byte(definition), 0o644); err != nil {
		t.Fatalf("write definition: %v", err)
	}

	var out bytes.Buffer
	result, err := Run(Options{
		FitPath:        writeSessionFIT(t),
		DefinitionPath: defPath,
		Format:         "csv",
		Out:            &out,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []intervals.Interval{
		{Start: 10, End: 40, TargetDuration: 30, Origin: intervals.OriginExplicit},
		{Start: 72, End: 102, TargetDuration: 30, Origin: intervals.OriginExplicit},
	}
	if diff := cmp.Diff(want, result.Intervals); diff != "" {
		t.Fatalf("intervals mismatch (-want +got):\n%s", diff)
	}
	if result.Statistics.SessionMaxPower != 230 {
		t.Fatalf("SessionMaxPower = %d, want 230", result.Statistics.SessionMaxPower)
	}
}

func TestRunWritesParquet(t *testing.T) {
	parquetPath := filepath.Join(t.TempDir(), "readings.parquet")
	result, err := Run(Options{
		FitPath:          writeSessionFIT(t),
		Reps:             []string{"2x30s"},
		IntervalPower:    200,
		IntervalDuration: 10,
		RecoveryDuration: 5,
		LongestRecovery:  120,
		ParquetPath:      parquetPath,
		Out:              &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.ParquetPath != parquetPath {
		t.Fatalf("ParquetPath = %q, want %q", result.ParquetPath, parquetPath)
	}
	info, err := os.Stat(parquetPath)
	if err != nil {
		t.Fatalf("stat parquet: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("parquet file is empty")
	}
}

func TestRunRejectsAmbiguousSessionInput(t *testing.T) {
	fitPath := writeSessionFIT(t)

	if _, err := Run(Options{FitPath: fitPath}); err == nil {
		t.Fatal("Run() with neither reps nor definition succeeded, want error")
	}
	if _, err := Run(Options{FitPath: fitPath, Reps: []string{"2x30s"}, DefinitionPath: "session.json"}); err == nil {
		t.Fatal("Run() with both reps and definition succeeded, want error")
	}
	if _, err := Run(Options{Reps: []string{"2x30s"}}); err == nil {
		t.Fatal("Run() without a fit path succeeded, want error")
	}
	if _, err := Run(Options{FitPath: fitPath, Reps: []string{"2x30s"}, Format: "xml"}); err == nil {
		t.Fatal("Run() with an unknown format succeeded, want error")
	}
}
