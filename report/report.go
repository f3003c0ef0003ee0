// Package report renders interval statistics as plain-text, CSV or TSV
// tables, and exports raw readings to parquet.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	intervals "github.com/lucasjlepore/interval-report"
)

type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatTSV
)

// ParseFormat maps a format name to its Format. An empty name means plain
// text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return FormatText, fmt.Errorf("unsupported format %q (expected text|csv|tsv)", s)
	}
}

// Write renders the three statistics tables (per-interval maximum power,
// per-interval average power and the raw readings), each with a trailing
// session summary row. The session column is headed by the recording date.
func Write(w io.Writer, series intervals.Series, stats intervals.Statistics, format Format) error {
	day := series.StartTime.Format("2006-01-02")

	maxTable := [][]string{{"", day}}
	avgTable := [][]string{{"", day}}
	for _, iv := range stats.Intervals {
		label := fmt.Sprintf("Interval %d", iv.Index)
		maxTable = append(maxTable, []string{label, strconv.Itoa(iv.MaxPower)})
		avgTable = append(avgTable, []string{label, fmt.Sprintf("%.1f", iv.AvgPower)})
	}
	if len(stats.Intervals) > 0 {
		maxTable = append(maxTable, []string{"Session", strconv.Itoa(stats.SessionMaxPower)})
		avgTable = append(avgTable, []string{"Session", fmt.Sprintf("%.1f", stats.WorkAvgPower)})
	}

	readings := [][]string{{"", day + " offset", day + " reading"}}
	for _, iv := range stats.Intervals {
		for i, r := range iv.Readings {
			readings = append(readings, []string{strconv.Itoa(i + 1), strconv.Itoa(r.Offset), strconv.Itoa(r.Power)})
		}
		if format == FormatText {
			readings = append(readings, []string{"", "---", "---"})
		}
	}

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"Maximum power", maxTable},
		{"Average power", avgTable},
		{"Power readings", readings},
	}
	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, section.title); err != nil {
			return err
		}
		if err := writeTable(w, section.rows, format); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, rows [][]string, format Format) error {
	switch format {
	case FormatCSV, FormatTSV:
		cw := csv.NewWriter(w)
		if format == FormatTSV {
			cw.Comma = '\t'
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return tw.Flush()
	}
}
