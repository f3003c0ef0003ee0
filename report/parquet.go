package report

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	intervals "github.com/lucasjlepore/interval-report"
)

type readingRow struct {
	IntervalIndex int64 `parquet:"name=interval_index, type=INT64"`
	OffsetS       int64 `parquet:"name=offset_s, type=INT64"`
	PowerW        int64 `parquet:"name=power_w, type=INT64"`
}

// WriteReadingsParquet writes every interval's raw readings to a parquet
// file, one row per reading.
func WriteReadingsParquet(path string, stats intervals.Statistics) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(readingRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, iv := range stats.Intervals {
		for _, r := range iv.Readings {
			row := readingRow{
				IntervalIndex: int64(iv.Index),
				OffsetS:       int64(r.Offset),
				PowerW:        int64(r.Power),
			}
			if err := pw.Write(row); err != nil {
				_ = pw.WriteStop()
				_ = fw.Close()
				return err
			}
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
