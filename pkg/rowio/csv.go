// Package rowio writes pkg/fleetsim.Row batches to disk. It is deliberately the only place in
// the module that knows about a concrete file format: no library in the example corpus this
// generator is built from offers a columnar Parquet/Arrow writer, so CSV is the columnar
// format actually reachable with the available stack (encoding/csv, matching the teacher's
// preference for standard-library encoders wherever no richer library is in reach).
package rowio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dieselfleet/simgen/internal/simerrors"
	"github.com/dieselfleet/simgen/pkg/fleetsim"
	"github.com/dieselfleet/simgen/pkg/retry"
)

// WriteTruckDay writes one truck-day's rows to path via an atomic temp-file + rename, the
// same discipline the teacher's RunDir uses for its scenario/report files (§5, §6.4). A
// transient write failure is retried once before surfacing as a *simerrors.IOError (§7).
func WriteTruckDay(path string, rows []fleetsim.Row) error {
	return retry.Do(context.Background(), retry.IOConfig(), func(ctx context.Context) error {
		return writeOnce(path, rows)
	})
}

func writeOnce(path string, rows []fleetsim.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return simerrors.NewIOError("mkdir rows dir", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return simerrors.NewIOError("create row file", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(fleetsim.Header()); err != nil {
		f.Close()
		os.Remove(tmp)
		return simerrors.NewIOError("write row header", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			f.Close()
			os.Remove(tmp)
			return simerrors.NewIOError("write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return simerrors.NewIOError("flush row file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return simerrors.NewIOError("close row file", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return simerrors.NewIOError("rename row file", err)
	}
	return nil
}

// ReadTruckDay reads back a previously written truck-day CSV, used by the CLI's post-run
// validation pass (whose summary pkg/genreport prints). It returns the raw string records (header first), since the
// caller only needs the label columns for class-distribution checks, not the full 221
// feature columns reparsed into float64.
func ReadTruckDay(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, simerrors.NewIOError("open row file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, simerrors.NewIOError("read row file", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("row file %s is empty", path)
	}
	return records, nil
}
