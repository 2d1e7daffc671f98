// internal/record/writer.go
package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kpress-lab/collector/pkg/models"
)

// utf8BOM lets Excel on Korean Windows open the file without mojibake.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer appends six-field rows to a single CSV sink: UTF-8 with BOM, CRLF
// records, header written once. Open for the lifetime of a run.
type Writer struct {
	f      *os.File
	w      *csv.Writer
	rows   int
	closed bool
}

// NewWriter creates the output file, writes the BOM and header row.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true

	if err := w.Write(models.Columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush header: %w", err)
	}

	return &Writer{f: f, w: w}, nil
}

// Write appends one record in emission order. Errors are fatal to the run.
func (w *Writer) Write(rec models.Record) error {
	if err := w.w.Write(rec.Fields()); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns the number of records written, excluding the header.
func (w *Writer) Rows() int { return w.rows }

// Close flushes and closes the sink. Partial output is always a valid file.
// Closing an already-closed writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// Filename builds the run output name: <outlet>_전체_<YYYYMMDD_HHMMSS>.csv.
func Filename(outlet string, now time.Time) string {
	return fmt.Sprintf("%s_전체_%s.csv", outlet, now.Format("20060102_150405"))
}
