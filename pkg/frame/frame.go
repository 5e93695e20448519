// Package frame holds a minimal in-memory tabular frame used to stage
// prediction inputs. Values are untyped strings; the serving container does
// its own type inference.
package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Frame is an ordered set of named columns over string records.
type Frame struct {
	Columns []string
	Records [][]string
}

// New builds a frame and validates record widths against the header.
func New(columns []string, records [][]string) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("frame: no columns")
	}
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("frame: record %d has %d fields, want %d", i, len(rec), len(columns))
		}
	}
	return &Frame{Columns: columns, Records: records}, nil
}

// ReadCSV parses a frame from CSV with a header row.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("frame: empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("frame: read CSV header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("frame: read CSV records: %w", err)
	}

	return New(header, records)
}

// LoadCSVFile reads a frame from a CSV file on disk.
func LoadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frame: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// Len returns the number of records.
func (f *Frame) Len() int {
	return len(f.Records)
}

// WriteCSV writes the frame as CSV with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("frame: write CSV header: %w", err)
	}
	for i, rec := range f.Records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("frame: write CSV record %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("frame: flush CSV: %w", err)
	}
	return nil
}

// WriteParquet writes the frame as a Parquet file with one required string
// column per frame column. The schema is built dynamically from the header.
func (f *Frame) WriteParquet(w io.Writer) error {
	group := parquet.Group{}
	for _, col := range f.Columns {
		group[col] = parquet.String()
	}
	schema := parquet.NewSchema("frame", group)

	pw := parquet.NewGenericWriter[map[string]any](w, schema)

	rows := make([]map[string]any, 0, len(f.Records))
	for _, rec := range f.Records {
		row := make(map[string]any, len(f.Columns))
		for i, col := range f.Columns {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return fmt.Errorf("frame: write parquet rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("frame: close parquet writer: %w", err)
	}
	return nil
}
