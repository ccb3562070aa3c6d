// Package sink writes emitted verdict records to a flat CSV file.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
)

// CSV writes one [value, VALID|INVALID] row per record.
//
// Rows are flushed as they are written so the file reflects every record
// emitted so far, even if the run stops early.
type CSV struct {
	w      *csv.Writer
	closer io.Closer
	path   string
	rows   int
}

// Create opens path for writing, truncating any existing content.
func Create(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	s := NewCSV(f)
	s.closer = f
	s.path = path
	return s, nil
}

// NewCSV writes rows to w. Closing the returned sink does not close w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// Write appends rec as a row.
func (s *CSV) Write(rec batch.Record) error {
	if err := s.w.Write([]string{rec.Value, rec.Verdict.String()}); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	s.rows++
	return nil
}

// Rows returns the number of rows written.
func (s *CSV) Rows() int {
	return s.rows
}

// Path returns the file path, or "" for sinks created with NewCSV.
func (s *CSV) Path() string {
	return s.path
}

// Close flushes pending output and closes the underlying file.
func (s *CSV) Close() error {
	s.w.Flush()
	flushErr := s.w.Error()

	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return nil
}
