package batch

import "errors"

// Verdict is the outcome of validating one candidate.
type Verdict int

const (
	// Invalid marks a candidate that failed validation.
	Invalid Verdict = iota
	// Valid marks a candidate accepted as a CPF.
	Valid
)

// String returns the label written to the output sink.
func (v Verdict) String() string {
	if v == Valid {
		return "VALID"
	}
	return "INVALID"
}

// Record is one emitted (display value, verdict) pair.
//
// Value is the formatted CPF for valid records and the original,
// unmodified candidate for invalid ones. Index is the 1-based position of
// the record within its source, counting skipped records.
type Record struct {
	Index   int
	Value   string
	Verdict Verdict
}

// FileStats holds the counters for one source.
//
// Total counts every record read. When invalid records are not emitted,
// Total is greater than Valid+Invalid+Skipped.
type FileStats struct {
	Total   int
	Valid   int
	Invalid int
	Skipped int
}

// Add accumulates other into s.
func (s *FileStats) Add(other FileStats) {
	s.Total += other.Total
	s.Valid += other.Valid
	s.Invalid += other.Invalid
	s.Skipped += other.Skipped
}

// Result is the outcome of processing one source.
type Result struct {
	Source  string
	Records []Record
	Stats   FileStats
	Err     error // non-nil when the source could not be fully processed
}

// Failed reports whether the source failed for a reason other than an
// unsupported extension.
func (r *Result) Failed() bool {
	return r.Err != nil && !errors.Is(r.Err, ErrUnsupportedFormat)
}

// RunStats aggregates the results of a run.
type RunStats struct {
	FileStats
	Sources     int // sources with a supported extension
	Failed      int
	Unsupported int
}

// Totals aggregates the counters of all results.
func Totals(results []*Result) RunStats {
	var run RunStats
	for _, r := range results {
		if r == nil {
			continue
		}
		if errors.Is(r.Err, ErrUnsupportedFormat) {
			run.Unsupported++
			continue
		}
		run.Sources++
		if r.Failed() {
			run.Failed++
		}
		run.FileStats.Add(r.Stats)
	}
	return run
}
