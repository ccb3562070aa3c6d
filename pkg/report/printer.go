// Package report prints validation progress and summaries for the operator.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gookit/color"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
)

const bannerArt = `  __________  ______   ____                           __
  / ____/ __ \/ ____/  /  _/___  _________  ___  _____/ /_____  _____
 / /   / /_/ / /_      / // __ \/ ___/ __ \/ _ \/ ___/ __/ __ \/ ___/
/ /___/ ____/ __/    _/ // / / (__  ) /_/ /  __/ /__/ /_/ /_/ / /
\____/_/   /_/      /___/_/ /_/____/ .___/\___/\___/\__/\____/_/
`

// Banner returns the text printed once before processing starts.
func Banner(version string) string {
	return bannerArt + "                                  /_/ by:richardbrandao(git) ver: " + version + "\n"
}

// Printer writes human-readable progress to out and diagnostics to errOut.
// It implements batch.Reporter.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	colorize bool
}

// NewPrinter creates a Printer. When colorize is true, verdict markers are
// coloured green and red if the terminal supports it.
func NewPrinter(out, errOut io.Writer, colorize bool) *Printer {
	return &Printer{
		out:      out,
		errOut:   errOut,
		colorize: colorize,
	}
}

// SourceStarted prints the header of a source.
func (p *Printer) SourceStarted(source string) {
	_, _ = fmt.Fprintf(p.out, "Processing file: %s\n", filepath.Base(source))
}

// Record prints one emitted record.
func (p *Printer) Record(_ string, rec batch.Record) {
	_, _ = fmt.Fprintf(p.out, "%4d. %s - [%s]\n", rec.Index, rec.Value, p.marker(rec.Verdict))
}

// SourceFinished prints the counters of a source, and a notice when a
// valid-only run found nothing.
func (p *Printer) SourceFinished(result *batch.Result, emitInvalid bool) {
	stats := result.Stats
	line := fmt.Sprintf("Total: %d | Valid: %d | Invalid: %d", stats.Total, stats.Valid, stats.Invalid)
	if stats.Skipped > 0 {
		line += fmt.Sprintf(" | Skipped: %d", stats.Skipped)
	}
	_, _ = fmt.Fprintln(p.out, line)

	if !emitInvalid && stats.Valid == 0 {
		_, _ = fmt.Fprintf(p.out, "[!] No valid CPFs found in %s\n", filepath.Base(result.Source))
	}
	_, _ = fmt.Fprintln(p.out)
}

// SourceFailed prints why a source could not be processed.
func (p *Printer) SourceFailed(_ string, err error) {
	_, _ = fmt.Fprintf(p.errOut, "[!] %v\n", err)
}

// Unsupported prints a notice for a skipped file.
func (p *Printer) Unsupported(source string) {
	_, _ = fmt.Fprintf(p.errOut, "[!] Unsupported format, skipping: %s\n", source)
}

// RunSummary prints the totals of a directory run.
func (p *Printer) RunSummary(run batch.RunStats) {
	_, _ = fmt.Fprintf(p.out, "Files: %d | Failed: %d | Unsupported: %d\n", run.Sources, run.Failed, run.Unsupported)
	_, _ = fmt.Fprintf(p.out, "Records: %d | Valid: %d | Invalid: %d | Skipped: %d\n",
		run.Total, run.Valid, run.Invalid, run.Skipped)
}

// OutputWritten reports where results were saved.
func (p *Printer) OutputWritten(path string, rows int) {
	_, _ = fmt.Fprintf(p.out, "Results saved to %s (%d rows)\n", path, rows)
}

// Check prints the verdict for a value given on the command line.
func (p *Printer) Check(value, display string, verdict batch.Verdict) {
	if verdict == batch.Valid && display != value {
		_, _ = fmt.Fprintf(p.out, "%s -> %s - [%s]\n", value, display, p.marker(verdict))
		return
	}
	_, _ = fmt.Fprintf(p.out, "%s - [%s]\n", value, p.marker(verdict))
}

func (p *Printer) marker(v batch.Verdict) string {
	label := v.String()
	if !p.colorize {
		return label
	}
	if v == batch.Valid {
		return color.Green.Sprint(label)
	}
	return color.Red.Sprint(label)
}
