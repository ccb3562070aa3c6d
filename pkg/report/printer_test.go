package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
)

func newTestPrinter(colorize bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, colorize), &out, &errOut
}

func TestBanner(t *testing.T) {
	banner := Banner("1.2.3")

	assert.True(t, strings.HasPrefix(banner, bannerArt))
	assert.True(t, strings.HasSuffix(banner, "/_/ by:richardbrandao(git) ver: 1.2.3\n"))
	assert.Equal(t, 6, strings.Count(banner, "\n"))
	assert.Equal(t, banner, Banner("1.2.3"))
	assert.NotEqual(t, banner, Banner("2.0.0"))
}

func TestPrinter_SourceLifecycle(t *testing.T) {
	p, out, errOut := newTestPrinter(false)

	p.SourceStarted("data/people.csv")
	p.Record("data/people.csv", batch.Record{Index: 1, Value: "529.982.247-25", Verdict: batch.Valid})
	p.Record("data/people.csv", batch.Record{Index: 12, Value: "bad", Verdict: batch.Invalid})
	p.SourceFinished(&batch.Result{
		Source: "data/people.csv",
		Stats:  batch.FileStats{Total: 3, Valid: 1, Invalid: 1, Skipped: 1},
	}, true)

	assert.Equal(t, "Processing file: people.csv\n"+
		"   1. 529.982.247-25 - [VALID]\n"+
		"  12. bad - [INVALID]\n"+
		"Total: 3 | Valid: 1 | Invalid: 1 | Skipped: 1\n\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPrinter_NoValidNotice(t *testing.T) {
	tests := []struct {
		name        string
		emitInvalid bool
		valid       int
		wantNotice  bool
	}{
		{"valid only without matches", false, 0, true},
		{"valid only with matches", false, 2, false},
		{"all records without matches", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, _ := newTestPrinter(false)
			p.SourceFinished(&batch.Result{
				Source: "a.csv",
				Stats:  batch.FileStats{Total: 2, Valid: tt.valid},
			}, tt.emitInvalid)

			if tt.wantNotice {
				assert.Contains(t, out.String(), "[!] No valid CPFs found in a.csv")
			} else {
				assert.NotContains(t, out.String(), "No valid CPFs")
			}
		})
	}
}

func TestPrinter_Diagnostics(t *testing.T) {
	p, out, errOut := newTestPrinter(false)

	p.SourceFailed("a.csv", errors.New("opening source a.csv: source not found"))
	p.Unsupported("notes.md")

	assert.Empty(t, out.String())
	assert.Equal(t, "[!] opening source a.csv: source not found\n"+
		"[!] Unsupported format, skipping: notes.md\n", errOut.String())
}

func TestPrinter_RunSummaryAndOutput(t *testing.T) {
	p, out, _ := newTestPrinter(false)

	run := batch.RunStats{Sources: 2, Failed: 1, Unsupported: 3}
	run.Total, run.Valid, run.Invalid = 5, 3, 2
	p.RunSummary(run)
	p.OutputWritten("out.csv", 5)

	assert.Equal(t, "Files: 2 | Failed: 1 | Unsupported: 3\n"+
		"Records: 5 | Valid: 3 | Invalid: 2 | Skipped: 0\n"+
		"Results saved to out.csv (5 rows)\n", out.String())
}

func TestPrinter_Check(t *testing.T) {
	p, out, _ := newTestPrinter(false)

	p.Check("52998224725", "529.982.247-25", batch.Valid)
	p.Check("529.982.247-25", "529.982.247-25", batch.Valid)
	p.Check("123", "123", batch.Invalid)

	assert.Equal(t, "52998224725 -> 529.982.247-25 - [VALID]\n"+
		"529.982.247-25 - [VALID]\n"+
		"123 - [INVALID]\n", out.String())
}

func TestPrinter_ColorizedMarkersKeepText(t *testing.T) {
	p, out, _ := newTestPrinter(true)

	p.Record("a.csv", batch.Record{Index: 1, Value: "529.982.247-25", Verdict: batch.Valid})
	p.Record("a.csv", batch.Record{Index: 2, Value: "x", Verdict: batch.Invalid})

	assert.Equal(t, "   1. 529.982.247-25 - [VALID]\n"+
		"   2. x - [INVALID]\n", color.ClearCode(out.String()))
}
