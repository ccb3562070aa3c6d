package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
	"github.com/cpfinspector/cpfinspector/pkg/report"
	"github.com/cpfinspector/cpfinspector/pkg/sink"
)

type inspectOptions struct {
	directory string
}

// runInspect validates a single file or a directory of files.
// The directory takes precedence when both are given.
func (a *app) runInspect(cmd *cobra.Command, opts inspectOptions, args []string) (err error) {
	out := cmd.OutOrStdout()
	if a.cfg.Banner {
		_, _ = fmt.Fprintln(out, report.Banner(Version))
	}

	var file string
	if len(args) > 0 {
		file = args[0]
	}
	if opts.directory == "" && file == "" {
		_ = cmd.Usage()
		return errNoInput
	}

	delimiter, err := a.cfg.DelimiterRune()
	if err != nil {
		return err
	}

	printer := report.NewPrinter(out, cmd.ErrOrStderr(), a.colorize(out))
	procOpts := []batch.Option{
		batch.WithReporter(printer),
		batch.WithLogger(a.logger),
		batch.WithDelimiter(delimiter),
		batch.WithExtensions(a.cfg.Extensions...),
	}

	if a.cfg.Output != "" {
		if opts.directory == "" && samePath(file, a.cfg.Output) {
			return fmt.Errorf("output file %s is the input file", a.cfg.Output)
		}
		s, createErr := sink.Create(a.cfg.Output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := s.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
			a.logger.Debug("output closed", "path", s.Path(), "rows", s.Rows())
		}()
		procOpts = append(procOpts, batch.WithSink(s), batch.WithExclude(s.Path()))
		defer func() {
			if err == nil || IsReported(err) {
				printer.OutputWritten(s.Path(), s.Rows())
			}
		}()
	}

	p := batch.NewProcessor(procOpts...)
	emitInvalid := !a.cfg.ValidOnly

	if opts.directory != "" {
		if file != "" {
			a.logger.Debug("directory takes precedence over file", "directory", opts.directory, "file", file)
		}
		return a.inspectDirectory(p, printer, opts.directory, emitInvalid)
	}

	if _, err := p.ProcessSource(file, emitInvalid); err != nil {
		return reported(err)
	}
	return nil
}

func (a *app) inspectDirectory(p *batch.Processor, printer *report.Printer, dir string, emitInvalid bool) error {
	results, err := p.ProcessDirectory(dir, emitInvalid)
	if err != nil {
		if len(results) > 0 {
			// The failing source was already reported.
			return reported(err)
		}
		return err
	}

	run := batch.Totals(results)
	printer.RunSummary(run)
	if run.Failed > 0 {
		return reported(fmt.Errorf("%d of %d sources failed", run.Failed, run.Sources))
	}
	return nil
}

// samePath reports whether a and b name the same existing file.
func samePath(a, b string) bool {
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
