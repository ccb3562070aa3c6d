package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cpfinspector/cpfinspector/pkg/config"
)

const (
	// Version is the current version of cpfinspector
	Version = "1.0.0"
)

// errNoInput is returned when neither a file nor a directory is given.
var errNoInput = errors.New("you must provide a CSV file or a directory containing CSV files to validate")

// reportedError marks an error whose details were already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already printed by the command that
// returned it, so callers only need to set the exit status.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// app carries the state shared by the root command and its subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	runID      string

	// forceColor enables ANSI output even when the terminal is not detected.
	forceColor func()
}

func newApp() *app {
	return &app{
		forceColor: func() { color.ForceOpenColor() },
	}
}

// NewRootCommand creates the root cobra command for cpfinspector
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "cpfinspector [file]",
		Short: "Validate CPF numbers in CSV files",
		Long: `cpfinspector checks Brazilian individual taxpayer numbers (CPF) found in the
first column of CSV or TXT files and reports which ones are valid.

A single file or every .csv/.txt file in a directory can be checked. Results
can be saved to a CSV file with one "value,VALID|INVALID" row per record.

Examples:
  cpfinspector people.csv
  cpfinspector people.csv --true --output valid.csv
  cpfinspector --directory ./exports --delimiter ";"`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := a.initConfig(cmd); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			if a.cfg.Color == config.ColorAlways {
				a.forceColor()
			}

			// Setup logging
			a.runID = uuid.NewString()
			if a.cfg.Debug {
				handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
				a.logger = slog.New(handler).With("run_id", a.runID)
			} else {
				a.logger = slog.New(slog.DiscardHandler)
			}

			a.logger.Debug("configuration loaded",
				"valid_only", a.cfg.ValidOnly,
				"output", a.cfg.Output,
				"delimiter", a.cfg.Delimiter,
				"extensions", a.cfg.Extensions,
				"color", a.cfg.Color,
			)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd, opts, args)
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file (default: ~/.cpfinspector/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("color", config.ColorAuto, "Colorize verdicts: auto, always or never")

	cmd.Flags().StringVarP(&opts.directory, "directory", "d", "", "Validate every CSV/TXT file in this directory")
	cmd.Flags().BoolP("true", "t", false, "Show and save only valid CPFs")
	cmd.Flags().StringP("output", "o", "", "Save results to this CSV file")
	cmd.Flags().String("delimiter", ",", "Field delimiter of input files (use \"tab\" for tabs)")
	cmd.Flags().Bool("no-banner", false, "Do not print the banner")

	// Add subcommands
	cmd.AddCommand(newCheckCommand(a))

	return cmd
}

// initConfig loads the layered configuration and applies explicitly set flags on top.
func (a *app) initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Lookup("true") != nil && flags.Changed("true") {
		cfg.ValidOnly, _ = flags.GetBool("true")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Lookup("delimiter") != nil && flags.Changed("delimiter") {
		cfg.Delimiter, _ = flags.GetString("delimiter")
	}
	if flags.Lookup("no-banner") != nil && flags.Changed("no-banner") {
		noBanner, _ := flags.GetBool("no-banner")
		cfg.Banner = !noBanner
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// colorize decides whether verdict markers written to out are coloured.
func (a *app) colorize(out io.Writer) bool {
	switch a.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
