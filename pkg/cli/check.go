package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
	"github.com/cpfinspector/cpfinspector/pkg/cpf"
	"github.com/cpfinspector/cpfinspector/pkg/report"
)

// newCheckCommand creates the check command
func newCheckCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <cpf>...",
		Short: "Validate CPF numbers given as arguments",
		Long: `Validate one or more CPF numbers without reading a file.

By default only the first check digit is verified, exactly as when
validating files. Use --strict to verify both check digits.

Examples:
  cpfinspector check 529.982.247-25
  cpfinspector check 52998224725 11144477735 --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printer := report.NewPrinter(out, cmd.ErrOrStderr(), a.colorize(out))

			validate := cpf.IsValid
			if strict {
				validate = cpf.IsValidStrict
			}

			invalid := 0
			for _, value := range args {
				if !validate(value) {
					invalid++
					printer.Check(value, value, batch.Invalid)
					continue
				}
				formatted, _ := cpf.Format(value)
				printer.Check(value, formatted, batch.Valid)
			}

			a.logger.Debug("check finished", "values", len(args), "invalid", invalid, "strict", strict)
			if invalid > 0 {
				return reported(fmt.Errorf("%d of %d values are invalid", invalid, len(args)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Verify both check digits")

	return cmd
}
