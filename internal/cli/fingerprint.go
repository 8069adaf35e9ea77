package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/notary/internal/ledger"
)

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint <operation> <record-id> <timestamp>",
		Short: "Compute the fingerprint of an operation triple",
		Long: `Compute the content-addressed fingerprint the registry would use for
an (operation, record, timestamp) triple. Useful for checking whether
two submissions would collide.

Example:
  notary fingerprint Create customer_001 1700000000`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runFingerprint(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ts, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid timestamp %q", args[2]), err)
	}

	fp := ledger.ComputeFingerprint(ledger.Op(args[0]), args[1], ts)
	if formatter.Format == "json" {
		return formatter.Success(map[string]string{
			"operation":   args[0],
			"record_id":   args[1],
			"timestamp":   args[2],
			"fingerprint": string(fp),
		})
	}
	fmt.Fprintln(formatter.Writer, fp)
	return nil
}
