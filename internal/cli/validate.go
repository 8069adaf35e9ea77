package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/notary/internal/scenario"
)

// FileValidation holds validation results for one scenario file.
type FileValidation struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files without executing them",
		Long: `Validate scenario files against the schema without executing them.

Performs CUE schema validation plus the loader's semantic checks
(declared signers, required record ids, scalar payloads).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]FileValidation, 0, len(paths))
	allValid := true
	for _, path := range paths {
		formatter.VerboseLog("validating %s", path)
		fv := FileValidation{Path: path, Valid: true}
		for _, err := range scenario.ValidateFile(path) {
			fv.Valid = false
			fv.Errors = append(fv.Errors, err.Error())
		}
		if fv.Valid {
			// Schema-valid files can still fail semantic checks.
			if _, err := scenario.Load(path); err != nil {
				fv.Valid = false
				fv.Errors = append(fv.Errors, err.Error())
			}
		}
		if !fv.Valid {
			allValid = false
		}
		results = append(results, fv)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return WrapExitError(ExitCommandError, "failed to write results", err)
		}
	} else {
		for _, fv := range results {
			if fv.Valid {
				fmt.Fprintf(formatter.Writer, "ok:   %s\n", fv.Path)
				continue
			}
			fmt.Fprintf(formatter.Writer, "FAIL: %s\n", fv.Path)
			for _, msg := range fv.Errors {
				fmt.Fprintf(formatter.Writer, "  %s\n", msg)
			}
		}
	}

	if !allValid {
		return NewExitError(ExitFailure, "one or more scenario files are invalid")
	}
	return nil
}
