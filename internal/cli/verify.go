package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/sc-scan/crosscheck"
	"github.com/wippyai/sc-scan/scan"
)

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Cross-check scan records against the wazero compiler",
		Long: `Verify compiles a core module with wazero and checks that the function
and memory imports and exports it reports match the scanned records.
Exits non-zero on any difference.

Example:
  scscan verify contract.wasm`,
		Args: cobra.ExactArgs(1),
		RunE: a.runVerify,
	}
}

func (a *app) runVerify(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	res, err := scan.Collect(data)
	if err != nil {
		return fmt.Errorf("scan %s: %w", args[0], err)
	}

	report, err := crosscheck.Compare(cmd.Context(), data, res.Records)
	if err != nil {
		return fmt.Errorf("verify %s: %w", args[0], err)
	}
	if err := report.Err(); err != nil {
		return fmt.Errorf("verify %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d entities match", args[0], report.Compared)
	if n := len(res.Skipped); n > 0 {
		fmt.Fprintf(out, " (%d entries skipped by the scan)", n)
	}
	fmt.Fprintln(out)
	return nil
}
