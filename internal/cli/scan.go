package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/sc-scan/config"
	"github.com/wippyai/sc-scan/errors"
	"github.com/wippyai/sc-scan/scan"
)

type scanOptions struct {
	format      string
	pretty      bool
	strict      bool
	interactive bool
}

func (a *app) scanCmd() *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan [file|-]...",
		Short: "List the version, imports and exports of WebAssembly binaries",
		Long: `Scan reads each file (or stdin for "-" or no arguments) and prints its
records in input order.

A binary whose framing is broken prints an empty list. Import and export
entries that cannot be decoded are skipped; --strict turns skipped entries
and broken framing into a non-zero exit.

Example:
  scscan scan contract.wasm
  scscan scan --format table a.wasm b.wasm
  cat contract.wasm | scscan scan --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "",
		"Output format (json, yaml, table)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false,
		"Indent JSON output, colored when writing to a terminal")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Fail when entries were skipped or framing is broken")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false,
		"Browse the records of a single input in a terminal UI")
	return cmd
}

func (a *app) runScan(cmd *cobra.Command, args []string, opts scanOptions) error {
	err := a.cfg.ApplyOverrides(config.Overrides{Format: opts.format, Pretty: opts.pretty})
	if err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	if opts.interactive {
		if len(inputs) != 1 || inputs[0].name == stdinName {
			return errors.InvalidInput(errors.PhaseInput, "interactive mode takes exactly one file")
		}
		res, err := scan.Collect(inputs[0].data)
		if err != nil {
			return err
		}
		return runBrowser(cmd, inputs[0].name, res)
	}

	out := cmd.OutOrStdout()
	r := newRenderer(a.cfg.Output, out)
	var failures int
	for i, in := range inputs {
		records, ok := a.collect(in, opts.strict)
		if !ok {
			failures++
		}
		if err := r.render(out, in.name, records, i, len(inputs)); err != nil {
			return fmt.Errorf("render %s: %w", in.name, err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d inputs did not scan cleanly", failures, len(inputs))
	}
	return nil
}

// collect scans one input. A framing error yields no records, matching
// scan.Scan. ok is false when strict and anything was lost.
func (a *app) collect(in input, strict bool) (records []scan.Record, ok bool) {
	log := a.log.With(zap.String("input", in.name))

	res, err := scan.Collect(in.data)
	if err != nil {
		log.Warn("framing error, no records", zap.Error(err))
		return nil, !strict
	}
	for _, sk := range res.Skipped {
		log.Warn("skipped entry",
			zap.String("section", sk.Section),
			zap.Uint32("index", sk.Index),
			zap.Int("offset", sk.Offset),
			zap.Error(sk.Err))
	}
	return res.Records, !strict || len(res.Skipped) == 0
}
