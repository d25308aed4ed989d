// Package cli implements the scscan command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/sc-scan/config"
	"github.com/wippyai/sc-scan/logging"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	cfg *config.Config
	log *zap.Logger

	configFile string
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the scscan command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scscan",
		Short: "WebAssembly import/export scanner",
		Long: `scscan lists the version, imports and exports of WebAssembly binaries.

Output is a JSON array of records, the same contract the browser build
exposes as read_wasm:

  [{"type":"Version","num":1,"is_module":true},
   {"type":"Import","module":"env","name":"abort","kind":"Func"}, ...]`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "",
		"Path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "",
		"Override log format (console, json)")

	root.AddCommand(a.scanCmd())
	root.AddCommand(a.verifyCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup loads configuration and installs the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	err = cfg.ApplyOverrides(config.Overrides{
		LogLevel:  a.logLevel,
		LogFormat: a.logFormat,
	})
	if err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	a.cfg = cfg
	a.log = logging.NewWithWriter(&cfg.Logging, cmd.ErrOrStderr())
	logging.Install(a.log)
	a.log.Debug("configured",
		zap.String("config", a.configFile),
		zap.String("format", cfg.Output.Format))
	return nil
}
