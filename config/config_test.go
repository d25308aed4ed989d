package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/wippyai/sc-scan/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scscan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("expected format json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Pretty {
		t.Error("expected pretty to default to false")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != LogFormatConsole {
		t.Errorf("expected log format console, got %s", cfg.Logging.Format)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
output:
  format: yaml
  pretty: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("expected format yaml, got %s", cfg.Output.Format)
	}
	if !cfg.Output.Pretty {
		t.Error("expected pretty to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
	// unset keys keep their defaults
	if cfg.Logging.Format != LogFormatConsole {
		t.Errorf("expected log format console, got %s", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
output:
  format: yaml
`)
	t.Setenv("SCSCAN_OUTPUT_FORMAT", "table")
	t.Setenv("SCSCAN_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("expected env to override format, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Format != LogFormatJSON {
		t.Errorf("expected env to override log format, got %s", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound}) {
		t.Fatalf("expected not_found config error, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "output: [format\n")
	_, err := Load(path)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData}) {
		t.Fatalf("expected invalid_data config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   []string
	}{
		{"format", func(c *Config) { c.Output.Format = "xml" }, []string{"output", "format"}},
		{"color", func(c *Config) { c.Output.Color = "sometimes" }, []string{"output", "color"}},
		{"level", func(c *Config) { c.Logging.Level = "trace" }, []string{"logging", "level"}},
		{"log format", func(c *Config) { c.Logging.Format = "text" }, []string{"logging", "format"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cerr *errors.Error
			if !stderrors.As(err, &cerr) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if cerr.Kind != errors.KindInvalidInput || cerr.Phase != errors.PhaseConfig {
				t.Errorf("unexpected error class: %v", cerr)
			}
			if !slices.Equal(cerr.Path, tt.path) {
				t.Errorf("expected path %v, got %v", tt.path, cerr.Path)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadInvalidEnumFromEnv(t *testing.T) {
	t.Setenv("SCSCAN_LOGGING_LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverrides(Overrides{LogLevel: "info", Format: FormatTable, Pretty: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Output.Format != FormatTable || !cfg.Output.Pretty {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Logging.Format != LogFormatConsole {
		t.Errorf("empty override changed log format to %s", cfg.Logging.Format)
	}

	if err := cfg.ApplyOverrides(Overrides{Format: "csv"}); err == nil {
		t.Error("expected invalid override to fail validation")
	}
}
