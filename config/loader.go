package config

import (
	stderrors "errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/wippyai/sc-scan/errors"
)

// EnvPrefix is the prefix of environment variables that override
// configuration keys, e.g. SCSCAN_OUTPUT_FORMAT for output.format.
const EnvPrefix = "SCSCAN"

// Load reads configuration from the YAML file at path, applies SCSCAN_*
// environment overrides and validates the result. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.NotFound(errors.PhaseConfig, "config file", path)
			}
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read config file "+path)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance. Defaults
// and environment binding are added to v.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.pretty", d.Output.Pretty)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

var (
	validFormats    = []string{FormatJSON, FormatYAML, FormatTable}
	validColors     = []string{"auto", "always", "never"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{LogFormatConsole, LogFormatJSON}
)

// Validate checks that every enumerated setting holds a known value.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		valid []string
	}{
		{"output.format", c.Output.Format, validFormats},
		{"output.color", c.Output.Color, validColors},
		{"logging.level", c.Logging.Level, validLogLevels},
		{"logging.format", c.Logging.Format, validLogFormats},
	}
	for _, ch := range checks {
		if !slices.Contains(ch.valid, ch.value) {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path(strings.Split(ch.field, ".")...).
				Value(ch.value).
				Detail("must be one of %s, got %q", strings.Join(ch.valid, ", "), ch.value).
				Build()
		}
	}
	return nil
}
