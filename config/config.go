// Package config provides configuration structures and loading for scscan.
package config

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Log encodings.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config represents the complete CLI configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// OutputConfig controls how scan results are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // json, yaml, table
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"`
	// Color forces colored pretty output on or off. Empty means detect
	// whether stdout is a terminal.
	Color string `yaml:"color" mapstructure:"color"` // auto, always, never
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatJSON,
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: LogFormatConsole,
		},
	}
}

// Overrides contains flag values that override config file settings.
// Zero values leave the loaded value untouched.
type Overrides struct {
	LogLevel  string
	LogFormat string
	Format    string
	Pretty    bool
}

// ApplyOverrides applies CLI flag overrides and revalidates the result.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.Pretty {
		c.Output.Pretty = true
	}
	return c.Validate()
}
