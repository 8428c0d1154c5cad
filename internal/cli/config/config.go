// Package config loads sqlkit CLI configuration from defaults, a sqlkit.yaml
// file, SQLKIT_ environment variables and command-line flags.
package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/sqlkit/internal/executor"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/format"

	// Register the bundled dialects via init()
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/postgres"
)

// Default configuration values.
const (
	DefaultDialect = "ansi"
	DefaultOutput  = "auto" // TTY=text, non-TTY=markdown
	DefaultDriver  = executor.DriverSQLite
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// Config holds all CLI configuration options.
type Config struct {
	Dialect  string         `koanf:"dialect"`
	Verbose  bool           `koanf:"verbose"`
	NoColor  bool           `koanf:"no_color"`
	Output   string         `koanf:"output"`
	Database string         `koanf:"database"`
	Driver   string         `koanf:"driver"`
	Format   format.Options `koanf:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Dialect: DefaultDialect,
		Output:  DefaultOutput,
		Driver:  DefaultDriver,
		Format:  format.DefaultOptions(),
	}
}

// Validate checks every key that commands cannot recover from.
func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return err
	}
	if c.Output != "" && !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("invalid output %q (want one of %v)", c.Output, OutputModes)
	}
	if c.Driver != "" && !slices.Contains(executor.Drivers(), c.Driver) {
		return fmt.Errorf("invalid driver %q (want one of %v)", c.Driver, executor.Drivers())
	}
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}

// ResolveDialect returns the configured dialect.
func (c *Config) ResolveDialect() (*dialect.Dialect, error) {
	return dialect.Lookup(c.Dialect)
}

// FormatOptions returns the format options bound to the configured dialect.
func (c *Config) FormatOptions() (format.Options, error) {
	d, err := c.ResolveDialect()
	if err != nil {
		return format.Options{}, err
	}
	opts := c.Format
	opts.Dialect = d
	return opts, nil
}
