package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# sqlkit configuration.
# Keys may be overridden with SQLKIT_ environment variables
# (SQLKIT_DIALECT, SQLKIT_KEYWORD_CASE) or command-line flags.
`

// configDocument mirrors config.Config with the keys worth persisting.
type configDocument struct {
	Dialect  string         `yaml:"dialect"`
	Output   string         `yaml:"output"`
	Driver   string         `yaml:"driver"`
	Database string         `yaml:"database,omitempty"`
	Format   formatDocument `yaml:"format"`
}

type formatDocument struct {
	Reindent       bool        `yaml:"reindent"`
	IndentWidth    int         `yaml:"indent_width"`
	LTrim          bool        `yaml:"ltrim"`
	KeywordCase    format.Case `yaml:"keyword_case"`
	IdentifierCase format.Case `yaml:"identifier_case"`
	StripComments  bool        `yaml:"strip_comments"`
	RightMargin    int         `yaml:"right_margin"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a sqlkit.yaml configuration file",
		Long: `Write a sqlkit.yaml file holding the effective configuration.

The file captures the current dialect, output mode, database driver and
format settings, so running init with flags such as --dialect postgres
persists them for later invocations in that directory.`,
		Example: `  # Write sqlkit.yaml in the current directory
  sqlkit init

  # Persist a dialect and keyword case for a project
  sqlkit --dialect postgres init ./project

  # Overwrite an existing file
  sqlkit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+config.FileName)

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", path)
		}
	}

	content, err := renderConfigFile(cc.Cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cc.Logger.Debug("wrote config file", "path", path, "dialect", cc.Cfg.Dialect)
	r.Success("Created " + path)
	return nil
}

// renderConfigFile encodes cfg as a commented YAML document.
func renderConfigFile(cfg *config.Config) ([]byte, error) {
	doc := configDocument{
		Dialect:  cfg.Dialect,
		Output:   cfg.Output,
		Driver:   cfg.Driver,
		Database: cfg.Database,
		Format: formatDocument{
			Reindent:       cfg.Format.Reindent,
			IndentWidth:    cfg.Format.IndentWidth,
			LTrim:          cfg.Format.LTrim,
			KeywordCase:    cfg.Format.KeywordCase,
			IdentifierCase: cfg.Format.IdentifierCase,
			StripComments:  cfg.Format.StripComments,
			RightMargin:    cfg.Format.RightMargin,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
