package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func formatFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.String("keyword-case", "", "")
	flags.Int("right-margin", 0, "")
	flags.Bool("reindent", false, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultDriver, cfg.Driver)
	assert.Equal(t, format.DefaultIndentWidth, cfg.Format.IndentWidth)
	assert.Equal(t, format.OutputSQL, cfg.Format.OutputFormat)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `dialect: postgres
output: json
format:
  reindent: true
  indent_width: 4
  keyword_case: upper
  right_margin: 80
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.Format.Reindent)
	assert.Equal(t, 4, cfg.Format.IndentWidth)
	assert.Equal(t, format.CaseUpper, cfg.Format.KeywordCase)
	assert.Equal(t, 80, cfg.Format.RightMargin)

	opts, err := cfg.FormatOptions()
	require.NoError(t, err)
	assert.Equal(t, "postgres", opts.Dialect.Name)
}

func TestLoadConfig_FoundUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlkit.yml"), []byte("dialect: mysql\n"), 0600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "sqlkit.yml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `dialect: postgres
format:
  keyword_case: lower
`)

	t.Run("env overrides file", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SQLKIT_DIALECT", "duckdb")
		t.Setenv("SQLKIT_FORMAT_KEYWORD_CASE", "capitalize")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "duckdb", cfg.Dialect)
		assert.Equal(t, format.CaseCapitalize, cfg.Format.KeywordCase)
	})

	t.Run("flags override env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SQLKIT_DIALECT", "duckdb")
		flags := formatFlags()
		require.NoError(t, flags.Set("dialect", "mysql"))
		require.NoError(t, flags.Set("keyword-case", "upper"))
		require.NoError(t, flags.Set("right-margin", "60"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "mysql", cfg.Dialect)
		assert.Equal(t, format.CaseUpper, cfg.Format.KeywordCase)
		assert.Equal(t, 60, cfg.Format.RightMargin)
	})

	t.Run("unset flags fall back to env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SQLKIT_DIALECT", "duckdb")

		cfg, err := LoadConfig(path, formatFlags())
		require.NoError(t, err)
		assert.Equal(t, "duckdb", cfg.Dialect)
		assert.Equal(t, format.CaseLower, cfg.Format.KeywordCase)
		assert.False(t, cfg.Format.Reindent)
	})
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown dialect", "dialect: oracle\n", "unknown dialect"},
		{"bad case", "format:\n  keyword_case: shout\n", "unknown case"},
		{"bad output", "output: html\n", "invalid output"},
		{"bad driver", "driver: odbc\n", "invalid driver"},
		{"negative margin", "format:\n  right_margin: -1\n", "right_margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_ExpandsDatabase(t *testing.T) {
	ResetConfig()
	t.Setenv("PGHOST_FOR_TEST", "db.internal")
	cfg, err := LoadConfig(writeConfig(t, "database: postgres://${PGHOST_FOR_TEST}/app\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal/app", cfg.Database)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"mixed", "${TEST_VAR_ONE}:${UNSET_VAR}", "value_one:${UNSET_VAR}"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestResolveDialect(t *testing.T) {
	cfg := Default()
	d, err := cfg.ResolveDialect()
	require.NoError(t, err)
	assert.Same(t, dialect.ANSI, d)

	cfg.Dialect = "nope"
	_, err = cfg.FormatOptions()
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := GetLogger(context.Background())
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	assert.Equal(t, Default(), GetConfig(context.Background()))

	cfg := Default()
	cfg.Dialect = "mysql"
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
