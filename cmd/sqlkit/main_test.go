// Package main provides tests for the sqlkit CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlkit/internal/cli"
	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(t *testing.T, name string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "testdata", name)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"tokenize", "split", "parse", "format", "highlight", "run", "repl", "dialects"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestRunScript(t *testing.T) {
	schema := testdata(t, "schema.sql")
	t.Chdir(t.TempDir())

	output, err := execute(t, "run", "--output", "json", schema)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 7)

	last := results[6]
	assert.Equal(t, "SELECT", last["type"])
	rows, ok := last["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1, "the trigger removed ann's orders")
	row, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bob; the builder", row["name"])
	assert.Equal(t, float64(2), row["n"])
}

func TestSplitScript(t *testing.T) {
	schema := testdata(t, "schema.sql")
	t.Chdir(t.TempDir())

	output, err := execute(t, "split", "-o", "json", schema)
	require.NoError(t, err)

	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &infos))
	require.Len(t, infos, 7)
	assert.Equal(t, "CREATE", infos[2]["type"])
	assert.Contains(t, infos[2]["sql"], "DELETE FROM orders WHERE user_id = OLD.id;\nEND")
}

func TestFormatGolden(t *testing.T) {
	messy := testdata(t, "messy.sql")
	golden, err := os.ReadFile(testdata(t, "messy.golden.sql"))
	require.NoError(t, err)
	t.Chdir(t.TempDir())

	output, err := execute(t, "format", "--reindent", "--keyword-case", "upper", messy)
	require.NoError(t, err)
	assert.Equal(t, string(golden), output)
}
