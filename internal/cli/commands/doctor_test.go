package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorJSON(t *testing.T) {
	config.ResetConfig()
	res := run(NewDoctorCommand(), testConfig("json"), "")
	require.NoError(t, res.Err)

	var out DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))

	byName := map[string]HealthCheck{}
	for _, c := range out.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, statusWarn, byName["Config file"].Status)
	assert.Equal(t, "ansi", byName["Dialect"].Detail)
	assert.Equal(t, "identity", byName["Format options"].Detail)
	assert.Equal(t, statusPass, byName["Connection"].Status)
	assert.Equal(t, "in-memory", byName["Connection"].Detail)
	assert.Equal(t, 1, out.IssueCount)
	assert.Len(t, out.Recommendations, 1)
}

func TestDoctorReportsDriverMismatchAndBadConnection(t *testing.T) {
	config.ResetConfig()
	cfg := testConfig("json")
	cfg.Dialect = "mysql"
	cfg.Driver = "pgx"

	res := run(NewDoctorCommand(), cfg, "")
	require.NoError(t, res.Err)

	var out DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))

	byName := map[string]HealthCheck{}
	for _, c := range out.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, statusWarn, byName["Driver"].Status)
	assert.Contains(t, byName["Driver"].Detail, "dialect postgres")
	assert.Equal(t, statusFail, byName["Connection"].Status)
	assert.Contains(t, byName["Connection"].Detail, "requires a database connection string")
	assert.Equal(t, 3, out.IssueCount)
}

func TestDoctorMarkdown(t *testing.T) {
	config.ResetConfig()
	res := run(NewDoctorCommand(), testConfig("markdown"), "")
	require.NoError(t, res.Err)

	testutil.AssertValidMarkdown(t, res.Stdout)
	testutil.AssertNoANSI(t, res.Stdout)
	assert.Contains(t, res.Stdout, "# sqlkit Health Report")
	assert.Contains(t, res.Stdout, "## Configuration")
	assert.Contains(t, res.Stdout, "- **Connection**: in-memory (pass)")
	assert.Contains(t, res.Stdout, "## Recommendations")
}

func TestDoctorText(t *testing.T) {
	config.ResetConfig()
	res := run(NewDoctorCommand(), testConfig("text"), "")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "sqlkit Health Report")
	assert.Contains(t, res.Stdout, "   Database")
	assert.Contains(t, res.Stdout, "✓ Connection: in-memory")
}
