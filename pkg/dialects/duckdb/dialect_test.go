package duckdb

import (
	"testing"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("DuckDB")
	require.True(t, ok, "duckdb dialect should be registered")
	assert.Same(t, DuckDB, d)
}

func TestKeywords(t *testing.T) {
	typ, ok := DuckDB.LookupKeyword("qualify")
	require.True(t, ok)
	assert.Equal(t, token.Keyword, typ)

	typ, ok = DuckDB.LookupKeyword("attach")
	require.True(t, ok)
	assert.Equal(t, token.KeywordDDL, typ)

	assert.Contains(t, DuckDB.MultiWordKeywords(), "GROUP BY ALL")
	assert.True(t, DuckDB.IsOperator("glob"))
	assert.False(t, DuckDB.Features.DollarQuoting)
}
