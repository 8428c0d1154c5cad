package duckdb

import (
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	Operators(operators...).
	Keywords(keywords...).
	KeywordsOfType(token.KeywordDDL, "ATTACH", "DETACH").
	MultiWordKeywords("GROUP BY ALL", "ORDER BY ALL").
	Build()
