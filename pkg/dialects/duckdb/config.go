// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import "github.com/leapstack-labs/sqlkit/pkg/dialect"

// Config is the DuckDB dialect configuration.
var Config = &dialect.Config{
	Name: "duckdb",
	Features: dialect.Features{
		BacktickIdentifiers: true,
		DollarPlaceholders:  true,
	},
}

var operators = []string{"LIKE", "ILIKE", "GLOB", "SIMILAR", "~~", "!~~"}

var keywords = []string{
	"QUALIFY", "PIVOT", "UNPIVOT", "EXCLUDE", "RENAME", "ILIKE", "GLOB",
	"SEMI", "ANTI", "ASOF", "POSITIONAL", "SAMPLE", "USING", "MACRO",
	"INSTALL", "LOAD", "ATTACH", "DETACH", "PRAGMA", "SUMMARIZE", "DESCRIBE",
}
