// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/sqlkit/pkg/dialect"

// Config is the PostgreSQL dialect configuration.
// Dollar quoting makes $$ and $tag$ toggle a function body for the splitter.
var Config = &dialect.Config{
	Name: "postgres",
	Features: dialect.Features{
		DollarQuoting:      true,
		DollarPlaceholders: true,
	},
}

// operators extends the base set with pattern matching operators.
var operators = []string{
	"LIKE", "ILIKE", "SIMILAR",
	"~", "~*", "!~", "!~*",
}

var keywords = []string{
	"ILIKE", "SIMILAR", "RETURNING", "CONFLICT", "NOTHING",
	"PERFORM", "VOLATILE", "STABLE", "IMMUTABLE", "STRICT",
	"SECURITY", "DEFINER", "INVOKER", "OWNER", "EXTENSION",
	"MATERIALIZED", "CONCURRENTLY", "VACUUM", "ANALYZE", "LISTEN", "NOTIFY",
}
