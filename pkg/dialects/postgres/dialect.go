package postgres

import "github.com/leapstack-labs/sqlkit/pkg/dialect"

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(Config).
	Operators(operators...).
	Keywords(keywords...).
	MultiWordKeywords("ON CONFLICT", "DO NOTHING", "END FOREACH").
	Build()
