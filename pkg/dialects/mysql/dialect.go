// Package mysql provides the MySQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import "github.com/leapstack-labs/sqlkit/pkg/dialect"

func init() {
	dialect.Register(MySQL)
}

// Config is the MySQL dialect configuration.
var Config = &dialect.Config{
	Name: "mysql",
	Features: dialect.Features{
		HashComments:        true,
		BacktickIdentifiers: true,
	},
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	Operators("LIKE", "REGEXP", "RLIKE", "<=>").
	Keywords("REGEXP", "RLIKE", "ENGINE", "AUTO_INCREMENT", "UNSIGNED",
		"DUPLICATE", "IGNORE", "SHOW", "USE", "DELIMITER", "HANDLER").
	MultiWordKeywords("END REPEAT", "ON DUPLICATE KEY UPDATE").
	Build()
