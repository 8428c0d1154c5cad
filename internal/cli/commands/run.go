package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/internal/executor"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/spf13/cobra"
)

// DefaultMaxRows caps the rows printed per result set.
const DefaultMaxRows = 1000

// StatementResult is the structured output for one executed statement.
type StatementResult struct {
	Source       string           `json:"source" yaml:"source"`
	Index        int              `json:"index" yaml:"index"`
	Type         string           `json:"type" yaml:"type"`
	Line         int              `json:"line" yaml:"line"`
	Columns      []string         `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows         []map[string]any `json:"rows,omitempty" yaml:"rows,omitempty"`
	Truncated    bool             `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	RowsAffected int64            `json:"rows_affected" yaml:"rows_affected"`
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var maxRows int

	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Execute SQL scripts statement by statement",
		Long: `Execute SQL scripts against a database one statement at a time.
Blank statements are skipped. Execution stops at the first failing
statement, reported by number and line.

With the default ansi dialect the script is split with the driver's
dialect (sqlite: ansi, duckdb: duckdb, pgx: postgres).`,
		Example: `  # In-memory SQLite
  sqlkit run schema.sql seed.sql

  # DuckDB file
  sqlkit run --driver duckdb --database analytics.duckdb load.sql

  # Postgres
  sqlkit run --driver pgx --database "$DATABASE_URL" functions.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, args, maxRows)
		},
	}

	cmd.Flags().IntVar(&maxRows, "max-rows", DefaultMaxRows, "Rows kept per result set (0 for all)")
	return cmd
}

func runScripts(cmd *cobra.Command, args []string, maxRows int) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := executor.Open(ctx, cc.Cfg.Driver, cc.Cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return executeSources(ctx, cc, db, sources, maxRows)
}

// scriptDialect picks the dialect scripts are split with.
func scriptDialect(cc *CommandContext) *dialect.Dialect {
	if cc.Cfg.Dialect != config.DefaultDialect {
		return cc.Dialect
	}
	if d, ok := dialect.Get(executor.DialectFor(cc.Cfg.Driver)); ok {
		return d
	}
	return cc.Dialect
}

func executeSources(ctx context.Context, cc *CommandContext, db *sql.DB, sources []source, maxRows int) error {
	r := cc.Renderer
	structured := r.EffectiveMode().IsStructured()
	all := []StatementResult{}

	for _, src := range sources {
		name := displayName(src.Name)
		exec := executor.New(db, executor.Config{
			Dialect: scriptDialect(cc),
			Logger:  cc.Logger,
			MaxRows: maxRows,
			OnResult: func(res executor.Result) error {
				if structured {
					all = append(all, toStatementResult(name, res))
					return nil
				}
				return printResult(r, res)
			},
		})
		if _, err := exec.Run(ctx, src.Text); err != nil {
			if structured {
				// Emit what ran before the failure.
				_, _ = r.Data(all)
			}
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if structured {
		_, err := r.Data(all)
		return err
	}
	return nil
}

func toStatementResult(source string, res executor.Result) StatementResult {
	out := StatementResult{
		Source:       source,
		Index:        res.Index,
		Type:         string(res.Statement.Type()),
		Line:         res.Line,
		RowsAffected: res.RowsAffected,
		Truncated:    res.Truncated,
	}
	if res.HasRows() {
		out.Columns = res.Columns
		out.Rows = output.Records(res.Columns, res.Rows)
	}
	return out
}

func printResult(r *output.Renderer, res executor.Result) error {
	if !res.HasRows() {
		r.StatusLine(fmt.Sprintf("statement %d", res.Index), "ok",
			fmt.Sprintf("%d rows affected", res.RowsAffected))
		return nil
	}
	if err := r.Table(res.Columns, res.Rows); err != nil {
		return err
	}
	if res.Truncated {
		r.Muted(fmt.Sprintf("(output truncated to %d rows)", len(res.Rows)))
	}
	return nil
}
