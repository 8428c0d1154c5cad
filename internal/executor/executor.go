// Package executor runs SQL scripts one statement at a time.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/query"
)

// Statements whose first keyword or word means they return rows.
var rowReturning = map[string]bool{
	"SELECT": true, "WITH": true, "VALUES": true, "SHOW": true,
	"EXPLAIN": true, "PRAGMA": true, "DESCRIBE": true, "TABLE": true,
}

// Config configures an Executor.
type Config struct {
	Dialect *dialect.Dialect // nil means the default dialect
	Logger  *slog.Logger     // nil discards
	MaxRows int              // rows kept per result; 0 keeps all

	// OnResult, if set, receives each result as soon as its statement
	// completes. A non-nil error stops the run.
	OnResult func(Result) error
}

// Result is the outcome of one executed statement.
type Result struct {
	Index        int // 1-based, counting non-blank statements
	Line         int // line of the statement's first word
	Statement    *query.Statement
	Columns      []string
	Rows         [][]any
	Truncated    bool
	RowsAffected int64
}

// HasRows reports whether the statement produced a result set.
func (r *Result) HasRows() bool {
	return r.Columns != nil
}

// StatementError reports the statement a script failed on.
type StatementError struct {
	Index int    // 1-based statement number
	Line  int    // line the statement starts on
	SQL   string // trimmed statement text
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (line %d): %v", e.Index, e.Line, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Executor splits scripts and executes their statements in order.
type Executor struct {
	db      *sql.DB
	dialect *dialect.Dialect
	parser  *query.Parser
	logger  *slog.Logger
	maxRows int
	onRes   func(Result) error
}

// New creates an Executor over db.
func New(db *sql.DB, cfg Config) *Executor {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Dialect == nil {
		cfg.Dialect = dialect.Default()
	}
	return &Executor{
		db:      db,
		dialect: cfg.Dialect,
		parser:  query.NewParser(cfg.Logger),
		logger:  cfg.Logger,
		maxRows: cfg.MaxRows,
		onRes:   cfg.OnResult,
	}
}

// Run executes every non-blank statement of script. It stops at the first
// failure and returns the results so far together with a *StatementError.
func (e *Executor) Run(ctx context.Context, script string) ([]Result, error) {
	var results []Result
	index := 0
	for _, stmt := range e.parser.Split(script, e.dialect) {
		if stmt.IsBlank() {
			continue
		}
		index++
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := e.exec(ctx, stmt)
		line := statementLine(stmt)
		if err != nil {
			e.logger.Error("statement failed",
				slog.Int("statement", index),
				slog.Int("line", line),
				slog.String("error", err.Error()))
			return results, &StatementError{Index: index, Line: line, SQL: stmt.Trimmed(), Err: err}
		}
		res.Index = index
		res.Line = line
		results = append(results, res)
		if e.onRes != nil {
			if err := e.onRes(res); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func (e *Executor) exec(ctx context.Context, stmt *query.Statement) (Result, error) {
	text := stmt.Trimmed()
	res := Result{Statement: stmt}

	e.logger.Debug("executing statement",
		slog.String("type", string(stmt.Type())),
		slog.Int("line", stmt.Span().Start.Line))

	if !returnsRows(stmt) {
		r, err := e.db.ExecContext(ctx, text)
		if err != nil {
			return res, err
		}
		// Not every driver reports affected rows.
		res.RowsAffected, _ = r.RowsAffected()
		return res, nil
	}

	rows, err := e.db.QueryContext(ctx, text)
	if err != nil {
		return res, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return res, err
	}
	res.Columns = cols
	res.Rows = [][]any{}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return res, err
		}
		if e.maxRows > 0 && len(res.Rows) >= e.maxRows {
			res.Truncated = true
			continue
		}
		for i, v := range values {
			// Convert []byte to string for readability
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	return res, rows.Err()
}

func firstWord(stmt *query.Statement) query.Index {
	i := stmt.TokenStart()
	if i == query.None {
		return query.None
	}
	if t := stmt.At(i); !t.IsWhitespace() && !t.IsComment() {
		return i
	}
	return stmt.NextSignificant(i)
}

func statementLine(stmt *query.Statement) int {
	if i := firstWord(stmt); i != query.None {
		return stmt.At(i).Span.Start.Line
	}
	return stmt.Span().Start.Line
}

func returnsRows(stmt *query.Statement) bool {
	if stmt.Type() == query.Select {
		return true
	}
	i := firstWord(stmt)
	if i == query.None {
		return false
	}
	return rowReturning[strings.ToUpper(stmt.At(i).Literal)]
}

// Run executes script against db with default settings.
func Run(ctx context.Context, db *sql.DB, script string, d *dialect.Dialect) ([]Result, error) {
	return New(db, Config{Dialect: d}).Run(ctx, script)
}
