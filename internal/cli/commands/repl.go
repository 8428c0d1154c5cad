package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/internal/executor"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/query"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlkit> "
	replContinuePrompt = "   ...> "
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	var (
		maxRows     int
		historyFile string
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell",
		Long: `Start an interactive SQL shell on the configured database.

Input is collected until it forms complete statements, so semicolons inside
BEGIN...END bodies or dollar-quoted bodies do not submit the input early.`,
		Example: `  sqlkit repl
  sqlkit repl --driver duckdb --database analytics.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := executor.Open(ctx, cc.Cfg.Driver, cc.Cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if historyFile == "" {
				historyFile = defaultHistoryFile()
			}
			return runREPL(ctx, newReplSession(cc, db, maxRows), historyFile)
		},
	}

	cmd.Flags().IntVar(&maxRows, "max-rows", DefaultMaxRows, "Rows kept per result set (0 for all)")
	cmd.Flags().StringVar(&historyFile, "history", "", "History file (default: ~/.sqlkit_history)")
	return cmd
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlkit_history")
}

func runREPL(ctx context.Context, s *replSession, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          s.r.Writer(),
		Stderr:          s.r.ErrWriter(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.r.Println(fmt.Sprintf("sqlkit REPL (driver: %s, dialect: %s)", s.driver, s.dialect.Name))
	s.r.Println("Type .help for commands, .quit to exit")
	s.r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			rl.SetPrompt(s.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := s.handleLine(ctx, line); quit {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

// replSession holds the state of one interactive session.
type replSession struct {
	r       *output.Renderer
	cc      *CommandContext
	db      *sql.DB
	driver  string
	dialect *dialect.Dialect
	maxRows int
	buf     strings.Builder
}

func newReplSession(cc *CommandContext, db *sql.DB, maxRows int) *replSession {
	return &replSession{
		r:       cc.Renderer,
		cc:      cc,
		db:      db,
		driver:  cc.Cfg.Driver,
		dialect: scriptDialect(cc),
		maxRows: maxRows,
	}
}

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// handleLine feeds one input line and reports whether the session ended.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" && s.buf.Len() == 0 {
		return false
	}
	if strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(ctx, trimmed)
	}

	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if !inputComplete(s.buf.String(), s.dialect) {
		return false
	}

	script := s.buf.String()
	s.buf.Reset()
	s.execute(ctx, script)
	return false
}

// inputComplete reports whether text ends with a finished statement. Text
// after the last statement boundary forms a trailing statement of its own,
// so the input is complete when that trailing statement is blank.
func inputComplete(text string, d *dialect.Dialect) bool {
	stmts := query.Split(text, d)
	return len(stmts) > 1 && stmts[len(stmts)-1].IsBlank()
}

func (s *replSession) execute(ctx context.Context, script string) {
	exec := executor.New(s.db, executor.Config{
		Dialect: s.dialect,
		Logger:  s.cc.Logger,
		MaxRows: s.maxRows,
		OnResult: func(res executor.Result) error {
			return printResult(s.r, res)
		},
	})
	if _, err := exec.Run(ctx, script); err != nil {
		s.r.Error(err.Error())
	}
}

func (s *replSession) dotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".dialect":
		if len(parts) < 2 {
			s.r.Println(s.dialect.Name)
			return false
		}
		d, err := dialect.Lookup(parts[1])
		if err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.dialect = d
		s.r.Success("dialect set to " + d.Name)

	case ".tables":
		if err := s.listTables(ctx); err != nil {
			s.r.Error(err.Error())
		}

	case ".reset":
		s.reset()

	case ".clear":
		s.r.Printf("\033[H\033[2J")

	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func (s *replSession) listTables(ctx context.Context) error {
	q := `SELECT table_name FROM information_schema.tables
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_name`
	if s.driver == executor.DriverSQLite {
		q = `SELECT name FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`
	}

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	var out [][]any
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		out = append(out, []any{name})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return s.r.Table([]string{"table"}, out)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or change the dialect used to split input
  .tables          List tables and views
  .reset           Discard the statement being typed
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - Input runs once it ends with a complete statement
  - Semicolons inside BEGIN...END or $$ bodies do not end a statement
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newDotCompleter() *readline.PrefixCompleter {
	var dialects []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".tables"),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
