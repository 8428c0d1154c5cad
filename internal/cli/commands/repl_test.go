package commands

import (
	"context"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/testutil"
	"github.com/leapstack-labs/sqlkit/internal/executor"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputComplete(t *testing.T) {
	pg, ok := dialect.Get("postgres")
	require.True(t, ok)

	tests := []struct {
		name string
		text string
		d    *dialect.Dialect
		want bool
	}{
		{"terminated", "select 1;\n", nil, true},
		{"unterminated", "select 1\n", nil, false},
		{"trailing comment", "select 1; -- done\n", nil, true},
		{"semicolon in string", "select ';'\n", nil, false},
		{"open trigger body", "create trigger trg after insert on t begin\n  update t set b = 1;\n", nil, false},
		{"closed trigger body", "create trigger trg after insert on t begin\n  update t set b = 1;\nend;\n", nil, true},
		{"open dollar body", "create function f() returns int as $$ select 1;\n", pg, false},
		{"closed dollar body", "create function f() returns int as $$ select 1; $$ language sql;\n", pg, true},
		{"only whitespace", "\n", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.d
			if d == nil {
				d = dialect.Default()
			}
			assert.Equal(t, tt.want, inputComplete(tt.text, d))
		})
	}
}

func newTestSession(t *testing.T) (*replSession, *testutil.TestRenderer) {
	t.Helper()
	db, err := executor.Open(context.Background(), executor.DriverSQLite, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tr := testutil.NewTestRendererMarkdown()
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Dialect:  dialect.Default(),
		Renderer: tr.Renderer,
	}
	return newReplSession(cc, db, DefaultMaxRows), tr
}

func TestReplSessionAccumulatesStatements(t *testing.T) {
	s, tr := newTestSession(t)
	ctx := context.Background()

	lines := []string{
		"CREATE TABLE t (a INTEGER, b INTEGER);",
		"CREATE TRIGGER trg AFTER INSERT ON t BEGIN",
		"  UPDATE t SET b = NEW.a * 2 WHERE a = NEW.a;",
	}
	for _, line := range lines {
		assert.False(t, s.handleLine(ctx, line))
	}
	assert.Equal(t, replContinuePrompt, s.prompt())

	assert.False(t, s.handleLine(ctx, "END;"))
	assert.Equal(t, replPrompt, s.prompt())
	assert.Empty(t, tr.ErrorOutput())

	tr.Reset()
	assert.False(t, s.handleLine(ctx, "INSERT INTO t (a) VALUES (21);"))
	assert.False(t, s.handleLine(ctx, "SELECT b"))
	assert.False(t, s.handleLine(ctx, "FROM t;"))
	assert.Contains(t, tr.Output(), "| 42 |")
	assert.Empty(t, tr.ErrorOutput())
}

func TestReplSessionReportsErrors(t *testing.T) {
	s, tr := newTestSession(t)
	ctx := context.Background()

	assert.False(t, s.handleLine(ctx, "SELECT * FROM missing;"))
	assert.Contains(t, tr.ErrorOutput(), "error: statement 1 (line 1)")
	assert.Equal(t, replPrompt, s.prompt())
}

func TestReplSessionDotCommands(t *testing.T) {
	s, tr := newTestSession(t)
	ctx := context.Background()

	assert.False(t, s.handleLine(ctx, ".help"))
	assert.Contains(t, tr.Output(), ".dialect [name]")

	tr.Reset()
	assert.False(t, s.handleLine(ctx, ".dialect postgres"))
	assert.Equal(t, "postgres", s.dialect.Name)
	assert.False(t, s.handleLine(ctx, ".dialect nosuch"))
	assert.Contains(t, tr.ErrorOutput(), "unknown dialect")

	tr.Reset()
	assert.False(t, s.handleLine(ctx, "CREATE VIEW v AS SELECT 1 AS x;"))
	assert.False(t, s.handleLine(ctx, ".tables"))
	assert.Contains(t, tr.Output(), "| v |")

	assert.False(t, s.handleLine(ctx, "SELECT"))
	assert.Equal(t, replContinuePrompt, s.prompt())
	assert.False(t, s.handleLine(ctx, ".reset"))
	assert.Equal(t, replPrompt, s.prompt())

	tr.Reset()
	assert.False(t, s.handleLine(ctx, ".bogus"))
	assert.Contains(t, tr.ErrorOutput(), "unknown command")

	assert.True(t, s.handleLine(ctx, ".quit"))
	assert.True(t, s.handleLine(ctx, ".exit"))
}
