package lexer_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	Type    token.TokenType
	Literal string
}

func simplify(tokens []token.Token) []tok {
	out := make([]tok, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tok{t.Type, t.Literal})
	}
	return out
}

func nonSpace(tokens []token.Token) []tok {
	var out []tok
	for _, t := range simplify(tokens) {
		if !t.Type.Is(token.Whitespace) {
			out = append(out, t)
		}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "select",
			input: "SELECT a, b FROM t WHERE x >= 1.5",
			want: []tok{
				{token.KeywordDML, "SELECT"},
				{token.Name, "a"},
				{token.Punctuation, ","},
				{token.Name, "b"},
				{token.Keyword, "FROM"},
				{token.Name, "t"},
				{token.Keyword, "WHERE"},
				{token.Name, "x"},
				{token.OperatorComparison, ">="},
				{token.NumberFloat, "1.5"},
			},
		},
		{
			name:  "strings and symbols",
			input: `'it''s' "Col ""x""" 0xFF 42 *`,
			want: []tok{
				{token.StringSingle, "'it''s'"},
				{token.StringSymbol, `"Col ""x"""`},
				{token.NumberHex, "0xFF"},
				{token.NumberInteger, "42"},
				{token.Wildcard, "*"},
			},
		},
		{
			name:  "multi-word keyword before identifiers",
			input: "end  loop; endloop",
			want: []tok{
				{token.Keyword, "end  loop"},
				{token.Semicolon, ";"},
				{token.Name, "endloop"},
			},
		},
		{
			name:  "placeholders",
			input: "a = ? OR b = :name OR c = %(k)s",
			want: []tok{
				{token.Name, "a"},
				{token.OperatorComparison, "="},
				{token.NamePlaceholder, "?"},
				{token.Keyword, "OR"},
				{token.Name, "b"},
				{token.OperatorComparison, "="},
				{token.NamePlaceholder, ":name"},
				{token.Keyword, "OR"},
				{token.Name, "c"},
				{token.OperatorComparison, "="},
				{token.NamePlaceholder, "%(k)s"},
			},
		},
		{
			name:  "line comment",
			input: "select 1 -- trailing\n",
			want: []tok{
				{token.KeywordDML, "select"},
				{token.NumberInteger, "1"},
				{token.CommentSingle, "-- trailing"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lexer.Tokenize(tt.input, dialect.ANSI)
			assert.Equal(t, tt.want, nonSpace(tokens))
			assert.Equal(t, tt.input, token.Join(tokens))
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"SELECT 1",
		"select *\r\nfrom t;\n\n",
		"/* a /* nested */ comment */ SELECT {weird} ~ `x` 'unterminated",
		"CREATE FUNCTION f() AS $$ BEGIN SELECT 1; END; $$;",
		"héllo wörld -- ünïcode\n'ç'",
		"a::int || b -> 'k' ->> 'v'",
		"\x00\x01 select",
	}
	dialects := []*dialect.Dialect{dialect.ANSI, postgres.Postgres, mysql.MySQL}

	for _, d := range dialects {
		for _, in := range inputs {
			tokens := lexer.Tokenize(in, d)
			require.Equal(t, in, token.Join(tokens), "dialect %s", d.Name)

			// Contiguous and strictly increasing.
			off := 0
			for _, tk := range tokens {
				assert.Equal(t, off, tk.Start())
				assert.Greater(t, tk.End(), tk.Start())
				off = tk.End()
			}
		}
	}
}

func TestPositions(t *testing.T) {
	tokens := lexer.Tokenize("select\n  héllo", dialect.ANSI)
	require.Len(t, tokens, 4)

	last := tokens[3]
	assert.Equal(t, "héllo", last.Literal)
	assert.Equal(t, 2, last.Span.Start.Line)
	assert.Equal(t, 3, last.Span.Start.Column)
	assert.Equal(t, 9, last.Span.Start.Offset)
	assert.Equal(t, 8, last.Span.End.Column)
}

func TestErrorRecovery(t *testing.T) {
	tokens := lexer.Tokenize("a { b 'open", dialect.ANSI)
	assert.Equal(t, []tok{
		{token.Name, "a"},
		{token.Error, "{"},
		{token.Name, "b"},
		{token.Error, "'"},
		{token.Name, "open"},
	}, nonSpace(tokens))
}

func TestNestedComments(t *testing.T) {
	in := "/* outer /* inner */ still comment */select"
	tokens := lexer.Tokenize(in, dialect.ANSI)

	var comment strings.Builder
	for _, tk := range tokens[:len(tokens)-1] {
		assert.Equal(t, token.CommentMultiline, tk.Type)
		comment.WriteString(tk.Literal)
	}
	assert.Equal(t, "/* outer /* inner */ still comment */", comment.String())
	assert.Equal(t, token.KeywordDML, tokens[len(tokens)-1].Type)
}

func TestUnterminatedCommentRunsToEnd(t *testing.T) {
	tokens := lexer.Tokenize("/* never closed\nselect 1", dialect.ANSI)
	for _, tk := range tokens {
		assert.True(t, tk.Type.Is(token.Comment), "%q", tk.Literal)
	}
}

func TestDialectFeatures(t *testing.T) {
	t.Run("postgres dollar quotes and placeholders", func(t *testing.T) {
		got := nonSpace(lexer.Tokenize("$$ $body$ $1 x::int", postgres.Postgres))
		assert.Equal(t, []tok{
			{token.NameBuiltin, "$$"},
			{token.NameBuiltin, "$body$"},
			{token.NamePlaceholder, "$1"},
			{token.Name, "x"},
			{token.Punctuation, "::"},
			{token.Name, "int"},
		}, got)
	})

	t.Run("ansi has no dollar quoting", func(t *testing.T) {
		got := nonSpace(lexer.Tokenize("$$", dialect.ANSI))
		assert.Equal(t, []tok{{token.Error, "$"}, {token.Error, "$"}}, got)
	})

	t.Run("mysql hash comments and backticks", func(t *testing.T) {
		got := nonSpace(lexer.Tokenize("select `my col` # note\n", mysql.MySQL))
		assert.Equal(t, []tok{
			{token.KeywordDML, "select"},
			{token.Name, "`my col`"},
			{token.CommentSingle, "# note"},
		}, got)
	})

	t.Run("hash is an operator elsewhere", func(t *testing.T) {
		got := nonSpace(lexer.Tokenize("a # b", dialect.ANSI))
		assert.Equal(t, token.Operator, got[1].Type)
	})
}

func TestAllStopsEarly(t *testing.T) {
	n := 0
	for range lexer.New(nil).All("a b c d e") {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestGrammarIsShared(t *testing.T) {
	a := lexer.GrammarFor(dialect.ANSI)
	b := lexer.GrammarFor(dialect.ANSI)
	assert.Same(t, a, b)
	assert.Equal(t, []string{lexer.RootState, lexer.MultilineCommentState}, a.States())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := "SELECT a FROM b; /* c */ DELETE FROM d"
			assert.Equal(t, in, token.Join(lexer.Tokenize(in, dialect.ANSI)))
		}()
	}
	wg.Wait()
}

func TestAdHocDialectGrammar(t *testing.T) {
	d := dialect.NewDialect("adhoc").Operators("~").Build()
	l := lexer.NewWithGrammar(lexer.SQLGrammar(d).MustBuild())

	in := "select a ~ b"
	toks := l.Tokenize(in)
	assert.Equal(t, in, token.Join(toks))
	assert.True(t, toks[0].Type.Is(token.Keyword))
}

func TestGrammarBuilderErrors(t *testing.T) {
	_, err := lexer.NewGrammar().Rule("other", `x`, token.Name).Build()
	assert.ErrorContains(t, err, "root")

	_, err = lexer.NewGrammar().PushRule(lexer.RootState, `x`, token.Name, "missing").Build()
	assert.ErrorContains(t, err, "undeclared")

	_, err = lexer.NewGrammar().Rule(lexer.RootState, `(`, token.Name).Build()
	assert.Error(t, err)

	assert.Panics(t, func() {
		lexer.NewGrammar().MustBuild()
	})
}

func TestCustomGrammar(t *testing.T) {
	g := lexer.NewGrammar().
		Rule(lexer.RootState, `[a-z]+`, token.Name).
		PushRule(lexer.RootState, `<`, token.Punctuation, "tag").
		Rule("tag", `[^>]+`, token.StringSymbol).
		PopRule("tag", `>`, token.Punctuation).
		MustBuild()

	got := simplify(lexer.NewWithGrammar(g).Tokenize("ab<cd>e\n1"))
	assert.Equal(t, []tok{
		{token.Name, "ab"},
		{token.Punctuation, "<"},
		{token.StringSymbol, "cd"},
		{token.Punctuation, ">"},
		{token.Name, "e"},
		{token.Newline, "\n"},
		{token.Error, "1"},
	}, got)
}
