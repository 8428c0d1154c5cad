package format

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/query"
	"github.com/leapstack-labs/sqlkit/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:     "no options is identity",
			input:    "select  a,b -- c\nfrom t /* x */",
			opts:     Options{},
			expected: "select  a,b -- c\nfrom t /* x */",
		},
		{
			name:     "reindent",
			input:    "select a, b from t where x = 1 and y = 2",
			opts:     Options{Reindent: true},
			expected: "select a, b\nfrom t\nwhere x = 1\n  and y = 2",
		},
		{
			name:     "reindent collapses whitespace",
			input:    "  select   a ,\n\n b  from t  ",
			opts:     Options{Reindent: true, KeywordCase: CaseUpper},
			expected: "SELECT a, b\nFROM t",
		},
		{
			name:     "reindent joins",
			input:    "select * from a left outer join b on a.id = b.id inner join c on c.id = a.id",
			opts:     Options{Reindent: true},
			expected: "select *\nfrom a\nleft outer join b\n  on a.id = b.id\ninner join c\n  on c.id = a.id",
		},
		{
			name:     "reindent values and parentheses",
			input:    "insert into t values ( 1, 2 )",
			opts:     Options{Reindent: true, IndentWidth: 4},
			expected: "insert into t\n    values (1, 2)",
		},
		{
			name:     "reindent subquery",
			input:    "select a from (select b from c) x",
			opts:     Options{Reindent: true},
			expected: "select a\nfrom (\n  select b\n  from c) x",
		},
		{
			name:     "reindent case",
			input:    "select case when a then 1 else 2 end from t",
			opts:     Options{Reindent: true},
			expected: "select\ncase\n  when a\n  then 1\n  else 2 end\nfrom t",
		},
		{
			name:     "reindent statements",
			input:    "select 1; select 2;",
			opts:     Options{Reindent: true},
			expected: "select 1;\nselect 2;",
		},
		{
			name:     "reindent keeps trailing comment on its line",
			input:    "select 1; -- one\nselect 2",
			opts:     Options{Reindent: true},
			expected: "select 1; -- one\nselect 2",
		},
		{
			name:     "reindent marks if",
			input:    "drop table if exists t",
			opts:     Options{Reindent: true},
			expected: "drop table\nif exists t",
		},
		{
			name:     "ltrim",
			input:    "select a\n    from t\n\t where b",
			opts:     Options{LTrim: true},
			expected: "select a\nfrom t\nwhere b",
		},
		{
			name:     "keyword upper",
			input:    "select a from t where a like 'x' group by a",
			opts:     Options{KeywordCase: CaseUpper},
			expected: "SELECT a FROM t WHERE a LIKE 'x' GROUP BY a",
		},
		{
			name:     "keyword capitalize",
			input:    "SELECT a FROM t GROUP BY a",
			opts:     Options{KeywordCase: CaseCapitalize},
			expected: "Select a From t Group by a",
		},
		{
			name:     "if becomes a keyword",
			input:    "drop table if exists t",
			opts:     Options{KeywordCase: CaseUpper},
			expected: "DROP TABLE IF EXISTS t",
		},
		{
			name:     "identifier lower keeps quoted and placeholders",
			input:    "select MyCol, `Keep`, \"Quoted\", :Param from Tbl",
			opts:     Options{IdentifierCase: CaseLower, Dialect: mysql.MySQL},
			expected: "select mycol, `Keep`, \"Quoted\", :Param from tbl",
		},
		{
			name:     "strip comments",
			input:    "/* head */\nselect a -- pick a\nfrom t /* tbl */ where x = 'a -- b' -- tail\n",
			opts:     Options{StripComments: true},
			expected: "select a\nfrom t where x = 'a -- b'",
		},
		{
			name:     "strip comments keeps tokens apart",
			input:    "select a/*x*/from t",
			opts:     Options{StripComments: true},
			expected: "select a from t",
		},
		{
			name:     "strip comments next to punctuation",
			input:    "select f(/*x*/a/*y*/, b/*z*/) from t",
			opts:     Options{StripComments: true},
			expected: "select f(a, b) from t",
		},
		{
			name:     "right margin",
			input:    "select aaaa, bbbb, cccc, dddd, eeee from tttt",
			opts:     Options{RightMargin: 20},
			expected: "select aaaa,\nbbbb, cccc,\ndddd, eeee\nfrom tttt",
		},
		{
			name:     "right margin carries indentation",
			input:    "  select aaaa, bbbb, cccc",
			opts:     Options{RightMargin: 14},
			expected: "  select\n  aaaa,\n  bbbb,\n  cccc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.input, tt.opts)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	optionSets := map[string]Options{
		"upper strip":          {KeywordCase: CaseUpper, StripComments: true},
		"reindent upper strip": {Reindent: true, KeywordCase: CaseUpper, StripComments: true},
	}
	inputs := []string{
		"select a -- c\nfrom b",
		"/* lead */ select * from t where x in (1, 2); -- end\ninsert into t values (1)",
		"select a/*x*/,b from t",
		"CREATE FUNCTION f() AS 'select 1' LANGUAGE sql;",
		"-- lead\n/* x */select 1",
		"",
	}
	for name, opts := range optionSets {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				once := Format(in, opts)
				twice := Format(once, opts)
				assert.Equal(t, once, twice, "input %q", in)
			}
		})
	}
}

func TestStripLeadingCommentWithReindent(t *testing.T) {
	opts := Options{Reindent: true, KeywordCase: CaseUpper, StripComments: true}
	assert.Equal(t, "SELECT 1", Format("-- lead\n/* x */select 1", opts))
	assert.Equal(t, "SELECT a\nFROM t", Format("/* head */\n  select a from t", opts))
}

func TestRightMarginNeverSplitsLiterals(t *testing.T) {
	in := "select 'a long string literal with spaces', \"quoted name here\", 12345.678, x " +
		"from t where y = 'another literal' and z = 0xDEADBEEF"
	want := literals(lexer.Tokenize(in, dialect.ANSI))

	for width := 1; width <= 60; width++ {
		p := NewPipeline(Options{RightMargin: width})
		got := slices.Collect(p.Apply(lexer.New(nil).All(in)))
		assert.Equal(t, want, literals(got), "width %d", width)
		for _, tok := range got {
			if tok.Type.Is(token.Whitespace) {
				continue
			}
			assert.NotContains(t, tok.Literal, "\n", "width %d", width)
		}
	}
}

func literals(tokens []token.Token) []string {
	var out []string
	for _, t := range tokens {
		if t.Type.Is(token.Literal) {
			out = append(out, t.Literal)
		}
	}
	return out
}

func TestUngroupRestoresPrimitiveTokens(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	got := slices.Collect(p.Apply(lexer.New(nil).All("select /* c */ 1")))

	for _, tok := range got {
		assert.NotEqual(t, token.GroupComment, tok.Type)
	}
	require.Len(t, got, 7)
	assert.Equal(t, "/*", got[2].Literal)
	assert.Equal(t, token.CommentMultiline, got[2].Type)
	assert.Equal(t, 8, got[2].Span.Start.Column)
	assert.Equal(t, 7, got[2].Start())
}

func TestGroupComments(t *testing.T) {
	src := lexer.Tokenize("a  b -- c\n  d", dialect.ANSI)
	got := slices.Collect(GroupComments()(slices.Values(src)))

	var types []token.TokenType
	for _, tok := range got {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.TokenType{token.Name, token.Whitespace, token.Name, token.GroupComment, token.Name}, types)
	assert.Equal(t, " -- c\n  ", got[3].Literal)
}

func TestFilterStopsEarly(t *testing.T) {
	p := NewPipeline(Options{Reindent: true, KeywordCase: CaseUpper, RightMargin: 10, StripComments: true})
	n := 0
	for range p.Apply(lexer.New(nil).All("select a, b, c from t where x = 1")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestFormatStatement(t *testing.T) {
	stmt, err := query.Parse("select a from t", dialect.ANSI)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a\nFROM t", FormatStatement(stmt, Options{Reindent: true, KeywordCase: CaseUpper}))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"defaults", DefaultOptions(), ""},
		{"zero", Options{}, ""},
		{"bad keyword case", Options{KeywordCase: "title"}, "keyword_case"},
		{"bad identifier case", Options{IdentifierCase: "UPPER"}, "identifier_case"},
		{"negative indent", Options{IndentWidth: -1}, "indent_width"},
		{"negative margin", Options{RightMargin: -5}, "right_margin"},
		{"bad output format", Options{OutputFormat: "html"}, "output_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatPanicsOnInvalidOptions(t *testing.T) {
	assert.Panics(t, func() {
		Format("select 1", Options{KeywordCase: "shout"})
	})
}

func TestParseCase(t *testing.T) {
	c, err := ParseCase(" Upper ")
	require.NoError(t, err)
	assert.Equal(t, CaseUpper, c)

	var u Case
	require.NoError(t, u.UnmarshalText([]byte("capitalize")))
	assert.Equal(t, CaseCapitalize, u)

	assert.ErrorIs(t, u.UnmarshalText([]byte("title")), ErrInvalidOptions)
}
