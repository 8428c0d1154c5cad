package lexer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// MultilineCommentState is entered on /* and left on the matching */.
// Block comments nest.
const MultilineCommentState = "multiline-comment"

var grammars sync.Map // *dialect.Dialect -> *Grammar

// GrammarFor returns the grammar of a dialect, building it on first use.
// Grammars are cached per *dialect.Dialect and never evicted: dialects are
// expected to be long-lived values such as the registered ones. Callers
// that build dialects on the fly should use SQLGrammar with NewWithGrammar.
func GrammarFor(d *dialect.Dialect) *Grammar {
	if g, ok := grammars.Load(d); ok {
		return g.(*Grammar)
	}
	g, _ := grammars.LoadOrStore(d, SQLGrammar(d).MustBuild())
	return g.(*Grammar)
}

// SQLGrammar assembles the SQL grammar for a dialect. Rule order matters:
// multi-word keywords come before the generic word rule, and there is no
// catch-all, so anything unmatched becomes an Error token.
func SQLGrammar(d *dialect.Dialect) *GrammarBuilder {
	f := d.Features
	b := NewGrammar()

	b.Rule(RootState, `\r?\n`, token.Newline).
		Rule(RootState, `[^\S\n]+`, token.Whitespace).
		Rule(RootState, `--[^\r\n]*`, token.CommentSingle)
	if f.HashComments {
		b.Rule(RootState, `#[^\r\n]*`, token.CommentSingle)
	}
	b.PushRule(RootState, `/\*`, token.CommentMultiline, MultilineCommentState).
		Rule(RootState, `:=`, token.Operator).
		Rule(RootState, `::`, token.Punctuation).
		Rule(RootState, `\*`, token.Wildcard).
		Rule(RootState, `\?|%s|%\(\w+\)s|:[\p{L}_][\p{L}\p{N}_]*`, token.NamePlaceholder)
	if f.DollarPlaceholders {
		b.Rule(RootState, `\$\d+`, token.NamePlaceholder)
	}
	if f.DollarQuoting {
		b.Rule(RootState, `\$(?:[\p{L}_][\p{L}\p{N}_]*)?\$`, token.NameBuiltin)
	}
	b.Rule(RootState, `@@[\p{L}_][\p{L}\p{N}_]*`, token.NameBuiltin).
		Rule(RootState, `@[\p{L}_][\p{L}\p{N}_$]*`, token.Name).
		Rule(RootState, `0[xX][0-9a-fA-F]+`, token.NumberHex).
		Rule(RootState, `(?:\d+\.\d*|\.\d+)(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`, token.NumberFloat).
		Rule(RootState, `\d+`, token.NumberInteger).
		Rule(RootState, `'(?:''|\\.|[^'\\])*'`, token.StringSingle).
		Rule(RootState, `"(?:""|[^"])*"`, token.StringSymbol)
	if f.BacktickIdentifiers {
		b.Rule(RootState, "`(?:``|[^`])*`", token.Name)
	}
	if mw := d.MultiWordKeywords(); len(mw) > 0 {
		b.Rule(RootState, multiWordPattern(mw), token.Keyword)
	}
	b.Classify(RootState, `[\p{L}_][\p{L}\p{N}_$]*`, func(text string) token.TokenType {
		t, _ := d.LookupKeyword(text)
		return t
	}).
		Rule(RootState, `;`, token.Semicolon).
		Rule(RootState, `[()\[\],.:]`, token.Punctuation).
		Rule(RootState, `!?~~?\*?|[<>=!]+`, token.OperatorComparison).
		Rule(RootState, `->>?|\|\||[+\-/%^&|@#]`, token.Operator)

	b.Rule(MultilineCommentState, `[^/*]+`, token.CommentMultiline).
		PushRule(MultilineCommentState, `/\*`, token.CommentMultiline, MultilineCommentState).
		PopRule(MultilineCommentState, `\*/`, token.CommentMultiline).
		Rule(MultilineCommentState, `[/*]`, token.CommentMultiline)

	return b
}

// multiWordPattern builds a case-insensitive alternation of phrases with
// flexible inner whitespace, e.g. "END LOOP" -> END\s+LOOP.
func multiWordPattern(phrases []string) string {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `\s+`))
	}
	return `(?i:` + strings.Join(alts, "|") + `)\b`
}
