package lexer

import (
	"iter"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Lexer tokenizes SQL input with a Grammar. It holds no per-input state and
// is safe for concurrent use.
type Lexer struct {
	grammar *Grammar
}

// New creates a Lexer for the given dialect. A nil dialect means the default.
func New(d *dialect.Dialect) *Lexer {
	if d == nil {
		d = dialect.Default()
	}
	return &Lexer{grammar: GrammarFor(d)}
}

// NewWithGrammar creates a Lexer from an explicit grammar.
func NewWithGrammar(g *Grammar) *Lexer {
	return &Lexer{grammar: g}
}

// Grammar returns the lexer's transition table.
func (l *Lexer) Grammar() *Grammar {
	return l.grammar
}

// Tokenize returns all tokens of input. The tokens are contiguous and
// concatenating their literals reproduces input exactly.
func (l *Lexer) Tokenize(input string) []token.Token {
	var tokens []token.Token
	for tok := range l.All(input) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// All streams the tokens of input.
//
// Unmatched input never aborts lexing: a newline resets the state stack to
// root and is emitted as a Newline token, any other character is emitted on
// its own as an Error token.
func (l *Lexer) All(input string) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		stack := []string{RootState}
		pos := token.Start

		emit := func(typ token.TokenType, text string) bool {
			end := pos.Advance(text)
			tok := token.Token{
				Type:    typ,
				Literal: text,
				Span:    token.Span{Start: pos, End: end},
			}
			pos = end
			return yield(tok)
		}

		for pos.Offset < len(input) {
			rest := input[pos.Offset:]
			rule, n := l.match(stack[len(stack)-1], rest)
			if rule == nil {
				if rest[0] == '\n' {
					stack = stack[:1]
					if !emit(token.Newline, "\n") {
						return
					}
					continue
				}
				_, size := utf8.DecodeRuneInString(rest)
				if !emit(token.Error, rest[:size]) {
					return
				}
				continue
			}

			text := rest[:n]
			if !emit(rule.typeOf(text), text) {
				return
			}
			switch rule.Action {
			case Push:
				stack = append(stack, rule.Next)
			case Pop:
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
}

// match returns the first rule of state matching a non-empty prefix of s.
func (l *Lexer) match(state, s string) (*Rule, int) {
	rules := l.grammar.states[state]
	for i := range rules {
		if n := rules[i].match(s); n > 0 {
			return &rules[i], n
		}
	}
	return nil, 0
}

// Tokenize tokenizes input with the lexer of the given dialect.
func Tokenize(input string, d *dialect.Dialect) []token.Token {
	return New(d).Tokenize(input)
}
