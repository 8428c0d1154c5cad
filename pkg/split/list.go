// Package split partitions SQL text into statements.
//
// Tokens are held in a List, an index-addressed arena: neighbours are reached
// through integer hops instead of pointers, and ranges of a List are plain
// index pairs.
package split

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Index addresses a token in a List.
type Index int

// None is returned by navigation past either end of a List.
const None Index = -1

// Kind is the coarse classification the splitter works with.
type Kind uint8

// Token kinds.
const (
	kindPending Kind = iota
	KindUnknown
	KindSemicolon
	KindWhitespace
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindSemicolon:
		return "Semicolon"
	case KindWhitespace:
		return "Whitespace"
	case KindOperator:
		return "Operator"
	default:
		return "Unknown"
	}
}

// List is an ordered token arena. Kinds are computed on first access and
// cached, so a List must not be shared between goroutines.
type List struct {
	dialect *dialect.Dialect
	tokens  []token.Token
	kinds   []Kind
}

// Tokenize lexes text with the dialect's grammar into a List.
func Tokenize(text string, d *dialect.Dialect) *List {
	if d == nil {
		d = dialect.Default()
	}
	return NewList(lexer.Tokenize(text, d), d)
}

// NewList wraps already lexed tokens.
func NewList(tokens []token.Token, d *dialect.Dialect) *List {
	if d == nil {
		d = dialect.Default()
	}
	return &List{
		dialect: d,
		tokens:  tokens,
		kinds:   make([]Kind, len(tokens)),
	}
}

// Len returns the number of tokens.
func (l *List) Len() int { return len(l.tokens) }

// At returns the token at i.
func (l *List) At(i Index) token.Token { return l.tokens[i] }

// Tokens returns the tokens in [start, end).
func (l *List) Tokens(start, end Index) []token.Token { return l.tokens[start:end] }

// First returns the index of the first token, or None for an empty list.
func (l *List) First() Index {
	if len(l.tokens) == 0 {
		return None
	}
	return 0
}

// Next returns the index after i, or None at the end.
func (l *List) Next(i Index) Index {
	if i < 0 || int(i)+1 >= len(l.tokens) {
		return None
	}
	return i + 1
}

// Prev returns the index before i, or None at the start.
func (l *List) Prev(i Index) Index {
	if i <= 0 || int(i) > len(l.tokens) {
		return None
	}
	return i - 1
}

// Kind classifies the token at i from its text and the dialect's operator
// set.
func (l *List) Kind(i Index) Kind {
	if k := l.kinds[i]; k != kindPending {
		return k
	}
	k := l.classify(l.tokens[i])
	l.kinds[i] = k
	return k
}

func (l *List) classify(t token.Token) Kind {
	switch {
	case t.Literal == ";":
		return KindSemicolon
	case t.Type.Is(token.Whitespace):
		return KindWhitespace
	case l.dialect.IsOperator(strings.TrimSpace(t.Literal)):
		return KindOperator
	default:
		return KindUnknown
	}
}

// Dialect returns the dialect the list was classified with.
func (l *List) Dialect() *dialect.Dialect { return l.dialect }
