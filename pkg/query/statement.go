// Package query is the single-statement facade over the lexer and splitter:
// it parses text into Statements and answers navigation and classification
// questions about them.
package query

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/split"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Index addresses a token inside a Statement. Indices are relative to the
// statement, starting at 0.
type Index = split.Index

// None is returned when navigation or search finds nothing.
const None = split.None

// Type is the statement classification.
type Type string

// Statement types.
const (
	Select Type = "SELECT"
	Insert Type = "INSERT"
	Update Type = "UPDATE"
	Delete Type = "DELETE"
	Create Type = "CREATE"
	Drop   Type = "DROP"
	Other  Type = "OTHER"
)

var types = map[string]Type{
	"SELECT": Select,
	"INSERT": Insert,
	"UPDATE": Update,
	"DELETE": Delete,
	"CREATE": Create,
	"DROP":   Drop,
}

// Statement is an immutable, ordered run of tokens.
type Statement struct {
	tokens []token.Token
}

// NewStatement wraps tokens as a statement.
func NewStatement(tokens []token.Token) *Statement {
	return &Statement{tokens: tokens}
}

// Tokens returns the statement's tokens. The slice must not be modified.
func (s *Statement) Tokens() []token.Token { return s.tokens }

// Len returns the number of tokens.
func (s *Statement) Len() int { return len(s.tokens) }

// At returns the token at i.
func (s *Statement) At(i Index) token.Token { return s.tokens[i] }

// TokenStart returns the index of the first token, or None if empty.
func (s *Statement) TokenStart() Index {
	if len(s.tokens) == 0 {
		return None
	}
	return 0
}

// TokenEnd returns the index of the last token, or None if empty.
func (s *Statement) TokenEnd() Index {
	return Index(len(s.tokens) - 1)
}

// TokenNext returns the index after i, or None.
func (s *Statement) TokenNext(i Index) Index {
	if i < 0 || int(i)+1 >= len(s.tokens) {
		return None
	}
	return i + 1
}

// TokenPrev returns the index before i, or None.
func (s *Statement) TokenPrev(i Index) Index {
	if i <= 0 || int(i) > len(s.tokens) {
		return None
	}
	return i - 1
}

// NextSignificant returns the first index after i that is neither
// whitespace nor a comment, or None.
func (s *Statement) NextSignificant(i Index) Index {
	for j := s.TokenNext(i); j != None; j = s.TokenNext(j) {
		if significant(s.tokens[j]) {
			return j
		}
	}
	return None
}

// PrevSignificant returns the last index before i that is neither
// whitespace nor a comment, or None.
func (s *Statement) PrevSignificant(i Index) Index {
	for j := s.TokenPrev(i); j != None; j = s.TokenPrev(j) {
		if significant(s.tokens[j]) {
			return j
		}
	}
	return None
}

// FindKeyword returns the first keyword token equal to name
// (case-insensitive), or None.
func (s *Statement) FindKeyword(name string) Index {
	return s.FindKeywordIn(name, s.TokenStart(), s.TokenEnd())
}

// FindKeywordIn is FindKeyword restricted to the inclusive range
// [start, end]. None as start or end means the first or last token.
func (s *Statement) FindKeywordIn(name string, start, end Index) Index {
	if start == None {
		start = s.TokenStart()
	}
	if end == None || int(end) >= len(s.tokens) {
		end = s.TokenEnd()
	}
	if start == None {
		return None
	}
	for i := start; i <= end; i++ {
		if s.tokens[i].IsKeyword(name) {
			return i
		}
	}
	return None
}

// Type classifies the statement by its first keyword. Leading whitespace
// and comments are skipped; anything that is not one of the known keywords
// is Other.
func (s *Statement) Type() Type {
	i := s.TokenStart()
	if i != None && !significant(s.tokens[i]) {
		i = s.NextSignificant(i)
	}
	if i == None || !s.tokens[i].Type.Is(token.Keyword) {
		return Other
	}
	if t, ok := types[strings.ToUpper(s.tokens[i].Literal)]; ok {
		return t
	}
	return Other
}

// IsBlank reports whether the statement holds only whitespace, comments and
// semicolons.
func (s *Statement) IsBlank() bool {
	for _, t := range s.tokens {
		if significant(t) && t.Type != token.Semicolon {
			return false
		}
	}
	return true
}

// String returns the exact source text of the statement.
func (s *Statement) String() string {
	return token.Join(s.tokens)
}

// Trimmed returns the statement text without surrounding whitespace and
// without a trailing semicolon.
func (s *Statement) Trimmed() string {
	text := strings.TrimSpace(s.String())
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}

// Span returns the source range covered by the statement.
func (s *Statement) Span() token.Span {
	if len(s.tokens) == 0 {
		return token.Span{}
	}
	return token.Span{
		Start: s.tokens[0].Span.Start,
		End:   s.tokens[len(s.tokens)-1].Span.End,
	}
}

func significant(t token.Token) bool {
	return !t.IsWhitespace() && !t.IsComment()
}
