// Package token defines the token types produced by the SQL lexer.
//
// Token types form a closed hierarchy: every type has a parent and
// TokenType.Is answers "is a kind of" questions, so a filter that cares about
// any keyword can test t.Is(Keyword) and match Keyword.DML, Keyword.DDL, etc.
package token

import "strings"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

// Token types. Children are declared after their parent; the parent table
// below is the single source of truth for the hierarchy.
const (
	// Invalid is the parent of every top-level type.
	Invalid TokenType = iota - 1

	// Error marks input no grammar rule could match. Never fatal.
	Error

	Whitespace
	Newline

	Comment
	CommentSingle
	CommentMultiline

	// Group is synthesized by the formatter; the lexer never emits it.
	Group
	GroupComment

	Keyword
	KeywordDML
	KeywordDDL

	Name
	NameBuiltin
	NamePlaceholder

	Operator
	OperatorComparison

	Literal
	Number
	NumberInteger
	NumberFloat
	NumberHex
	String
	StringSingle
	StringSymbol

	Punctuation
	Semicolon

	Wildcard

	numTypes
)

var parents = [numTypes]TokenType{
	Error:              Invalid,
	Whitespace:         Invalid,
	Newline:            Whitespace,
	Comment:            Invalid,
	CommentSingle:      Comment,
	CommentMultiline:   Comment,
	Group:              Invalid,
	GroupComment:       Group,
	Keyword:            Invalid,
	KeywordDML:         Keyword,
	KeywordDDL:         Keyword,
	Name:               Invalid,
	NameBuiltin:        Name,
	NamePlaceholder:    Name,
	Operator:           Invalid,
	OperatorComparison: Operator,
	Literal:            Invalid,
	Number:             Literal,
	NumberInteger:      Number,
	NumberFloat:        Number,
	NumberHex:          Number,
	String:             Literal,
	StringSingle:       String,
	StringSymbol:       String,
	Punctuation:        Invalid,
	Semicolon:          Punctuation,
	Wildcard:           Invalid,
}

var names = [numTypes]string{
	Error:              "Error",
	Whitespace:         "Whitespace",
	Newline:            "Newline",
	Comment:            "Comment",
	CommentSingle:      "Single",
	CommentMultiline:   "Multiline",
	Group:              "Group",
	GroupComment:       "Comment",
	Keyword:            "Keyword",
	KeywordDML:         "DML",
	KeywordDDL:         "DDL",
	Name:               "Name",
	NameBuiltin:        "Builtin",
	NamePlaceholder:    "Placeholder",
	Operator:           "Operator",
	OperatorComparison: "Comparison",
	Literal:            "Literal",
	Number:             "Number",
	NumberInteger:      "Integer",
	NumberFloat:        "Float",
	NumberHex:          "Hex",
	String:             "String",
	StringSingle:       "Single",
	StringSymbol:       "Symbol",
	Punctuation:        "Punctuation",
	Semicolon:          "Semicolon",
	Wildcard:           "Wildcard",
}

// Valid reports whether t is one of the declared token types.
func (t TokenType) Valid() bool {
	return t >= 0 && t < numTypes
}

// Parent returns the parent type, or Invalid for top-level types.
func (t TokenType) Parent() TokenType {
	if !t.Valid() {
		return Invalid
	}
	return parents[t]
}

// Is reports whether t equals other or descends from it.
func (t TokenType) Is(other TokenType) bool {
	for cur := t; cur.Valid(); cur = parents[cur] {
		if cur == other {
			return true
		}
	}
	return false
}

// String renders the dotted path of the type, e.g. "Literal.String.Single".
func (t TokenType) String() string {
	if !t.Valid() {
		return "Invalid"
	}
	var parts []string
	for cur := t; cur.Valid(); cur = parents[cur] {
		parts = append(parts, names[cur])
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Types returns every declared token type in declaration order.
func Types() []TokenType {
	out := make([]TokenType, 0, numTypes)
	for t := TokenType(0); t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Token represents a lexical token with position information.
// Literal is the exact source text; concatenating the literals of a token
// stream reproduces the input.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Start returns the 0-based byte offset of the first byte of the token.
func (t Token) Start() int { return t.Span.Start.Offset }

// End returns the 0-based byte offset just past the token.
func (t Token) End() int { return t.Span.End.Offset }

// Normalized returns the upper-cased literal for keywords and the literal
// unchanged for everything else.
func (t Token) Normalized() string {
	if t.Type.Is(Keyword) {
		return strings.ToUpper(t.Literal)
	}
	return t.Literal
}

// IsWhitespace reports whether the token is whitespace (including newlines).
func (t Token) IsWhitespace() bool {
	return t.Type.Is(Whitespace)
}

// IsComment reports whether the token is a comment or a grouped comment run.
func (t Token) IsComment() bool {
	return t.Type.Is(Comment) || t.Type == GroupComment
}

// IsKeyword reports whether the token is a keyword matching one of the given
// words, compared case-insensitively. With no words it only checks the type.
func (t Token) IsKeyword(words ...string) bool {
	if !t.Type.Is(Keyword) {
		return false
	}
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if strings.EqualFold(t.Literal, w) {
			return true
		}
	}
	return false
}

// IsPunct reports whether the token is punctuation with exactly the given text.
func (t Token) IsPunct(s string) bool {
	return t.Type.Is(Punctuation) && t.Literal == s
}

// Join concatenates the literals of tokens.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Literal)
	}
	return sb.String()
}
