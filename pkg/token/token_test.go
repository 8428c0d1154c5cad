package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenTypeIs(t *testing.T) {
	tests := []struct {
		typ    TokenType
		parent TokenType
		want   bool
	}{
		{KeywordDML, Keyword, true},
		{KeywordDDL, Keyword, true},
		{Keyword, Keyword, true},
		{Keyword, KeywordDML, false},
		{Newline, Whitespace, true},
		{StringSingle, Literal, true},
		{NumberFloat, Number, true},
		{Semicolon, Punctuation, true},
		{GroupComment, Group, true},
		{GroupComment, Comment, false},
		{Name, Keyword, false},
		{Invalid, Keyword, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.parent.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Is(tt.parent))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "Keyword.DML", KeywordDML.String())
	assert.Equal(t, "Literal.String.Single", StringSingle.String())
	assert.Equal(t, "Group.Comment", GroupComment.String())
	assert.Equal(t, "Punctuation.Semicolon", Semicolon.String())
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Invalid", TokenType(999).String())
}

func TestTypesCoversHierarchy(t *testing.T) {
	types := Types()
	assert.Len(t, types, int(numTypes))
	for _, typ := range types {
		assert.True(t, typ.Valid())
		if p := typ.Parent(); p != Invalid {
			assert.Less(t, int(p), int(typ), "parent of %s declared after child", typ)
		}
	}
}

func TestTokenHelpers(t *testing.T) {
	kw := Token{Type: KeywordDML, Literal: "select"}
	assert.Equal(t, "SELECT", kw.Normalized())
	assert.True(t, kw.IsKeyword())
	assert.True(t, kw.IsKeyword("from", "SELECT"))
	assert.False(t, kw.IsKeyword("FROM"))

	name := Token{Type: Name, Literal: "select_me"}
	assert.Equal(t, "select_me", name.Normalized())
	assert.False(t, name.IsKeyword())

	semi := Token{Type: Semicolon, Literal: ";"}
	assert.True(t, semi.IsPunct(";"))
	assert.False(t, semi.IsPunct(","))

	assert.True(t, Token{Type: Newline, Literal: "\n"}.IsWhitespace())
	assert.True(t, Token{Type: GroupComment, Literal: "-- x\n"}.IsComment())
	assert.Equal(t, "select;", Join([]Token{kw, semi}))
}

func TestPositionAdvance(t *testing.T) {
	p := Start.Advance("ab\ncd")
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, p)

	p = Start.Advance("héllo")
	assert.Equal(t, 6, p.Column)
	assert.Equal(t, 6, p.Offset)

	s := Span{Start: Start, End: p}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(0))
	assert.False(t, s.Contains(6))
	assert.Equal(t, 6, s.Len())
}

func TestPositionRebase(t *testing.T) {
	origin := Position{Line: 3, Column: 5, Offset: 40}

	assert.Equal(t, origin, Start.Rebase(origin))
	assert.Equal(t, Position{Line: 3, Column: 7, Offset: 42}, Position{Line: 1, Column: 3, Offset: 2}.Rebase(origin))
	assert.Equal(t, Position{Line: 4, Column: 2, Offset: 45}, Position{Line: 2, Column: 2, Offset: 5}.Rebase(origin))
}
