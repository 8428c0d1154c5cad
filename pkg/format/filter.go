package format

import (
	"iter"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Filter transforms a token stream. Filters are lazy: nothing runs until the
// returned sequence is ranged over.
type Filter func(iter.Seq[token.Token]) iter.Seq[token.Token]

// Chain applies filters to src in order.
func Chain(src iter.Seq[token.Token], filters ...Filter) iter.Seq[token.Token] {
	for _, f := range filters {
		src = f(src)
	}
	return src
}

// Serialize concatenates the literals of a stream.
func Serialize(seq iter.Seq[token.Token]) string {
	var sb strings.Builder
	for t := range seq {
		sb.WriteString(t.Literal)
	}
	return sb.String()
}

func synthesize(typ token.TokenType, text string) token.Token {
	return token.Token{Type: typ, Literal: text}
}

func whitespace(text string) token.Token {
	if strings.Contains(text, "\n") {
		return synthesize(token.Newline, text)
	}
	return synthesize(token.Whitespace, text)
}

// KeywordIf marks a bare IF as a keyword. The keyword tables leave IF out
// because it is also a common function name.
func KeywordIf() Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			for t := range seq {
				if t.Type == token.Name && strings.EqualFold(t.Literal, "IF") {
					t.Type = token.Keyword
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// GroupComments coalesces every run of whitespace and comments that holds
// at least one comment into a single Group.Comment token. Runs without a
// comment pass through untouched.
func GroupComments() Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			var run []token.Token
			hasComment := false

			flush := func() bool {
				defer func() {
					run = run[:0]
					hasComment = false
				}()
				if len(run) == 0 {
					return true
				}
				if !hasComment {
					for _, t := range run {
						if !yield(t) {
							return false
						}
					}
					return true
				}
				return yield(token.Token{
					Type:    token.GroupComment,
					Literal: token.Join(run),
					Span:    token.Span{Start: run[0].Span.Start, End: run[len(run)-1].Span.End},
				})
			}

			for t := range seq {
				if t.IsWhitespace() || t.Type.Is(token.Comment) {
					run = append(run, t)
					hasComment = hasComment || t.Type.Is(token.Comment)
					continue
				}
				if !flush() || !yield(t) {
					return
				}
			}
			flush()
		}
	}
}

// Ungroup expands Group.Comment tokens back into primitive tokens by
// re-lexing their text with the dialect's grammar.
func Ungroup(d *dialect.Dialect) Filter {
	lx := lexer.New(d)
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			for t := range seq {
				if t.Type != token.GroupComment {
					if !yield(t) {
						return
					}
					continue
				}
				origin := t.Span.Start
				for sub := range lx.All(t.Literal) {
					if origin.IsValid() {
						sub.Span = token.Span{
							Start: sub.Span.Start.Rebase(origin),
							End:   sub.Span.End.Rebase(origin),
						}
					} else {
						sub.Span = token.Span{}
					}
					if !yield(sub) {
						return
					}
				}
			}
		}
	}
}

// StripComments drops Group.Comment tokens. A dropped group is replaced by a
// newline if it spanned lines and by a space otherwise, so the tokens on
// either side stay apart. Nothing replaces a group at the very start or end,
// after "(" or before ",", ";" or ")". Whitespace following a dropped
// leading group is dropped with it.
func StripComments() Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			started, droppedLead := false, false
			sep := ""
			var prev token.Token
			for t := range seq {
				if t.Type == token.GroupComment {
					if !started {
						droppedLead = true
						continue
					}
					if strings.Contains(t.Literal, "\n") {
						sep = "\n"
					} else if sep == "" {
						sep = " "
					}
					continue
				}
				if !started && droppedLead && t.IsWhitespace() {
					continue
				}
				if sep != "" && !t.IsWhitespace() && !prev.IsPunct("(") &&
					!t.IsPunct(",") && !t.IsPunct(";") && !t.IsPunct(")") {
					if !yield(whitespace(sep)) {
						return
					}
				}
				sep = ""
				started, prev = true, t
				if !yield(t) {
					return
				}
			}
		}
	}
}

// StripWhitespace collapses whitespace runs to a single space. Whitespace at
// the ends of the stream, after "(" and before ",", ";" or ")" is dropped.
func StripWhitespace() Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			started, pending := false, false
			var prev token.Token
			for t := range seq {
				if t.IsWhitespace() {
					pending = started && !prev.IsPunct("(")
					continue
				}
				if pending && !t.IsPunct(",") && !t.IsPunct(";") && !t.IsPunct(")") {
					if !yield(synthesize(token.Whitespace, " ")) {
						return
					}
				}
				pending, started, prev = false, true, t
				if !yield(t) {
					return
				}
			}
		}
	}
}

// LTrim removes whitespace at the start of every line. A Newline token
// (which after reindenting also carries the indentation) counts as the line
// break itself and is kept; the whitespace following it is dropped.
func LTrim() Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			lineStart := true
			for t := range seq {
				switch {
				case t.Type == token.Newline:
					lineStart = true
				case t.IsWhitespace():
					if lineStart {
						continue
					}
				default:
					lineStart = t.Type == token.GroupComment && strings.HasSuffix(t.Literal, "\n")
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}
