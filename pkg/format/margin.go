package format

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// marginSlack is how far short of the margin folding may start.
const marginSlack = 10

type margin struct {
	width, threshold int
	yield            func(token.Token) bool

	col     int    // runes on the current line
	indent  string // leading whitespace of the current line
	hasText bool   // the current line holds more than indentation
}

func (m *margin) emit(t token.Token) bool {
	if i := strings.LastIndexByte(t.Literal, '\n'); i >= 0 {
		rest := t.Literal[i+1:]
		text := strings.TrimLeft(rest, " \t")
		m.col = utf8.RuneCountInString(rest)
		m.indent = rest[:len(rest)-len(text)]
		m.hasText = text != ""
		return m.yield(t)
	}
	switch {
	case m.hasText:
	case t.IsWhitespace():
		m.indent += t.Literal
	default:
		m.hasText = true
	}
	m.col += utf8.RuneCountInString(t.Literal)
	return m.yield(t)
}

func (m *margin) fold() bool {
	return m.emit(whitespace("\n" + m.indent))
}

// overflows reports whether adding n more runes should start a new line.
func (m *margin) overflows(n int) bool {
	return m.col >= m.threshold || m.col+n > m.width
}

// RightMargin folds lines longer than width. A fold replaces a whitespace
// token or follows a ",", ";" or ")" and carries the indentation of the
// line it breaks. Lines are folded once they pass the threshold, ten columns
// short of the margin (or half of it for narrow margins), or when the next
// token would cross the margin. Folds only ever happen between tokens, so
// literals are never split.
func RightMargin(width int) Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			m := &margin{
				width:     width,
				threshold: max(width-marginSlack, width/2),
				yield:     yield,
			}
			var held *token.Token
			afterPunct := false

			for t := range seq {
				breaks := strings.Contains(t.Literal, "\n")
				if t.IsWhitespace() && !breaks && m.hasText {
					if held == nil {
						h := t
						held = &h
					} else {
						held.Literal += t.Literal
					}
					continue
				}

				next := firstLineWidth(t.Literal)
				var ok bool
				switch {
				case held != nil && !t.IsWhitespace() && m.overflows(utf8.RuneCountInString(held.Literal)+next):
					ok = m.fold()
				case held != nil:
					ok = m.emit(*held)
				case afterPunct && m.hasText && !t.IsWhitespace() && !closes(t) && m.overflows(next):
					ok = m.fold()
				default:
					ok = true
				}
				held = nil
				if !ok || !m.emit(t) {
					return
				}
				afterPunct = closes(t)
			}
			if held != nil {
				m.emit(*held)
			}
		}
	}
}

func closes(t token.Token) bool {
	return t.IsPunct(",") || t.IsPunct(";") || t.IsPunct(")")
}

func firstLineWidth(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return utf8.RuneCountInString(s)
}
