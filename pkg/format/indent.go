package format

import (
	"iter"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Keywords that start a new line when reindenting.
var splitKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "ORDER": true, "JOIN": true,
	"LIMIT": true, "BEGIN": true, "FOR": true, "IF": true, "LEFT": true,
	"OUTER": true, "INNER": true, "UNION": true, "GROUP": true, "AND": true,
	"OR": true, "ON": true, "CASE": true, "WHEN": true, "THEN": true,
	"ELSE": true, "VALUES": true,
}

// Keywords indented one extra level for their own line only.
var clauseKeywords = map[string]bool{
	"AND": true, "OR": true, "ON": true, "VALUES": true,
}

// Join qualifiers that keep the rest of the join on their line.
var joinQualifiers = map[string]bool{
	"LEFT": true, "OUTER": true, "INNER": true,
}

// leadWord returns the upper-cased first word of a keyword, so that
// multi-word keywords such as "ORDER BY" behave like their first word.
func leadWord(t token.Token) string {
	if !t.Type.Is(token.Keyword) {
		return ""
	}
	w, _, _ := strings.Cut(strings.TrimSpace(t.Literal), " ")
	if i := strings.IndexAny(w, "\t\r\n"); i >= 0 {
		w = w[:i]
	}
	return strings.ToUpper(w)
}

type indenter struct {
	width int
	yield func(token.Token) bool

	level        int
	started      bool // a non-whitespace token has been emitted
	lineStart    bool // the last emitted text ends a line
	joinPending  bool // inside LEFT/OUTER/INNER ... JOIN
	newStatement bool // the last token was a semicolon
	held         []token.Token
}

func (in *indenter) emit(t token.Token) bool {
	if t.Literal != "" {
		in.lineStart = strings.HasSuffix(t.Literal, "\n")
	}
	return in.yield(t)
}

func (in *indenter) flushHeld() bool {
	for _, w := range in.held {
		if !in.emit(w) {
			return false
		}
	}
	in.held = in.held[:0]
	return true
}

// breakLine replaces held whitespace with a newline and the current
// indentation. Nothing is emitted before the first token.
func (in *indenter) breakLine() bool {
	in.held = in.held[:0]
	if !in.started {
		return true
	}
	text := strings.Repeat(" ", in.level*in.width)
	if !in.lineStart {
		text = "\n" + text
	}
	if text == "" {
		return true
	}
	return in.emit(whitespace(text))
}

func (in *indenter) dedent() {
	if in.level > 0 {
		in.level--
	}
}

func (in *indenter) token(t token.Token) bool {
	if t.IsWhitespace() {
		in.held = append(in.held, t)
		return true
	}

	if in.newStatement {
		in.newStatement = false
		if t.Type == token.GroupComment && !strings.HasPrefix(strings.TrimLeft(t.Literal, " \t"), "\n") {
			// A comment trailing the semicolon stays on its line.
			in.newStatement = !strings.HasSuffix(t.Literal, "\n")
			return in.flushHeld() && in.emit(t)
		}
		in.held = in.held[:0]
		in.level, in.joinPending = 0, false
		if in.started && !in.lineStart {
			if !in.emit(whitespace("\n")) {
				return false
			}
		}
	}

	word := leadWord(t)
	switch {
	case t.IsPunct("("):
		if !in.flushHeld() || !in.emit(t) {
			return false
		}
		in.level++
	case t.IsPunct(")"):
		in.dedent()
		if !in.flushHeld() || !in.emit(t) {
			return false
		}
	case word == "END":
		in.dedent()
		if !in.flushHeld() || !in.emit(t) {
			return false
		}
	case splitKeywords[word]:
		clause := clauseKeywords[word]
		if clause {
			in.level++
		}
		var ok bool
		switch {
		case joinQualifiers[word]:
			if in.joinPending {
				ok = in.flushHeld()
			} else {
				ok = in.breakLine()
			}
			in.joinPending = true
		case word == "JOIN" && in.joinPending:
			in.joinPending = false
			ok = in.flushHeld()
		default:
			ok = in.breakLine()
		}
		if !ok || !in.emit(t) {
			return false
		}
		if clause {
			in.dedent()
		}
		if word == "CASE" {
			in.level++
		}
	default:
		if !in.flushHeld() || !in.emit(t) {
			return false
		}
	}

	in.started = true
	if t.IsPunct(";") {
		in.newStatement = true
	}
	return true
}

// Indent puts every split keyword on a new line indented by width spaces per
// nesting level. Parentheses nest; CASE ... END nests; AND, OR, ON and VALUES
// are indented one extra level on their own line. LEFT, OUTER and INNER keep
// the following JOIN on their line. Each statement after a semicolon starts
// on a new line at level 0.
func Indent(width int) Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			in := &indenter{width: width, yield: yield, lineStart: true}
			for t := range seq {
				if !in.token(t) {
					return
				}
			}
			in.flushHeld()
		}
	}
}
