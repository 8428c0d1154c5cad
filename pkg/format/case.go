package format

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlkit/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeywordCase rewrites keyword text to the given case.
func KeywordCase(c Case) Filter {
	return caseFilter(c, func(t token.Token) bool {
		return t.Type.Is(token.Keyword)
	})
}

// IdentifierCase rewrites identifier text to the given case. Placeholders and
// quoted identifiers keep their spelling.
func IdentifierCase(c Case) Filter {
	return caseFilter(c, func(t token.Token) bool {
		if t.Type != token.Name && t.Type != token.NameBuiltin {
			return false
		}
		return !strings.HasPrefix(t.Literal, "`")
	})
}

func caseFilter(c Case, match func(token.Token) bool) Filter {
	return func(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
		return func(yield func(token.Token) bool) {
			fold := folder(c)
			for t := range seq {
				if match(t) {
					t.Literal = fold(t.Literal)
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// folder returns the case mapping for c. Casers are stateful, so every
// stream gets its own.
func folder(c Case) func(string) string {
	switch c {
	case CaseUpper:
		return cases.Upper(language.Und).String
	case CaseLower:
		return cases.Lower(language.Und).String
	case CaseCapitalize:
		upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
		return func(s string) string {
			_, n := utf8.DecodeRuneInString(s)
			return upper.String(s[:n]) + lower.String(s[n:])
		}
	}
	return func(s string) string { return s }
}
