package output

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/token"
	"github.com/muesli/termenv"
)

// Highlighter colors SQL token streams with ANSI sequences. Token text is
// written verbatim, so stripping the escapes gives back the input.
type Highlighter struct {
	profile termenv.Profile
}

// NewHighlighter creates a highlighter for the given color profile.
// termenv.Ascii disables color.
func NewHighlighter(profile termenv.Profile) *Highlighter {
	return &Highlighter{profile: profile}
}

// Highlight renders tokens with a color per token type.
func (h *Highlighter) Highlight(tokens []token.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.IsWhitespace() || h.profile == termenv.Ascii {
			sb.WriteString(t.Literal)
			continue
		}
		sb.WriteString(h.style(t.Type).Styled(t.Literal))
	}
	return sb.String()
}

func (h *Highlighter) style(tt token.TokenType) termenv.Style {
	p := h.profile
	s := p.String()
	switch {
	case tt.Is(token.Keyword):
		return s.Foreground(p.Color("13")).Bold()
	case tt.Is(token.Comment), tt == token.GroupComment:
		return s.Foreground(p.Color("8")).Italic()
	case tt.Is(token.String):
		return s.Foreground(p.Color("10"))
	case tt.Is(token.Number):
		return s.Foreground(p.Color("14"))
	case tt.Is(token.Operator), tt == token.Wildcard:
		return s.Foreground(p.Color("11"))
	case tt == token.NamePlaceholder, tt == token.NameBuiltin:
		return s.Foreground(p.Color("12"))
	case tt == token.Error:
		return s.Foreground(p.Color("9")).Underline()
	default:
		return s
	}
}
