package split

import (
	"log/slog"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Range is a half-open token range [Start, End) of a List.
type Range struct {
	Start Index
	End   Index
}

// Len returns the number of tokens in the range.
func (r Range) Len() int { return int(r.End - r.Start) }

// Splitter finds statement boundaries.
type Splitter struct {
	logger *slog.Logger
}

// NewSplitter creates a Splitter. A nil logger discards output.
func NewSplitter(logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Splitter{logger: logger}
}

// Ranges partitions l into statements.
//
// Every token adjusts a running nesting level through a fresh
// dialect.SplitContext. A semicolon closes the current statement when the
// level is at or below the statement's base: 0, or 1 for a statement that
// opened with CREATE at the top level (CREATE itself counts +1). No
// semicolon inside an open dollar-quoted body ends a statement. The
// semicolon belongs to the statement it closes. Level, base and context
// flags all start over after every boundary. Tokens after the last boundary
// form a final statement.
func (s *Splitter) Ranges(l *List) []Range {
	var out []Range
	ctx := l.Dialect().NewSplitContext()
	level, base := 0, 0
	start := l.First()

	for i := start; i != None; i = l.Next(i) {
		tok := l.At(i)
		wasCreate := ctx.InCreate()
		delta := ctx.SplitLevel(tok.Literal)
		if !wasCreate && ctx.InCreate() && level == 0 {
			base = 1
		}
		if delta != 0 {
			s.logger.Debug("split level changed",
				slog.String("token", tok.Literal),
				slog.Int("level", level+delta),
				slog.Int("line", tok.Span.Start.Line))
		}
		level += delta

		if l.Kind(i) == KindSemicolon && level <= base && !ctx.InDollarQuote() {
			out = append(out, Range{Start: start, End: i + 1})
			s.logger.Debug("statement boundary",
				slog.Int("statement", len(out)),
				slog.Int("line", tok.Span.Start.Line))
			start = i + 1
			level, base = 0, 0
			ctx.Reset()
		}
	}
	if int(start) >= 0 && int(start) < l.Len() {
		out = append(out, Range{Start: start, End: Index(l.Len())})
	}
	return out
}

// Split tokenizes text and returns one token slice per statement.
func (s *Splitter) Split(text string, d *dialect.Dialect) [][]token.Token {
	l := Tokenize(text, d)
	ranges := s.Ranges(l)
	out := make([][]token.Token, len(ranges))
	for i, r := range ranges {
		out[i] = l.Tokens(r.Start, r.End)
	}
	return out
}

var defaultSplitter = NewSplitter(nil)

// Split tokenizes text and returns one token slice per statement.
func Split(text string, d *dialect.Dialect) [][]token.Token {
	return defaultSplitter.Split(text, d)
}
