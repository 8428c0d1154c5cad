package token

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position reached after consuming text from p.
func (p Position) Advance(text string) Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(text)
	return p
}

// Rebase converts p, a position relative to a text that starts at origin,
// into an absolute position.
func (p Position) Rebase(origin Position) Position {
	out := Position{Line: origin.Line + p.Line - 1, Column: p.Column, Offset: origin.Offset + p.Offset}
	if p.Line == 1 {
		out.Column = origin.Column + p.Column - 1
	}
	return out
}

// Start is the position of the first byte of any input.
var Start = Position{Line: 1, Column: 1, Offset: 0}

// Span represents a half-open range [Start, End) in source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}
