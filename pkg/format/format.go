// Package format reformats SQL text with a pipeline of token stream filters.
//
// The pipeline order is fixed by Options, never by the caller:
//
//	KeywordIf, GroupComments,
//	[StripWhitespace, Indent]  reindent
//	[LTrim]                    ltrim
//	[KeywordCase]              keyword_case
//	[IdentifierCase]           identifier_case
//	[StripComments]            strip_comments
//	[RightMargin]              right_margin
//	Ungroup
//
// and the result is serialized by concatenating token literals.
package format

import (
	"iter"
	"slices"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/query"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Pipeline is an immutable, reusable filter chain built from Options.
type Pipeline struct {
	dialect *dialect.Dialect
	filters []Filter
}

// NewPipeline builds the filter chain for opts. Invalid options are a
// programming error and cause a panic; validate user input with
// Options.Validate first.
func NewPipeline(opts Options) *Pipeline {
	if err := opts.Validate(); err != nil {
		panic("format: " + err.Error())
	}
	d := opts.dialect()

	filters := []Filter{KeywordIf(), GroupComments()}
	if opts.Reindent {
		filters = append(filters, StripWhitespace(), Indent(opts.indentWidth()))
	}
	if opts.LTrim {
		filters = append(filters, LTrim())
	}
	if opts.KeywordCase != CaseNone {
		filters = append(filters, KeywordCase(opts.KeywordCase))
	}
	if opts.IdentifierCase != CaseNone {
		filters = append(filters, IdentifierCase(opts.IdentifierCase))
	}
	if opts.StripComments {
		filters = append(filters, StripComments())
	}
	if opts.RightMargin > 0 {
		filters = append(filters, RightMargin(opts.RightMargin))
	}
	filters = append(filters, Ungroup(d))

	return &Pipeline{dialect: d, filters: filters}
}

// Len returns the number of filters in the chain.
func (p *Pipeline) Len() int { return len(p.filters) }

// Apply runs the chain over a token stream.
func (p *Pipeline) Apply(seq iter.Seq[token.Token]) iter.Seq[token.Token] {
	return Chain(seq, p.filters...)
}

// Format lexes and reformats text.
func (p *Pipeline) Format(text string) string {
	return Serialize(p.Apply(lexer.New(p.dialect).All(text)))
}

// FormatTokens reformats an already lexed token sequence.
func (p *Pipeline) FormatTokens(tokens []token.Token) string {
	return Serialize(p.Apply(slices.Values(tokens)))
}

// Format reformats text. It panics if opts is invalid.
func Format(text string, opts Options) string {
	return NewPipeline(opts).Format(text)
}

// FormatStatement reformats a parsed statement. It panics if opts is invalid.
func FormatStatement(stmt *query.Statement, opts Options) string {
	return NewPipeline(opts).FormatTokens(stmt.Tokens())
}
