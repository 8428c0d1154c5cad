package query

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/split"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// ErrMultiStatement is matched by errors.Is for every *MultiStatementError.
var ErrMultiStatement = errors.New("input contains more than one statement")

// MultiStatementError is returned by Parse when the input holds more than one
// non-blank statement.
type MultiStatementError struct {
	Count  int            // number of non-blank statements
	Second token.Position // where the second statement starts
}

func (e *MultiStatementError) Error() string {
	return fmt.Sprintf("expected a single statement, found %d (second at line %d, column %d)",
		e.Count, e.Second.Line, e.Second.Column)
}

// Is makes errors.Is(err, ErrMultiStatement) succeed.
func (e *MultiStatementError) Is(target error) bool {
	return target == ErrMultiStatement
}

// Parser parses SQL into statements.
type Parser struct {
	splitter *split.Splitter
}

// NewParser creates a Parser. A nil logger discards output.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{splitter: split.NewSplitter(logger)}
}

// Split returns every statement of text, blank ones included, so that the
// statements together reproduce text exactly.
func (p *Parser) Split(text string, d *dialect.Dialect) []*Statement {
	parts := p.splitter.Split(text, d)
	out := make([]*Statement, len(parts))
	for i, toks := range parts {
		out[i] = NewStatement(toks)
	}
	return out
}

// Parse returns text as a single Statement covering all of its tokens.
// Blank statements (whitespace, comments, a stray trailing newline) are not
// counted; more than one non-blank statement is a *MultiStatementError.
func (p *Parser) Parse(text string, d *dialect.Dialect) (*Statement, error) {
	stmts := p.Split(text, d)

	count := 0
	var second token.Position
	var all []token.Token
	for _, s := range stmts {
		all = append(all, s.tokens...)
		if s.IsBlank() {
			continue
		}
		count++
		if count == 2 {
			second = s.At(firstSignificant(s)).Span.Start
		}
	}
	if count > 1 {
		return nil, &MultiStatementError{Count: count, Second: second}
	}
	return NewStatement(all), nil
}

func firstSignificant(s *Statement) Index {
	i := s.TokenStart()
	if significant(s.At(i)) {
		return i
	}
	return s.NextSignificant(i)
}

var defaultParser = NewParser(nil)

// Parse parses text as a single statement with the default parser.
func Parse(text string, d *dialect.Dialect) (*Statement, error) {
	return defaultParser.Parse(text, d)
}

// Split splits text into statements with the default parser.
func Split(text string, d *dialect.Dialect) []*Statement {
	return defaultParser.Split(text, d)
}
