package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

// ErrInvalidOptions is wrapped by every Options.Validate error.
var ErrInvalidOptions = errors.New("invalid format options")

// DefaultIndentWidth is used when Options.IndentWidth is 0.
const DefaultIndentWidth = 2

// Case is a case folding mode for keywords or identifiers.
type Case string

// Case modes. CaseNone leaves text untouched.
const (
	CaseNone       Case = ""
	CaseLower      Case = "lower"
	CaseUpper      Case = "upper"
	CaseCapitalize Case = "capitalize"
)

// ParseCase parses a case mode name.
func ParseCase(s string) (Case, error) {
	if c := Case(strings.ToLower(strings.TrimSpace(s))); c.Valid() {
		return c, nil
	}
	return CaseNone, fmt.Errorf("%w: unknown case %q (want lower, upper or capitalize)", ErrInvalidOptions, s)
}

// Valid reports whether c is one of the declared modes.
func (c Case) Valid() bool {
	switch c {
	case CaseNone, CaseLower, CaseUpper, CaseCapitalize:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Case) UnmarshalText(text []byte) error {
	parsed, err := ParseCase(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// OutputSQL is the only supported output format.
const OutputSQL = "sql"

// Options selects the filters of a formatting pipeline.
type Options struct {
	Reindent       bool   `koanf:"reindent"`
	IndentWidth    int    `koanf:"indent_width"`
	LTrim          bool   `koanf:"ltrim"`
	KeywordCase    Case   `koanf:"keyword_case"`
	IdentifierCase Case   `koanf:"identifier_case"`
	StripComments  bool   `koanf:"strip_comments"`
	RightMargin    int    `koanf:"right_margin"`
	OutputFormat   string `koanf:"output_format"`

	// Dialect used to lex the input and re-lex comment groups. Nil means the
	// default dialect.
	Dialect *dialect.Dialect `koanf:"-"`
}

// DefaultOptions returns options that leave the text unchanged.
func DefaultOptions() Options {
	return Options{IndentWidth: DefaultIndentWidth, OutputFormat: OutputSQL}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if !o.KeywordCase.Valid() {
		return fmt.Errorf("%w: keyword_case must be lower, upper or capitalize, got %q", ErrInvalidOptions, o.KeywordCase)
	}
	if !o.IdentifierCase.Valid() {
		return fmt.Errorf("%w: identifier_case must be lower, upper or capitalize, got %q", ErrInvalidOptions, o.IdentifierCase)
	}
	if o.IndentWidth < 0 {
		return fmt.Errorf("%w: indent_width must not be negative, got %d", ErrInvalidOptions, o.IndentWidth)
	}
	if o.RightMargin < 0 {
		return fmt.Errorf("%w: right_margin must be positive, got %d", ErrInvalidOptions, o.RightMargin)
	}
	if o.OutputFormat != "" && o.OutputFormat != OutputSQL {
		return fmt.Errorf("%w: unsupported output_format %q", ErrInvalidOptions, o.OutputFormat)
	}
	return nil
}

func (o Options) indentWidth() int {
	if o.IndentWidth == 0 {
		return DefaultIndentWidth
	}
	return o.IndentWidth
}

func (o Options) dialect() *dialect.Dialect {
	if o.Dialect == nil {
		return dialect.Default()
	}
	return o.Dialect
}
