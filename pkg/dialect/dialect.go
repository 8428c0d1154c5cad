// Package dialect provides SQL dialect configuration for the lexer and the
// statement splitter.
//
// A Dialect is immutable grammar data: the keyword vocabulary, multi-word
// keywords, the operator set and a handful of lexical feature flags. Parse-local
// state needed to decide statement nesting lives in a SplitContext obtained
// from NewSplitContext, never on the Dialect itself, so one Dialect value can be
// shared by any number of goroutines. Concrete dialects are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Features are lexical switches a dialect can turn on.
type Features struct {
	// DollarQuoting treats $$ and $tag$ as body delimiters (PostgreSQL).
	DollarQuoting bool
	// HashComments lexes # ... as a single line comment (MySQL).
	HashComments bool
	// BacktickIdentifiers lexes `name` as a quoted name (MySQL, DuckDB).
	BacktickIdentifiers bool
	// DollarPlaceholders lexes $1, $2 as placeholders (PostgreSQL, DuckDB).
	DollarPlaceholders bool
}

// Config is the pure data description of a dialect.
// Concrete dialect packages declare one and hand it to New.
type Config struct {
	Name     string
	Features Features
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name     string
	Features Features

	keywords  map[string]token.TokenType // upper-cased word -> keyword type
	multiWord []string                   // upper-cased, single-space separated
	operators map[string]struct{}        // upper-cased operator text
}

// LookupKeyword returns the keyword type for a single word.
// Returns Name and false if the word is not a keyword in this dialect.
func (d *Dialect) LookupKeyword(word string) (token.TokenType, bool) {
	if t, ok := d.keywords[strings.ToUpper(word)]; ok {
		return t, true
	}
	return token.Name, false
}

// IsKeyword returns true if word is a keyword in this dialect.
func (d *Dialect) IsKeyword(word string) bool {
	_, ok := d.LookupKeyword(word)
	return ok
}

// IsOperator returns true if text is in the dialect's operator set.
// Word operators such as IN or LIKE are matched case-insensitively.
func (d *Dialect) IsOperator(text string) bool {
	_, ok := d.operators[strings.ToUpper(text)]
	return ok
}

// Keywords returns all single-word keywords, sorted.
func (d *Dialect) Keywords() []string {
	kws := make([]string, 0, len(d.keywords))
	for kw := range d.keywords {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// MultiWordKeywords returns the multi-word keywords, longest first.
// The lexer must try these before the generic word rule.
func (d *Dialect) MultiWordKeywords() []string {
	out := make([]string, len(d.multiWord))
	copy(out, d.multiWord)
	return out
}

// Operators returns the operator set, sorted.
func (d *Dialect) Operators() []string {
	ops := make([]string, 0, len(d.operators))
	for op := range d.operators {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// NewSplitContext returns fresh parse-local nesting state for one split.
func (d *Dialect) NewSplitContext() *SplitContext {
	return &SplitContext{dialect: d}
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// New creates a dialect builder from a Config, seeded with the base
// keyword table and the base operator set.
func New(cfg *Config) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name:      cfg.Name,
			Features:  cfg.Features,
			keywords:  make(map[string]token.TokenType, len(baseKeywords)),
			operators: make(map[string]struct{}),
		},
	}
	for kw, t := range baseKeywords {
		b.dialect.keywords[kw] = t
	}
	b.MultiWordKeywords(baseMultiWordKeywords...)
	b.Operators(BaseOperators...)
	return b
}

// NewDialect creates a builder for a dialect with no special features.
func NewDialect(name string) *Builder {
	return New(&Config{Name: name})
}

// Keywords registers generic keywords.
func (b *Builder) Keywords(words ...string) *Builder {
	return b.KeywordsOfType(token.Keyword, words...)
}

// KeywordsOfType registers keywords with a specific keyword type
// (token.KeywordDML, token.KeywordDDL, ...).
func (b *Builder) KeywordsOfType(t token.TokenType, words ...string) *Builder {
	for _, w := range words {
		b.dialect.keywords[strings.ToUpper(w)] = t
	}
	return b
}

// RemoveKeywords drops words from the keyword table so they lex as names.
func (b *Builder) RemoveKeywords(words ...string) *Builder {
	for _, w := range words {
		delete(b.dialect.keywords, strings.ToUpper(w))
	}
	return b
}

// MultiWordKeywords registers keywords spanning several words, such as
// "END LOOP". Inner whitespace is normalized to a single space.
func (b *Builder) MultiWordKeywords(phrases ...string) *Builder {
	for _, p := range phrases {
		norm := strings.Join(strings.Fields(strings.ToUpper(p)), " ")
		if norm == "" || containsString(b.dialect.multiWord, norm) {
			continue
		}
		b.dialect.multiWord = append(b.dialect.multiWord, norm)
	}
	return b
}

// Operators adds operators to the dialect's operator set.
func (b *Builder) Operators(ops ...string) *Builder {
	for _, op := range ops {
		b.dialect.operators[strings.ToUpper(op)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	d := b.dialect
	// Longest phrase first so "END LOOP" style alternatives never lose
	// to a shorter prefix.
	sort.SliceStable(d.multiWord, func(i, j int) bool {
		return len(d.multiWord[i]) > len(d.multiWord[j])
	})
	return d
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
