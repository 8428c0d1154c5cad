// Package lexer converts SQL text into a token stream with a table-driven
// state machine.
//
// A Grammar maps state names to ordered rules. At every offset the lexer
// tries the rules of the current state in declaration order and takes the
// first match; a rule may push a new state or pop back to the previous one.
// Grammars are assembled once by a GrammarBuilder and are immutable
// afterwards, so a single Grammar can serve any number of goroutines.
package lexer

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// RootState is the state every tokenization starts in.
const RootState = "root"

// Action is the state transition taken after a rule matches.
type Action int

// Rule actions.
const (
	Stay Action = iota // remain in the current state
	Push               // enter Rule.Next
	Pop                // return to the previous state
)

// ClassifyFunc decides the token type of a matched text at lex time.
type ClassifyFunc func(text string) token.TokenType

// Rule is a single entry of a lexer state.
type Rule struct {
	pattern  *regexp.Regexp
	Type     token.TokenType
	Classify ClassifyFunc // overrides Type when set
	Action   Action
	Next     string // target state for Push
}

// Pattern returns the source of the rule's (anchored) regular expression.
func (r *Rule) Pattern() string {
	return r.pattern.String()
}

// match returns the length of the rule's match at the start of s, or 0.
func (r *Rule) match(s string) int {
	loc := r.pattern.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1]
}

func (r *Rule) typeOf(text string) token.TokenType {
	if r.Classify != nil {
		return r.Classify(text)
	}
	return r.Type
}

// Grammar is an immutable transition table: state name -> ordered rules.
type Grammar struct {
	states map[string][]Rule
	order  []string
}

// Rules returns the rules of a state in match order.
func (g *Grammar) Rules(state string) []Rule {
	return g.states[state]
}

// States returns the state names in declaration order.
func (g *Grammar) States() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

type ruleSpec struct {
	pattern  string
	typ      token.TokenType
	classify ClassifyFunc
	action   Action
	next     string
}

// GrammarBuilder assembles a Grammar. Rules are kept in the order they are
// added; that order is the match order.
type GrammarBuilder struct {
	states map[string][]ruleSpec
	order  []string
}

// NewGrammar creates an empty grammar builder.
func NewGrammar() *GrammarBuilder {
	return &GrammarBuilder{states: make(map[string][]ruleSpec)}
}

func (b *GrammarBuilder) add(state string, spec ruleSpec) *GrammarBuilder {
	if _, ok := b.states[state]; !ok {
		b.order = append(b.order, state)
	}
	b.states[state] = append(b.states[state], spec)
	return b
}

// Rule adds a rule emitting typ and staying in the current state.
func (b *GrammarBuilder) Rule(state, pattern string, typ token.TokenType) *GrammarBuilder {
	return b.add(state, ruleSpec{pattern: pattern, typ: typ})
}

// Classify adds a rule whose token type is computed from the matched text.
func (b *GrammarBuilder) Classify(state, pattern string, fn ClassifyFunc) *GrammarBuilder {
	return b.add(state, ruleSpec{pattern: pattern, classify: fn})
}

// PushRule adds a rule that emits typ and enters state next.
func (b *GrammarBuilder) PushRule(state, pattern string, typ token.TokenType, next string) *GrammarBuilder {
	return b.add(state, ruleSpec{pattern: pattern, typ: typ, action: Push, next: next})
}

// PopRule adds a rule that emits typ and returns to the previous state.
func (b *GrammarBuilder) PopRule(state, pattern string, typ token.TokenType) *GrammarBuilder {
	return b.add(state, ruleSpec{pattern: pattern, typ: typ, action: Pop})
}

// Build compiles every pattern, anchored at the start of the remaining
// input, and checks that the root state exists and every push target is
// declared.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	if _, ok := b.states[RootState]; !ok {
		return nil, fmt.Errorf("grammar has no %q state", RootState)
	}
	g := &Grammar{
		states: make(map[string][]Rule, len(b.states)),
		order:  append([]string(nil), b.order...),
	}
	for _, state := range b.order {
		specs := b.states[state]
		rules := make([]Rule, 0, len(specs))
		for i, spec := range specs {
			re, err := regexp.Compile(`\A(?:` + spec.pattern + `)`)
			if err != nil {
				return nil, fmt.Errorf("state %q rule %d: %w", state, i, err)
			}
			if spec.action == Push {
				if _, ok := b.states[spec.next]; !ok {
					return nil, fmt.Errorf("state %q rule %d: push to undeclared state %q", state, i, spec.next)
				}
			}
			rules = append(rules, Rule{
				pattern:  re,
				Type:     spec.typ,
				Classify: spec.classify,
				Action:   spec.action,
				Next:     spec.next,
			})
		}
		g.states[state] = rules
	}
	return g, nil
}

// MustBuild is like Build but panics on error. Grammars are static data, so
// a failure here is a programming error.
func (b *GrammarBuilder) MustBuild() *Grammar {
	g, err := b.Build()
	if err != nil {
		panic("lexer: " + err.Error())
	}
	return g
}
