package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlkit/pkg/split"
	"github.com/spf13/cobra"
)

// TokenInfo is the structured form of one token.
type TokenInfo struct {
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// TokenizeOutput is the structured output of the tokenize command.
type TokenizeOutput struct {
	Source string      `json:"source" yaml:"source"`
	Tokens []TokenInfo `json:"tokens" yaml:"tokens"`
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	var skipWhitespace bool

	cmd := &cobra.Command{
		Use:   "tokenize [file...]",
		Short: "Print the token stream of SQL input",
		Long: `Tokenize SQL files (or standard input) with the configured dialect and
print every token with its type, splitter kind and position.`,
		Example: `  # Tokenize a file
  sqlkit tokenize query.sql

  # Tokenize stdin as postgres, without whitespace tokens
  echo 'SELECT $1::int' | sqlkit tokenize --dialect postgres --skip-whitespace

  # JSON for scripts
  sqlkit tokenize query.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, skipWhitespace)
		},
	}

	cmd.Flags().BoolVar(&skipWhitespace, "skip-whitespace", false, "Omit whitespace and newline tokens")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string, skipWhitespace bool) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}

	outputs := make([]TokenizeOutput, 0, len(sources))
	for _, src := range sources {
		l := split.Tokenize(src.Text, cc.Dialect)
		out := TokenizeOutput{Source: displayName(src.Name), Tokens: []TokenInfo{}}
		for i := l.First(); i != split.None; i = l.Next(i) {
			t := l.At(i)
			if skipWhitespace && t.IsWhitespace() {
				continue
			}
			out.Tokens = append(out.Tokens, TokenInfo{
				Type:    t.Type.String(),
				Kind:    l.Kind(i).String(),
				Literal: t.Literal,
				Line:    t.Span.Start.Line,
				Column:  t.Span.Start.Column,
				Offset:  t.Span.Start.Offset,
			})
		}
		cc.Logger.Debug("tokenized input",
			"source", out.Source,
			"tokens", l.Len())
		outputs = append(outputs, out)
	}

	r := cc.Renderer
	if ok, err := r.Data(outputs); ok {
		return err
	}

	for _, out := range outputs {
		if len(outputs) > 1 {
			r.Header(2, out.Source)
		}
		rows := make([][]any, len(out.Tokens))
		for i, t := range out.Tokens {
			rows[i] = []any{fmt.Sprintf("%d:%d", t.Line, t.Column), t.Type, t.Kind, fmt.Sprintf("%q", t.Literal)}
		}
		if err := r.Table([]string{"pos", "type", "kind", "literal"}, rows); err != nil {
			return err
		}
	}
	return nil
}
