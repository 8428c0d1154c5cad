package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/query"
	"github.com/spf13/cobra"
)

// KeywordHit reports where a keyword was found in a statement.
type KeywordHit struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Found   bool   `json:"found" yaml:"found"`
	Index   int    `json:"index" yaml:"index"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// ParseOutput is the structured output of the parse command.
type ParseOutput struct {
	Source   string       `json:"source" yaml:"source"`
	Type     string       `json:"type" yaml:"type"`
	Tokens   int          `json:"tokens" yaml:"tokens"`
	Start    string       `json:"start" yaml:"start"`
	End      string       `json:"end" yaml:"end"`
	Keywords []KeywordHit `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var find []string

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse a single SQL statement",
		Long: `Parse input that must hold exactly one statement and report its type,
extent and the position of selected keywords. Input with more than one
non-blank statement is an error naming where the second statement starts.`,
		Example: `  # Classify a statement
  echo 'delete from t where id = 1' | sqlkit parse

  # Locate keywords
  sqlkit parse query.sql --find where --find "group by"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, find)
		},
	}

	cmd.Flags().StringArrayVarP(&find, "find", "f", nil, "Keyword to locate (repeatable)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string, find []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}

	parser := query.NewParser(cc.Logger)
	outputs := make([]ParseOutput, 0, len(sources))
	for _, src := range sources {
		stmt, err := parser.Parse(src.Text, cc.Dialect)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(src.Name), err)
		}
		span := stmt.Span()
		out := ParseOutput{
			Source: displayName(src.Name),
			Type:   string(stmt.Type()),
			Tokens: stmt.Len(),
			Start:  fmt.Sprintf("%d:%d", span.Start.Line, span.Start.Column),
			End:    fmt.Sprintf("%d:%d", span.End.Line, span.End.Column),
		}
		for _, kw := range find {
			hit := KeywordHit{Keyword: strings.ToUpper(kw), Index: int(query.None)}
			if i := stmt.FindKeyword(kw); i != query.None {
				t := stmt.At(i)
				hit.Found = true
				hit.Index = int(i)
				hit.Line = t.Span.Start.Line
				hit.Column = t.Span.Start.Column
			}
			out.Keywords = append(out.Keywords, hit)
		}
		outputs = append(outputs, out)
	}

	r := cc.Renderer
	if ok, err := r.Data(outputs); ok {
		return err
	}

	for _, out := range outputs {
		r.Header(1, out.Source)
		r.Println(output.FormatKeyValue("Type", out.Type))
		r.Println(output.FormatKeyValue("Tokens", fmt.Sprintf("%d", out.Tokens)))
		r.Println(output.FormatKeyValue("Span", out.Start+" - "+out.End))
		for _, hit := range out.Keywords {
			where := "not found"
			if hit.Found {
				where = fmt.Sprintf("token %d at %d:%d", hit.Index, hit.Line, hit.Column)
			}
			r.Println(output.FormatKeyValue(hit.Keyword, where))
		}
	}
	return nil
}
