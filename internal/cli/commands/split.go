package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/query"
	"github.com/spf13/cobra"
)

// StatementInfo is the structured form of one split statement.
type StatementInfo struct {
	Source string `json:"source" yaml:"source"`
	Index  int    `json:"index" yaml:"index"`
	Type   string `json:"type" yaml:"type"`
	Line   int    `json:"line" yaml:"line"`
	Tokens int    `json:"tokens" yaml:"tokens"`
	SQL    string `json:"sql" yaml:"sql"`
}

// SplitOptions holds options for the split command.
type SplitOptions struct {
	KeepBlank bool
	Raw       bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split [file...]",
		Short: "Split SQL scripts into statements",
		Long: `Split SQL scripts into statements. Semicolons inside procedure bodies,
BEGIN...END blocks and dollar-quoted bodies do not end a statement.`,
		Example: `  # One statement per block
  sqlkit split migrations.sql

  # Statement list as JSON
  sqlkit split --dialect postgres functions.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.KeepBlank, "keep-blank", false, "Include statements that hold only whitespace and comments")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print statement text exactly as in the source")
	return cmd
}

func runSplit(cmd *cobra.Command, args []string, opts *SplitOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}

	parser := query.NewParser(cc.Logger)
	var infos []StatementInfo
	for _, src := range sources {
		index := 0
		for _, stmt := range parser.Split(src.Text, cc.Dialect) {
			if stmt.IsBlank() && !opts.KeepBlank {
				continue
			}
			index++
			text := stmt.Trimmed()
			if opts.Raw {
				text = stmt.String()
			}
			infos = append(infos, StatementInfo{
				Source: displayName(src.Name),
				Index:  index,
				Type:   string(stmt.Type()),
				Line:   stmt.Span().Start.Line,
				Tokens: stmt.Len(),
				SQL:    text,
			})
		}
	}

	r := cc.Renderer
	if infos == nil {
		infos = []StatementInfo{}
	}
	if ok, err := r.Data(infos); ok {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeMarkdown:
		for _, info := range infos {
			r.Println(output.FormatHeader(2, fmt.Sprintf("Statement %d (%s, line %d)", info.Index, info.Type, info.Line)))
			r.Println()
			r.Println(output.CodeBlock("sql", info.SQL))
			r.Println()
		}
	default:
		styles := r.Styles()
		for i, info := range infos {
			if i > 0 {
				r.Println()
			}
			r.Println(styles.Muted.Render(fmt.Sprintf("-- statement %d (%s, line %d)", info.Index, info.Type, info.Line)))
			r.Println(info.SQL)
		}
	}
	return nil
}
