package commands

import (
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// NewHighlightCommand creates the highlight command.
func NewHighlightCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "highlight [file...]",
		Short: "Print SQL with syntax colors",
		Long: `Print SQL with ANSI colors chosen by token type. Colors are only used
on a terminal unless --color is given; --no-color always disables them.`,
		Example: `  sqlkit highlight query.sql
  sqlkit highlight --color query.sql | less -R`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			sources, err := readSources(cmd, args)
			if err != nil {
				return err
			}

			lx := lexer.New(cc.Dialect)
			h := highlighterFor(cc, force)
			for _, src := range sources {
				cc.Renderer.Printf("%s", ensureNewline(h(lx.Tokenize(src.Text))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "color", false, "Emit colors even when stdout is not a terminal")
	return cmd
}

func highlighterFor(cc *CommandContext, force bool) func([]token.Token) string {
	if force && !cc.Cfg.NoColor {
		return output.NewHighlighter(termenv.ANSI256).Highlight
	}
	return cc.Renderer.Highlight
}
