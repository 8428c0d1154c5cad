package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrNotFormatted is returned by format --check when any input would change.
var ErrNotFormatted = errors.New("input is not formatted")

// FormatResult is the structured output for one formatted input.
type FormatResult struct {
	Source    string `json:"source" yaml:"source"`
	Changed   bool   `json:"changed" yaml:"changed"`
	Formatted string `json:"formatted,omitempty" yaml:"formatted,omitempty"`
}

// FormatOptions holds the command-only options of format. Formatting
// options themselves are loaded through the config layer.
type FormatOptions struct {
	Write bool
	Check bool
	Jobs  int
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:     "format [file...]",
		Aliases: []string{"fmt"},
		Short:   "Format SQL",
		Long: `Format SQL files (or standard input). Formatting options come from
sqlkit.yaml (format section), SQLKIT_ environment variables and the flags
below, in increasing order of precedence. Files are formatted concurrently.`,
		Example: `  # Reindent with upper-case keywords
  sqlkit format -r -k upper query.sql

  # Rewrite files in place
  sqlkit format -r --write models/*.sql

  # Fail in CI when a file is not formatted
  sqlkit format -r --check models/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolP("reindent", "r", false, "Reindent statements")
	f.Int("indent-width", format.DefaultIndentWidth, "Spaces per indentation level")
	f.Bool("ltrim", false, "Strip leading whitespace from every line")
	f.StringP("keyword-case", "k", "", "Keyword case (upper|lower|capitalize)")
	f.StringP("identifier-case", "i", "", "Identifier case (upper|lower|capitalize)")
	f.Bool("strip-comments", false, "Remove comments")
	f.Int("right-margin", 0, "Wrap lines near this column (0 disables)")
	f.BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the source files")
	f.BoolVar(&opts.Check, "check", false, "Report inputs that are not formatted and fail")
	f.IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Files formatted in parallel")

	caseValues := []string{string(format.CaseUpper), string(format.CaseLower), string(format.CaseCapitalize)}
	for _, name := range []string{"keyword-case", "identifier-case"} {
		_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return caseValues, cobra.ShellCompDirectiveNoFileComp
		})
	}
	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	fopts, err := cc.Cfg.FormatOptions()
	if err != nil {
		return err
	}
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}
	if opts.Write && opts.Check {
		return errors.New("--write and --check are mutually exclusive")
	}

	results, err := formatSources(cmd.Context(), sources, fopts, opts.Jobs)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if opts.Check {
		return reportCheck(r, results)
	}

	if opts.Write {
		for i, src := range sources {
			if src.isStdin() || !results[i].Changed {
				continue
			}
			if err := writeInPlace(src.Name, results[i].Formatted); err != nil {
				return err
			}
			cc.Logger.Debug("formatted file", "path", src.Name)
		}
	}

	if ok, err := r.Data(results); ok {
		return err
	}

	for i, res := range results {
		if opts.Write && !sources[i].isStdin() {
			if res.Changed {
				r.StatusLine(res.Source, "formatted", "")
			}
			continue
		}
		text := res.Formatted
		if r.EffectiveMode() == output.ModeText && r.IsTTY() {
			text = r.Highlight(lexer.Tokenize(text, fopts.Dialect))
		}
		r.Printf("%s", ensureNewline(text))
	}
	return nil
}

// formatSources formats every source with at most jobs goroutines. Each
// call builds its own pipeline, so no formatting state is shared.
func formatSources(ctx context.Context, sources []source, opts format.Options, jobs int) ([]FormatResult, error) {
	results := make([]FormatResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			formatted := format.NewPipeline(opts).Format(src.Text)
			if strings.HasSuffix(src.Text, "\n") {
				formatted = ensureNewline(formatted)
			}
			results[i] = FormatResult{
				Source:    displayName(src.Name),
				Changed:   formatted != src.Text,
				Formatted: formatted,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func reportCheck(r *output.Renderer, results []FormatResult) error {
	var changed []string
	for _, res := range results {
		if res.Changed {
			changed = append(changed, res.Source)
		}
	}

	summary := make([]FormatResult, len(results))
	for i, res := range results {
		summary[i] = FormatResult{Source: res.Source, Changed: res.Changed}
	}
	if ok, err := r.Data(summary); ok && err != nil {
		return err
	} else if !ok {
		for _, res := range summary {
			status := "ok"
			if res.Changed {
				status = "failed"
			}
			r.StatusLine(res.Source, status, "")
		}
	}

	if len(changed) > 0 {
		return fmt.Errorf("%w: %s", ErrNotFormatted, strings.Join(changed, ", "))
	}
	return nil
}

func writeInPlace(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
