package commands

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/spf13/cobra"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name      string   `json:"name" yaml:"name"`
	Default   bool     `json:"default" yaml:"default"`
	Keywords  int      `json:"keywords" yaml:"keywords"`
	Operators []string `json:"operators" yaml:"operators"`
	Features  []string `json:"features" yaml:"features"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			infos := dialectInfos()
			r := cc.Renderer
			if ok, err := r.Data(infos); ok {
				return err
			}

			rows := make([][]any, len(infos))
			for i, info := range infos {
				name := info.Name
				if info.Default {
					name += " (default)"
				}
				rows[i] = []any{name, info.Keywords, strings.Join(info.Features, ", ")}
			}
			return r.Table([]string{"dialect", "keywords", "features"}, rows)
		},
	}
}

func dialectInfos() []DialectInfo {
	def := dialect.Default()
	names := dialect.List()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, DialectInfo{
			Name:      d.Name,
			Default:   d == def,
			Keywords:  len(d.Keywords()),
			Operators: d.Operators(),
			Features:  featureNames(d.Features),
		})
	}
	return infos
}

func featureNames(f dialect.Features) []string {
	out := []string{}
	if f.DollarQuoting {
		out = append(out, "dollar-quoting")
	}
	if f.HashComments {
		out = append(out, "hash-comments")
	}
	if f.BacktickIdentifiers {
		out = append(out, "backtick-identifiers")
	}
	if f.DollarPlaceholders {
		out = append(out, "dollar-placeholders")
	}
	return out
}
