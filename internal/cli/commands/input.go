package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdinName names standard input in arguments and output.
const stdinName = "-"

// source is one SQL input: a file or standard input.
type source struct {
	Name string
	Text string
}

func (s source) isStdin() bool { return s.Name == stdinName }

// readSources reads every file named in args, or standard input when args
// is empty. "-" also means standard input.
func readSources(cmd *cobra.Command, args []string) ([]source, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}
	out := make([]source, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == stdinName {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(name) //nolint:gosec // G304: path is a command argument
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", displayName(name), err)
		}
		out = append(out, source{Name: name, Text: string(data)})
	}
	return out, nil
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}
