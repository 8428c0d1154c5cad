package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table writes rows under the given column headers: a box table in text
// mode, a markdown table otherwise. Structured modes emit a list of
// objects keyed by column.
func (r *Renderer) Table(cols []string, rows [][]any) error {
	mode := r.EffectiveMode()
	if mode.IsStructured() {
		_, err := r.Data(Records(cols, rows))
		return err
	}

	if len(rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = formatValue(v)
		}
		t.AppendRow(tr)
	}

	if mode == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
	} else {
		t.RenderMarkdown()
	}
	return nil
}

// Records converts rows to maps keyed by column name.
func Records(cols []string, rows [][]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

func formatValue(v any) any {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}
