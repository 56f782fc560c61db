// Package render writes table rows to a terminal or pipe in one of several formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lepinkainen/tablestore/internal/tablestore"
	"gopkg.in/yaml.v3"
)

// Supported output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

// Formats lists every accepted format name
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatCSV}

// Rows writes rows to w in the given format
func Rows(w io.Writer, rows []tablestore.Row, format string) error {
	if rows == nil {
		rows = []tablestore.Row{}
	}

	switch strings.ToLower(format) {
	case FormatTable, "":
		return renderTable(w, rows)
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatYAML, "yml":
		return renderYAML(w, rows)
	case FormatCSV:
		return renderCSV(w, rows)
	default:
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

// Row writes a single row to w in the given format
func Row(w io.Writer, row tablestore.Row, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return renderJSON(w, row)
	case FormatYAML, "yml":
		return renderYAML(w, row)
	default:
		return Rows(w, []tablestore.Row{row}, format)
	}
}

func renderTable(w io.Writer, rows []tablestore.Row) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "NAME", "DESCRIPTION"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.ID, r.Name, r.Description})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func renderCSV(w io.Writer, rows []tablestore.Row) error {
	_, _ = fmt.Fprintln(w, "ID,NAME,DESCRIPTION")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s,%s,%s\n",
			strconv.FormatInt(r.ID, 10), escapeCSV(r.Name), escapeCSV(r.Description))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
