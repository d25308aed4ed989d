package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/wippyai/sc-scan/config"
	"github.com/wippyai/sc-scan/scan"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

// renderer writes record lists in the configured output format.
type renderer struct {
	format string
	pretty bool
	color  bool
}

func newRenderer(out config.OutputConfig, w io.Writer) *renderer {
	r := &renderer{format: out.Format, pretty: out.Pretty}
	switch out.Color {
	case "always":
		r.color = true
	case "never":
		r.color = false
	default:
		r.color = isTerminal(w)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// render writes one input's records. index and total place the input among
// all inputs of the invocation, for separators and titles.
func (r *renderer) render(w io.Writer, name string, records []scan.Record, index, total int) error {
	doc, err := scan.Marshal(records)
	if err != nil {
		return err
	}

	switch r.format {
	case config.FormatYAML:
		return r.renderYAML(w, name, doc, index, total)
	case config.FormatTable:
		return r.renderTable(w, name, records, total)
	default:
		return r.renderJSON(w, doc)
	}
}

// renderJSON writes the wire format. Without --pretty the bytes are
// exactly what Scan returns, one array per line.
func (r *renderer) renderJSON(w io.Writer, doc []byte) error {
	if r.pretty {
		doc = pretty.Pretty(doc)
		if r.color {
			doc = pretty.Color(doc, nil)
		}
	}
	if !bytes.HasSuffix(doc, []byte("\n")) {
		doc = append(doc, '\n')
	}
	_, err := w.Write(doc)
	return err
}

func (r *renderer) renderYAML(w io.Writer, name string, doc []byte, index, total int) error {
	out, err := yaml.JSONToYAML(doc)
	if err != nil {
		return fmt.Errorf("convert to yaml: %w", err)
	}

	var b bytes.Buffer
	if total > 1 {
		if index > 0 {
			b.WriteString("---\n")
		}
		fmt.Fprintf(&b, "# %s\n", name)
	}
	b.Write(out)
	if !bytes.HasSuffix(out, []byte("\n")) {
		b.WriteByte('\n')
	}
	_, err = w.Write(b.Bytes())
	return err
}

func (r *renderer) renderTable(w io.Writer, name string, records []scan.Record, total int) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TYPE", "MODULE", "NAME", "KIND", "INDEX").
		Rows(tableRows(records)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if r.color {
		t = t.BorderStyle(borderStyle)
	}

	var b bytes.Buffer
	if total > 1 {
		fmt.Fprintf(&b, "%s\n", name)
	}
	b.WriteString(t.Render())
	b.WriteByte('\n')
	_, err := w.Write(b.Bytes())
	return err
}

// tableRows flattens records into table cells. A version row shows the
// encoding in the kind column and the version number in the index column.
func tableRows(records []scan.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		switch r := rec.(type) {
		case *scan.VersionRecord:
			layer := "component"
			if r.IsModule {
				layer = "module"
			}
			rows = append(rows, []string{string(r.Type()), "", "", layer, strconv.Itoa(int(r.Num))})
		case *scan.ImportRecord:
			rows = append(rows, []string{string(r.Type()), r.Module, r.Name, string(r.Kind), ""})
		case *scan.ExportRecord:
			rows = append(rows, []string{string(r.Type()), "", r.Name, string(r.Kind), strconv.FormatUint(uint64(r.Index), 10)})
		}
	}
	return rows
}
