package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/sc-scan/scan"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	importStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	exportStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// browseRow is one record prepared for display and filtering.
type browseRow struct {
	record scan.Record
	text   string
	search string
}

type browseModel struct {
	filename string
	header   string
	rows     []browseRow
	visible  []int
	filter   textinput.Model
	skipped  int
	selected int
	height   int
}

func newBrowseModel(filename string, res *scan.Result) *browseModel {
	m := &browseModel{filename: filename, skipped: len(res.Skipped), height: 20}

	for _, rec := range res.Records {
		if v, ok := rec.(*scan.VersionRecord); ok {
			layer := "component"
			if v.IsModule {
				layer = "module"
			}
			m.header = fmt.Sprintf("%s version %d", layer, v.Num)
			continue
		}
		text := describeRecord(rec)
		m.rows = append(m.rows, browseRow{record: rec, text: text, search: strings.ToLower(text)})
	}

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	m.filter = ti

	m.applyFilter()
	return m
}

func describeRecord(rec scan.Record) string {
	switch r := rec.(type) {
	case *scan.ImportRecord:
		return fmt.Sprintf("import %-6s %s.%s", r.Kind, r.Module, r.Name)
	case *scan.ExportRecord:
		return fmt.Sprintf("export %-6s %s #%d", r.Kind, r.Name, r.Index)
	default:
		return string(rec.Type())
	}
}

// applyFilter keeps rows containing every space separated term of the
// filter, case-insensitively.
func (m *browseModel) applyFilter() {
	terms := strings.Fields(strings.ToLower(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, row := range m.rows {
		match := true
		for _, term := range terms {
			if !strings.Contains(row.search, term) {
				match = false
				break
			}
		}
		if match {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.filter.Value() == "" {
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil

		case "up", "ctrl+k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM Scan"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if m.header != "" {
		b.WriteString(" (")
		b.WriteString(m.header)
		b.WriteString(")")
	}
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no matching records"))
		b.WriteString("\n")
	}

	// Scroll so the selection stays inside the window.
	start := 0
	if m.selected >= m.height {
		start = m.selected - m.height + 1
	}
	end := min(start+m.height, len(m.visible))
	for i := start; i < end; i++ {
		row := m.rows[m.visible[i]]
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + row.text))
		} else {
			style := exportStyle
			if _, ok := row.record.(*scan.ImportRecord); ok {
				style = importStyle
			}
			b.WriteString("  ")
			b.WriteString(style.Render(row.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%d/%d records", len(m.visible), len(m.rows))
	if m.skipped > 0 {
		b.WriteString(" ")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d entries skipped", m.skipped)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • esc clear/quit • ctrl+c quit"))

	return b.String()
}

func runBrowser(cmd *cobra.Command, filename string, res *scan.Result) error {
	p := tea.NewProgram(newBrowseModel(filename, res),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	_, err := p.Run()
	return err
}
