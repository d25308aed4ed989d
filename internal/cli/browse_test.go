package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sc-scan/internal/fixture"
	"github.com/wippyai/sc-scan/scan"
)

func newTestBrowser(t *testing.T) *browseModel {
	t.Helper()
	res, err := scan.Collect(fixture.AssemblyScript())
	require.NoError(t, err)
	return newBrowseModel("as.wasm", res)
}

func typeText(m *browseModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(m *browseModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestBrowseModelRows(t *testing.T) {
	m := newTestBrowser(t)

	// the version record becomes the header, not a row
	assert.Len(t, m.rows, 15)
	assert.Len(t, m.visible, 15)
	assert.Equal(t, "module version 1", m.header)

	view := m.View()
	assert.Contains(t, view, "as.wasm")
	assert.Contains(t, view, "module version 1")
	assert.Contains(t, view, "15/15 records")
}

func TestBrowseModelFilter(t *testing.T) {
	m := newTestBrowser(t)

	typeText(m, "abort")
	require.Len(t, m.visible, 1)
	assert.Equal(t, &scan.ImportRecord{Module: "env", Name: "abort", Kind: scan.ImportFunc}, m.rows[m.visible[0]].record)
	assert.Contains(t, m.View(), "1/15 records")

	m.filter.SetValue("")
	typeText(m, "EXPORT func")
	assert.Len(t, m.visible, 6)

	typeText(m, "zzz")
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "no matching records")
}

func TestBrowseModelSelection(t *testing.T) {
	m := newTestBrowser(t)

	key(m, tea.KeyUp)
	assert.Equal(t, 0, m.selected)

	for range 20 {
		key(m, tea.KeyDown)
	}
	assert.Equal(t, 14, m.selected)

	// narrowing the filter clamps the selection
	typeText(m, "memory")
	assert.Len(t, m.visible, 1)
	assert.Equal(t, 0, m.selected)
}

func TestBrowseModelEscape(t *testing.T) {
	m := newTestBrowser(t)

	typeText(m, "massa")
	assert.Len(t, m.visible, 6)

	cmd := key(m, tea.KeyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.filter.Value())
	assert.Len(t, m.visible, 15)

	cmd = key(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModelQuit(t *testing.T) {
	m := newTestBrowser(t)
	typeText(m, "q")
	assert.Equal(t, "q", m.filter.Value())

	cmd := key(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModelScrolls(t *testing.T) {
	m := newTestBrowser(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	assert.Equal(t, 3, m.height)

	for range 5 {
		key(m, tea.KeyDown)
	}
	view := m.View()
	assert.Contains(t, view, "> "+m.rows[m.visible[5]].text)
	assert.NotContains(t, view, m.rows[m.visible[0]].text)
}

func TestBrowseModelSkipped(t *testing.T) {
	res, err := scan.Collect(corruptedModule())
	require.NoError(t, err)
	m := newBrowseModel("corrupt.wasm", res)
	assert.Contains(t, m.View(), "1 entries skipped")
}
