// Package diffview implements the read-only comparison page: the
// original server document on the left, the live edit buffer on the
// right, with word-level changes highlighted.
package diffview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/colonyops/quill/internal/core/styles"
)

// CloseMsg asks the root model to return to the results page.
type CloseMsg struct{}

// Model is the diff page model. It only supplies the two text blobs
// and scrolling; no merge or conflict resolution happens here.
type Model struct {
	viewport viewport.Model
	original string
	current  string
	closeKey key.Binding
	width    int
	height   int
}

// New creates the diff page comparing original against current.
func New(original, current string) Model {
	return Model{
		viewport: viewport.New(80, 20),
		original: original,
		current:  current,
		closeKey: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// SetSize updates the page layout and rebuilds the comparison.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 4)
	m.viewport.SetContent(m.render())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.closeKey) {
		return m, func() tea.Msg { return CloseMsg{} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	paneWidth := max(m.width/2-2, 10)
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth).Render(styles.DiffPaneTitleStyle.Render("Original")),
		lipgloss.NewStyle().Width(paneWidth).Render(styles.DiffPaneTitleStyle.Render("Edited")),
	)

	help := styles.HelpStyle.Render("esc: back")

	return strings.Join([]string{header, m.viewport.View(), help}, "\n")
}

// render builds the side-by-side panes from a word-level diff.
func (m *Model) render() string {
	diffs := diffWords(m.original, m.current)

	var left, right strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			left.WriteString(d.Text)
			right.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			writeStyled(&left, d.Text, styles.DiffDeleteStyle)
		case diffmatchpatch.DiffInsert:
			writeStyled(&right, d.Text, styles.DiffInsertStyle)
		}
	}

	paneWidth := max(m.width/2-2, 10)
	paneStyle := lipgloss.NewStyle().Width(paneWidth).PaddingRight(1)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		paneStyle.Render(left.String()),
		paneStyle.Render(right.String()),
	)
}

// writeStyled styles each line of a span separately so highlighting
// does not bleed across line boundaries.
func writeStyled(b *strings.Builder, text string, style lipgloss.Style) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}
