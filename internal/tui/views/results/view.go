// Package results implements the review page: a chapter list, a
// rendered or editable document pane over one shared buffer, and a
// status bar of conversion metrics.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/quill/internal/core/convert"
	"github.com/colonyops/quill/internal/core/document"
	"github.com/colonyops/quill/internal/core/styles"
)

// ShowDiffMsg asks the root model to open the diff page.
type ShowDiffMsg struct{}

// BackMsg asks the root model to discard the result and return to the
// upload page.
type BackMsg struct{}

// KeyMap defines the results page keybindings.
type KeyMap struct {
	Edit key.Binding
	Diff key.Binding
	Save key.Binding
	Copy key.Binding
	Back key.Binding
}

// DefaultKeyMap returns the default results page keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "diff"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

const tocWidth = 32

// Model is the results page model.
type Model struct {
	result  *convert.Result
	index   *document.Index
	buffer  *document.Buffer
	metrics convert.DisplayMetrics

	toc      list.Model
	viewport viewport.Model
	editor   textarea.Model
	keys     KeyMap

	renderedLines []string
	renderedText  string
	renderedWidth int

	exportDir string
	statusMsg string
	width     int
	height    int
}

// New creates the results page for a freshly received result. The index
// is reset to chapter 0 and the buffer starts from the server text in
// render mode.
func New(result *convert.Result, index *document.Index, buffer *document.Buffer, mergeMode bool, exportDir string) Model {
	items := make([]list.Item, len(result.Chapters))
	for i, ch := range result.Chapters {
		items[i] = chapterItem{chapter: ch}
	}

	toc := list.New(items, chapterDelegate{}, tocWidth, 10)
	toc.Title = "Table of Contents"
	toc.SetShowStatusBar(false)
	toc.SetFilteringEnabled(false)
	toc.SetShowHelp(false)
	toc.Styles.Title = styles.SubtitleStyle

	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.SetValue(buffer.Text())

	return Model{
		result:    result,
		index:     index,
		buffer:    buffer,
		metrics:   convert.DeriveMetrics(result.Stats, mergeMode),
		toc:       toc,
		viewport:  viewport.New(80, 20),
		editor:    editor,
		keys:      DefaultKeyMap(),
		exportDir: exportDir,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// SetSize updates the page layout.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := max(height-4, 4) // info bar + status bar + borders
	m.toc.SetSize(tocWidth, bodyHeight)

	docWidth := max(width-tocWidth-4, 20)
	m.viewport.Width = docWidth
	m.viewport.Height = bodyHeight
	m.editor.SetWidth(docWidth)
	m.editor.SetHeight(bodyHeight)

	m.rerender()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.buffer.Mode() == document.ModeEdit {
		return m.updateEdit(msg, keyMsg, isKey)
	}
	return m.updateRender(msg, keyMsg, isKey)
}

func (m Model) updateEdit(msg tea.Msg, keyMsg tea.KeyMsg, isKey bool) (Model, tea.Cmd) {
	if isKey && key.Matches(keyMsg, m.keys.Back) {
		// Leave edit mode; the buffer already holds every keystroke, so
		// switching views cannot lose or alter text.
		m.buffer.SetMode(document.ModeRender)
		m.editor.Blur()
		m.rerender()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.buffer.Edit(m.editor.Value())
	return m, cmd
}

func (m Model) updateRender(msg tea.Msg, keyMsg tea.KeyMsg, isKey bool) (Model, tea.Cmd) {
	if isKey {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(keyMsg, m.keys.Edit):
			m.buffer.SetMode(document.ModeEdit)
			m.editor.SetValue(m.buffer.Text())
			m.editor.Focus()
			return m, nil

		case key.Matches(keyMsg, m.keys.Diff):
			return m, func() tea.Msg { return ShowDiffMsg{} }

		case key.Matches(keyMsg, m.keys.Save):
			path, err := document.SaveFile(m.exportDir, m.result.Title, m.buffer.Text())
			if err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = "saved " + path
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Copy):
			if err := document.CopyClipboard(m.buffer.Text()); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = "copied to clipboard"
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.toc, cmd = m.toc.Update(msg)
	cmds = append(cmds, cmd)

	// A selection change positions the viewport itself; the key that
	// caused it must not also scroll.
	if m.index.Select(m.toc.Index()) {
		m.syncScroll()
		return m, tea.Batch(cmds...)
	}

	// Paging keys fall through to the viewport.
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// syncScroll brings the active chapter's heading into view. The heading
// is located by slug identity, computed fresh from the current rendered
// output; a missing heading (after hand edits, for instance) is a
// no-op. Never called in edit mode: there is no heading structure in a
// raw-text editor.
func (m *Model) syncScroll() {
	if m.buffer.Mode() != document.ModeRender {
		return
	}

	ch, ok := m.index.ActiveChapter()
	if !ok {
		return
	}

	line := document.FindHeading(m.renderedLines, ch.Title)
	if line < 0 {
		return
	}
	m.viewport.SetYOffset(line)
}

// rerender refreshes the glamour rendering of the live buffer.
func (m *Model) rerender() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	text := m.buffer.Text()
	if text == m.renderedText && width == m.renderedWidth {
		return
	}

	rendered, err := renderMarkdown(text, width)
	if err != nil {
		rendered = text // fall back to the raw buffer
	}

	m.renderedLines = strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	m.renderedText = text
	m.renderedWidth = width
	m.viewport.SetContent(strings.Join(m.renderedLines, "\n"))
}

func renderMarkdown(text string, width int) (string, error) {
	wrapWidth := max(width-2, 20)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

// View implements tea.Model.
func (m Model) View() string {
	var doc string
	if m.buffer.Mode() == document.ModeEdit {
		doc = m.editor.View()
	} else {
		doc = m.viewport.View()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.PaneBorderStyle.Render(m.toc.View()),
		styles.ActivePaneBorderStyle.Render(doc),
	)

	return strings.Join([]string{m.infoBar(), body, m.statusBar()}, "\n")
}

func (m Model) infoBar() string {
	title := styles.TitleStyle.Render(m.result.Title)
	author := styles.MutedStyle.Render(" by " + m.result.Author)

	mode := " [render]"
	if m.buffer.Mode() == document.ModeEdit {
		mode = " [edit]"
	}

	return title + author + styles.SubtitleStyle.Render(mode)
}

func severityStyle(s convert.Severity) lipgloss.Style {
	switch s {
	case convert.SeverityGood:
		return styles.SuccessStyle
	case convert.SeverityWarn:
		return styles.WarningStyle
	default:
		return styles.ErrorStyle
	}
}

func (m Model) statusBar() string {
	segments := []string{
		styles.StatusLabelStyle.Render("SIZE ") +
			styles.StatusValueStyle.Render(m.metrics.FileSize),
		styles.StatusLabelStyle.Render("MATCH ") +
			severityStyle(m.metrics.MatchSeverity).Render(fmt.Sprintf("%.0f%%", m.metrics.MatchRate)),
		styles.StatusLabelStyle.Render("ORPHANED ") +
			severityStyle(m.metrics.OrphanSeverity).Render(fmt.Sprintf("%d", m.metrics.OrphanCount)),
	}

	if m.metrics.ShowMerge {
		segments = append(segments,
			styles.StatusLabelStyle.Render("NEW ")+
				styles.SuccessStyle.Render(fmt.Sprintf("%d", m.metrics.NewAdded)),
			styles.StatusLabelStyle.Render("DUPLICATES ")+
				styles.WarningStyle.Render(fmt.Sprintf("%d", m.metrics.DuplicatesFound)),
		)
	}

	if m.buffer.Dirty() {
		segments = append(segments,
			styles.StatusLabelStyle.Render("EDITED ")+
				styles.StatusValueStyle.Render(document.SizeLabel(m.buffer.Text())))
	}

	bar := strings.Join(segments, styles.MutedStyle.Render("  │  "))

	help := "e: edit • d: diff • s: save • y: copy • esc: back"
	if m.buffer.Mode() == document.ModeEdit {
		help = "esc: done editing"
	}

	line := styles.StatusBarStyle.Render(bar) + "   " + styles.HelpStyle.Render(help)
	if m.statusMsg != "" {
		line += "   " + styles.SubtitleStyle.Render(m.statusMsg)
	}
	return line
}
