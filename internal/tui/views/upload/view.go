// Package upload implements the input-collection page: book and
// clippings files, pasted notes, and the optional merge sub-form.
package upload

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/quill/internal/core/convert"
	"github.com/colonyops/quill/internal/core/styles"
)

// SubmitMsg is emitted when the user requests submission and the
// collector reports the inputs are complete.
type SubmitMsg struct{}

// focusable form fields, in cycle order.
const (
	fieldBook = iota
	fieldClippings
	fieldNotes
	fieldMergeFile
	fieldMergeText
)

// KeyMap defines the upload page keybindings.
type KeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	ToggleMerge key.Binding
	Submit      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default upload page keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		ToggleMerge: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle merge"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "convert"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Model is the upload page model. All field values flow into the
// collector on every update; the collector is the single source of
// truth for submission gating.
type Model struct {
	collector *convert.Collector
	keys      KeyMap

	bookInput      textinput.Model
	clippingsInput textinput.Model
	notesArea      textarea.Model
	mergeFileInput textinput.Model
	mergeArea      textarea.Model

	focus   int
	spinner spinner.Model
	errText string
	width   int
	height  int
}

// New creates the upload page over the given collector.
func New(collector *convert.Collector) Model {
	book := textinput.New()
	book.Placeholder = "path/to/book.epub"
	book.Prompt = "> "
	book.Focus()

	clippings := textinput.New()
	clippings.Placeholder = "path/to/My Clippings.txt"
	clippings.Prompt = "> "

	notes := textarea.New()
	notes.Placeholder = "…or paste highlights here"
	notes.SetHeight(4)
	notes.ShowLineNumbers = false

	mergeFile := textinput.New()
	mergeFile.Placeholder = "path/to/previous-highlights.md"
	mergeFile.Prompt = "> "

	mergeText := textarea.New()
	mergeText.Placeholder = "…or paste the previous document"
	mergeText.SetHeight(4)
	mergeText.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerMessageStyle

	return Model{
		collector:      collector,
		keys:           DefaultKeyMap(),
		bookInput:      book,
		clippingsInput: clippings,
		notesArea:      notes,
		mergeFileInput: mergeFile,
		mergeArea:      mergeText,
		spinner:        sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := min(width-6, 72)
	m.bookInput.Width = inputWidth
	m.clippingsInput.Width = inputWidth
	m.mergeFileInput.Width = inputWidth
	m.notesArea.SetWidth(inputWidth)
	m.mergeArea.SetWidth(inputWidth)
}

// SetError sets the error line shown beneath the form. An empty string
// clears it; at most one error is visible at a time.
func (m *Model) SetError(text string) {
	m.errText = text
}

// Error returns the currently displayed error text.
func (m *Model) Error() string { return m.errText }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.collector.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		// Keystrokes are ignored while a conversion is in flight; the
		// pending inputs stay exactly as submitted.
		if m.collector.Loading() {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.NextField):
			m.cycleFocus(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevField):
			m.cycleFocus(-1)
			return m, nil

		case key.Matches(msg, m.keys.ToggleMerge):
			m.toggleMerge()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			if m.collector.CanSubmit() {
				return m, func() tea.Msg { return SubmitMsg{} }
			}
			// Incomplete input is not an error; the key is inert.
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// Spinner returns a command that keeps the loading spinner ticking.
func (m Model) Spinner() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) toggleMerge() {
	enabled := !m.collector.MergeEnabled()
	m.collector.SetMergeEnabled(enabled)

	if !enabled {
		// The collector cleared its merge fields; mirror that in the
		// widgets so nothing stale is displayed on re-enable.
		m.mergeFileInput.SetValue("")
		m.mergeArea.SetValue("")
		if m.focus == fieldMergeFile || m.focus == fieldMergeText {
			m.setFocus(fieldBook)
		}
	}
}

// focusOrder returns the currently reachable fields. The merge textarea
// is skipped while a merge file is set: the file takes precedence and
// the pasted text is suppressed, not erased.
func (m *Model) focusOrder() []int {
	order := []int{fieldBook, fieldClippings, fieldNotes}
	if m.collector.MergeEnabled() {
		order = append(order, fieldMergeFile)
		if m.mergeFileInput.Value() == "" {
			order = append(order, fieldMergeText)
		}
	}
	return order
}

func (m *Model) cycleFocus(dir int) {
	order := m.focusOrder()

	pos := 0
	for i, f := range order {
		if f == m.focus {
			pos = i
			break
		}
	}
	next := order[(pos+dir+len(order))%len(order)]
	m.setFocus(next)
}

func (m *Model) setFocus(field int) {
	m.focus = field

	m.bookInput.Blur()
	m.clippingsInput.Blur()
	m.notesArea.Blur()
	m.mergeFileInput.Blur()
	m.mergeArea.Blur()

	switch field {
	case fieldBook:
		m.bookInput.Focus()
	case fieldClippings:
		m.clippingsInput.Focus()
	case fieldNotes:
		m.notesArea.Focus()
	case fieldMergeFile:
		m.mergeFileInput.Focus()
	case fieldMergeText:
		m.mergeArea.Focus()
	}
}

// updateFocused routes the message to the focused widget and syncs its
// value into the collector.
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case fieldBook:
		m.bookInput, cmd = m.bookInput.Update(msg)
		m.collector.SetBookFile(strings.TrimSpace(m.bookInput.Value()))
	case fieldClippings:
		m.clippingsInput, cmd = m.clippingsInput.Update(msg)
		m.collector.SetClippingsFile(strings.TrimSpace(m.clippingsInput.Value()))
	case fieldNotes:
		m.notesArea, cmd = m.notesArea.Update(msg)
		m.collector.SetNotesText(m.notesArea.Value())
	case fieldMergeFile:
		m.mergeFileInput, cmd = m.mergeFileInput.Update(msg)
		m.collector.SetMergeFile(strings.TrimSpace(m.mergeFileInput.Value()))
	case fieldMergeText:
		m.mergeArea, cmd = m.mergeArea.Update(msg)
		m.collector.SetMergeText(m.mergeArea.Value())
	}

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("quill"))
	b.WriteString(styles.MutedStyle.Render("  convert book highlights to markdown"))
	b.WriteString("\n\n")

	b.WriteString(styles.FieldLabelStyle.Render("Book (EPUB)"))
	b.WriteString("\n" + m.bookInput.View() + "\n\n")

	b.WriteString(styles.FieldLabelStyle.Render("Clippings file"))
	b.WriteString("\n" + m.clippingsInput.View() + "\n\n")

	b.WriteString(styles.FieldLabelStyle.Render("Pasted notes"))
	b.WriteString("\n" + m.notesArea.View() + "\n\n")

	if m.collector.MergeEnabled() {
		b.WriteString(styles.SubtitleStyle.Render("Merge into existing document"))
		b.WriteString("\n")
		b.WriteString(styles.FieldLabelStyle.Render("Previous document file"))
		b.WriteString("\n" + m.mergeFileInput.View() + "\n\n")

		if m.mergeFileInput.Value() != "" {
			b.WriteString(styles.FieldDisabledStyle.Render("Pasted document (file takes precedence)"))
			b.WriteString("\n")
		} else {
			b.WriteString(styles.FieldLabelStyle.Render("Pasted document"))
			b.WriteString("\n" + m.mergeArea.View() + "\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(styles.MutedStyle.Render("Merge mode off (ctrl+t to enable)"))
		b.WriteString("\n\n")
	}

	switch {
	case m.collector.Loading():
		b.WriteString(m.spinner.View())
		b.WriteString(styles.SpinnerMessageStyle.Render(" converting…"))
		b.WriteString("\n")
	case m.collector.CanSubmit():
		b.WriteString(styles.SuccessStyle.Render("ready, ctrl+s to convert"))
		b.WriteString("\n")
	default:
		b.WriteString(styles.MutedStyle.Render("provide a book file plus clippings or pasted notes"))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n" + styles.ErrorStyle.Render(m.errText) + "\n")
	}

	help := "tab: next field • ctrl+t: merge • ctrl+s: convert • ctrl+c: quit"
	b.WriteString("\n" + styles.HelpStyle.Render(help))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
