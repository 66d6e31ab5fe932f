// Package tui implements the interactive conversion client: an upload
// page that collects inputs, a results page for reviewing and editing
// the generated document, and a diff page comparing edits against the
// server output.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/quill/internal/core/config"
	"github.com/colonyops/quill/internal/core/convert"
	"github.com/colonyops/quill/internal/core/document"
	"github.com/colonyops/quill/internal/tui/views/diffview"
	"github.com/colonyops/quill/internal/tui/views/results"
	"github.com/colonyops/quill/internal/tui/views/upload"
)

// page identifies the visible page.
type page int

const (
	pageUpload page = iota
	pageResults
	pageDiff
)

// Deps carries everything the TUI needs from the command layer.
type Deps struct {
	Config *config.Config
	Client *convert.Client
	Logger zerolog.Logger
}

// convertDoneMsg is sent when a submission completes successfully.
type convertDoneMsg struct {
	result *convert.Result
}

// convertFailedMsg is sent when a submission fails for any reason.
type convertFailedMsg struct {
	err error
}

// Model is the root Bubble Tea model. It owns the session state: the
// collector before a conversion, and the result, chapter index, and
// edit buffer after one. Exactly one submission can be in flight at a
// time, enforced through the collector's loading gate.
type Model struct {
	deps Deps
	ctx  context.Context

	page      page
	collector *convert.Collector
	mergeMode bool

	result *convert.Result
	index  *document.Index
	buffer *document.Buffer

	upload  upload.Model
	results results.Model
	diff    diffview.Model

	width  int
	height int
}

// New creates the root model on the upload page with empty inputs.
func New(ctx context.Context, deps Deps) Model {
	collector := convert.NewCollector()
	return Model{
		deps:      deps,
		ctx:       ctx,
		collector: collector,
		upload:    upload.New(collector),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.upload.Init()
}

// submitCmd issues the conversion request off the Update loop. Results
// come back as messages and are applied in completion order; the
// loading gate guarantees there is never more than one in flight.
func (m Model) submitCmd(req convert.Request) tea.Cmd {
	client := m.deps.Client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.Submit(ctx, req)
		if err != nil {
			return convertFailedMsg{err: err}
		}
		return convertDoneMsg{result: result}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.upload.SetSize(msg.Width, msg.Height)
		// The results and diff pages exist only after a conversion; they
		// are sized on creation and resized here once live.
		if m.result != nil {
			m.results.SetSize(msg.Width, msg.Height)
		}
		if m.page == pageDiff {
			m.diff.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case upload.SubmitMsg:
		return m.startSubmission()

	case convertDoneMsg:
		return m.applyResult(msg.result)

	case convertFailedMsg:
		return m.applyFailure(msg.err)

	case results.ShowDiffMsg:
		m.page = pageDiff
		m.diff = diffview.New(m.buffer.Original(), m.buffer.Text())
		m.diff.SetSize(m.width, m.height)
		return m, nil

	case results.BackMsg:
		return m.discardResult()

	case diffview.CloseMsg:
		m.page = pageResults
		return m, nil
	}

	return m.updatePage(msg)
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case pageUpload:
		m.upload, cmd = m.upload.Update(msg)
	case pageResults:
		m.results, cmd = m.results.Update(msg)
	case pageDiff:
		m.diff, cmd = m.diff.Update(msg)
	}
	return m, cmd
}

func (m Model) startSubmission() (tea.Model, tea.Cmd) {
	// The upload view only emits SubmitMsg when CanSubmit holds, but an
	// in-flight submission must never be doubled regardless.
	if !m.collector.CanSubmit() {
		return m, nil
	}

	req := m.collector.BuildRequest()
	m.collector.SetLoading(true)
	m.mergeMode = m.collector.MergeEnabled()
	m.upload.SetError("")

	m.deps.Logger.Info().
		Str("book", req.BookPath).
		Bool("merge", req.MergeFilePath != "" || req.MergeText != "").
		Msg("submitting conversion")

	return m, tea.Batch(m.submitCmd(req), m.upload.Spinner())
}

func (m Model) applyResult(result *convert.Result) (tea.Model, tea.Cmd) {
	m.collector.SetLoading(false)

	m.result = result

	if m.index == nil {
		m.index = document.NewIndex(result.Chapters)
	} else {
		m.index.Reset(result.Chapters)
	}
	m.buffer = document.NewBuffer(result.Markdown)

	m.results = results.New(result, m.index, m.buffer, m.mergeMode, m.deps.Config.Export.Dir)
	m.results.SetSize(m.width, m.height)
	m.page = pageResults

	// Success consumes the pending inputs and clears any prior error.
	m.collector = convert.NewCollector()
	m.upload = upload.New(m.collector)
	m.upload.SetSize(m.width, m.height)

	m.deps.Logger.Info().
		Str("title", result.Title).
		Int("chapters", len(result.Chapters)).
		Msg("conversion complete")

	return m, nil
}

func (m Model) applyFailure(err error) (tea.Model, tea.Cmd) {
	// The pending inputs are untouched; the user corrects and resubmits
	// without re-entering anything.
	m.collector.SetLoading(false)
	m.upload.SetError(failureMessage(err))

	m.deps.Logger.Warn().Err(err).Msg("conversion failed")

	return m, nil
}

func (m Model) discardResult() (tea.Model, tea.Cmd) {
	m.result = nil
	m.index = nil
	m.buffer = nil
	m.page = pageUpload
	return m, nil
}

// failureMessage maps an error to the single user-visible message. A
// service failure surfaces its detail verbatim; anything else shows the
// wrapped error text.
func failureMessage(err error) string {
	var svcErr *convert.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Detail
	}
	return err.Error()
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.page {
	case pageResults:
		return m.results.View()
	case pageDiff:
		return m.diff.View()
	default:
		return m.upload.View()
	}
}
