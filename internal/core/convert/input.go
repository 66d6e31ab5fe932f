package convert

import "strings"

// Collector owns the pending conversion inputs and computes submission
// eligibility. It is pure state: setters replace values unconditionally,
// and CanSubmit is a side-effect-free predicate. The page controller
// toggles the loading gate around an in-flight submission.
type Collector struct {
	bookPath      string
	clippingsPath string
	notesText     string

	mergeEnabled  bool
	mergeFilePath string
	mergeText     string

	loading bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetBookFile sets the source book file path.
func (c *Collector) SetBookFile(path string) { c.bookPath = path }

// SetClippingsFile sets the clippings/notes file path.
func (c *Collector) SetClippingsFile(path string) { c.clippingsPath = path }

// SetNotesText sets the pasted free-text notes.
func (c *Collector) SetNotesText(text string) { c.notesText = text }

// SetMergeEnabled toggles the merge sub-flow. Disabling clears both
// merge-target fields so stale hidden state cannot leak into a later
// submission. Enabling has no side effect beyond opening the sub-form.
func (c *Collector) SetMergeEnabled(enabled bool) {
	c.mergeEnabled = enabled
	if !enabled {
		c.mergeFilePath = ""
		c.mergeText = ""
	}
}

// SetMergeFile sets the merge-target document file. It does not clear
// pasted merge text; the file merely takes precedence while present.
func (c *Collector) SetMergeFile(path string) { c.mergeFilePath = path }

// SetMergeText sets the pasted merge-target document text.
func (c *Collector) SetMergeText(text string) { c.mergeText = text }

// SetLoading marks a submission as in flight. While set, CanSubmit
// reports false so only one conversion runs at a time.
func (c *Collector) SetLoading(loading bool) { c.loading = loading }

// Loading reports whether a submission is in flight.
func (c *Collector) Loading() bool { return c.loading }

// BookFile returns the source book file path.
func (c *Collector) BookFile() string { return c.bookPath }

// ClippingsFile returns the clippings file path.
func (c *Collector) ClippingsFile() string { return c.clippingsPath }

// NotesText returns the pasted notes text.
func (c *Collector) NotesText() string { return c.notesText }

// MergeEnabled reports whether the merge sub-flow is active.
func (c *Collector) MergeEnabled() bool { return c.mergeEnabled }

// MergeFile returns the merge-target file path.
func (c *Collector) MergeFile() string { return c.mergeFilePath }

// MergeText returns the pasted merge-target text.
func (c *Collector) MergeText() string { return c.mergeText }

// CanSubmit reports whether the pending inputs form a valid submission:
// a book file plus either a clippings file or non-blank pasted notes,
// no submission in flight, and, when merging, a merge target.
func (c *Collector) CanSubmit() bool {
	if c.bookPath == "" {
		return false
	}
	if c.loading {
		return false
	}
	if c.clippingsPath == "" && strings.TrimSpace(c.notesText) == "" {
		return false
	}
	if c.mergeEnabled && c.mergeFilePath == "" && strings.TrimSpace(c.mergeText) == "" {
		return false
	}
	return true
}

// BuildRequest projects the current state into the wire shape. Pasted
// text fields are included only when non-blank, and a merge-target file
// suppresses merge-target text entirely.
func (c *Collector) BuildRequest() Request {
	req := Request{
		BookPath:      c.bookPath,
		ClippingsPath: c.clippingsPath,
	}

	if text := strings.TrimSpace(c.notesText); text != "" {
		req.NotesText = c.notesText
	}

	if !c.mergeEnabled {
		return req
	}

	switch {
	case c.mergeFilePath != "":
		req.MergeFilePath = c.mergeFilePath
	case strings.TrimSpace(c.mergeText) != "":
		req.MergeText = c.mergeText
	}

	return req
}
