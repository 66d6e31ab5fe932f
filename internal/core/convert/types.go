// Package convert defines the conversion service contract and the
// client-side state that feeds it.
package convert

// HighlightKind distinguishes plain highlights from typed notes.
type HighlightKind string

const (
	KindHighlight HighlightKind = "highlight"
	KindNote      HighlightKind = "note"
)

// Highlight is a single extracted annotation.
type Highlight struct {
	Text     string        `json:"text"`
	Location string        `json:"location"`
	Kind     HighlightKind `json:"type"`
	Note     string        `json:"note,omitempty"`
}

// Chapter is an ordered unit of the generated document. Titles are not
// guaranteed unique; chapters are addressed by index.
type Chapter struct {
	Title      string      `json:"title"`
	Highlights []Highlight `json:"highlights"`
}

// Stats is the summary block the service returns alongside the document.
// NewAdded and DuplicatesFound are only present for merge conversions.
type Stats struct {
	TotalHighlights    int     `json:"total_highlights"`
	MatchedHighlights  int     `json:"matched_highlights"`
	OrphanedHighlights int     `json:"orphaned_highlights"`
	MatchRate          float64 `json:"match_rate"`
	FileSize           string  `json:"file_size"`
	NewAdded           *int    `json:"new_added,omitempty"`
	DuplicatesFound    *int    `json:"duplicates_found,omitempty"`
}

// Result is the complete service response. It is immutable once received;
// the editable copy of Markdown lives in document.Buffer.
type Result struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Chapters []Chapter `json:"chapters"`
	Markdown string    `json:"markdown"`
	Stats    Stats     `json:"stats"`
}

// Request is the projected wire shape of a conversion submission.
// Text fields are already trimmed and non-empty when set; MergeFilePath
// and MergeText are mutually exclusive (file wins).
type Request struct {
	BookPath      string
	ClippingsPath string
	NotesText     string
	MergeFilePath string
	MergeText     string
}
