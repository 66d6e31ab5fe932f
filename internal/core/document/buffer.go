package document

// Mode selects which presentation the buffer is shown through. Render
// and edit are two views over the same text, never two copies.
type Mode int

const (
	ModeRender Mode = iota
	ModeEdit
)

// Buffer is the single mutable copy of the generated document text.
// Edit mode is the sole writer; render mode only reads. The original
// server text is retained unchanged for diffing and never rewritten.
type Buffer struct {
	mode     Mode
	text     string
	original string
}

// NewBuffer initializes the buffer from the server's document text, in
// render mode.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, original: text}
}

// Mode returns the current presentation mode.
func (b *Buffer) Mode() Mode { return b.mode }

// SetMode switches presentation. Switching in either direction leaves
// the text untouched.
func (b *Buffer) SetMode(mode Mode) { b.mode = mode }

// Edit replaces the buffer text verbatim. Only valid in edit mode; a
// render-mode call is ignored and reported as false. Free-form text is
// permitted, including malformed markdown.
func (b *Buffer) Edit(text string) bool {
	if b.mode != ModeEdit {
		return false
	}
	b.text = text
	return true
}

// Text returns the live buffer text.
func (b *Buffer) Text() string { return b.text }

// Original returns the server text the buffer started from.
func (b *Buffer) Original() string { return b.original }

// Dirty reports whether the buffer diverged from the server text.
func (b *Buffer) Dirty() bool { return b.text != b.original }
