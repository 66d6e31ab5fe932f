package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSubmitRequiresBookFile(t *testing.T) {
	c := NewCollector()
	c.SetClippingsFile("clippings.txt")
	c.SetNotesText("- a note")

	assert.False(t, c.CanSubmit(), "no book file means no submission")

	c.SetBookFile("book.epub")
	assert.True(t, c.CanSubmit())
}

func TestCanSubmitTruthTable(t *testing.T) {
	tests := []struct {
		name      string
		book      string
		clippings string
		notes     string
		merge     bool
		mergeFile string
		mergeText string
		loading   bool
		want      bool
	}{
		{name: "empty", want: false},
		{name: "book only", book: "b.epub", want: false},
		{name: "book and clippings", book: "b.epub", clippings: "c.txt", want: true},
		{name: "book and pasted notes", book: "b.epub", notes: "- a note", want: true},
		{name: "blank notes do not count", book: "b.epub", notes: "   \n\t", want: false},
		{name: "loading gates everything", book: "b.epub", clippings: "c.txt", loading: true, want: false},
		{name: "merge without target", book: "b.epub", clippings: "c.txt", merge: true, want: false},
		{name: "merge with file", book: "b.epub", clippings: "c.txt", merge: true, mergeFile: "old.md", want: true},
		{name: "merge with text", book: "b.epub", clippings: "c.txt", merge: true, mergeText: "# Old", want: true},
		{name: "merge with blank text", book: "b.epub", clippings: "c.txt", merge: true, mergeText: "  ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			c.SetBookFile(tt.book)
			c.SetClippingsFile(tt.clippings)
			c.SetNotesText(tt.notes)
			c.SetMergeEnabled(tt.merge)
			c.SetMergeFile(tt.mergeFile)
			c.SetMergeText(tt.mergeText)
			c.SetLoading(tt.loading)

			assert.Equal(t, tt.want, c.CanSubmit())
		})
	}
}

func TestCanSubmitIsIdempotent(t *testing.T) {
	c := NewCollector()
	c.SetBookFile("b.epub")
	c.SetNotesText("- a note")

	for range 3 {
		assert.True(t, c.CanSubmit())
	}
}

func TestSetMergeEnabledFalseClearsTargets(t *testing.T) {
	c := NewCollector()
	c.SetMergeEnabled(true)
	c.SetMergeFile("old.md")
	c.SetMergeText("# Old Document")

	c.SetMergeEnabled(false)

	assert.Empty(t, c.MergeFile())
	assert.Empty(t, c.MergeText())

	// Re-enabling does not resurrect the cleared values.
	c.SetMergeEnabled(true)
	assert.Empty(t, c.MergeFile())
	assert.Empty(t, c.MergeText())
}

func TestMergeFileDoesNotEraseMergeText(t *testing.T) {
	c := NewCollector()
	c.SetMergeEnabled(true)
	c.SetMergeText("# stale text")
	c.SetMergeFile("old.md")

	// The pasted text stays in memory; the file only takes precedence.
	assert.Equal(t, "# stale text", c.MergeText())
	assert.Equal(t, "old.md", c.MergeFile())
}

func TestBuildRequestPrefersMergeFile(t *testing.T) {
	c := NewCollector()
	c.SetBookFile("b.epub")
	c.SetClippingsFile("c.txt")
	c.SetMergeEnabled(true)
	c.SetMergeText("# stale text")
	c.SetMergeFile("old.md")

	req := c.BuildRequest()

	assert.Equal(t, "old.md", req.MergeFilePath)
	assert.Empty(t, req.MergeText, "stale pasted text must not ride along with the file")
}

func TestBuildRequestTrimsBlankText(t *testing.T) {
	c := NewCollector()
	c.SetBookFile("b.epub")
	c.SetClippingsFile("c.txt")
	c.SetNotesText("   ")

	req := c.BuildRequest()
	assert.Empty(t, req.NotesText)

	c.SetNotesText("- a note")
	req = c.BuildRequest()
	assert.Equal(t, "- a note", req.NotesText)
}

func TestBuildRequestIgnoresMergeFieldsWhenDisabled(t *testing.T) {
	c := NewCollector()
	c.SetBookFile("b.epub")
	c.SetClippingsFile("c.txt")
	c.SetMergeFile("old.md") // set without enabling merge mode

	req := c.BuildRequest()
	assert.Empty(t, req.MergeFilePath)
	assert.Empty(t, req.MergeText)
}
