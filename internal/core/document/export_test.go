package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportName(t *testing.T) {
	assert.Equal(t, "the-pragmatic-programmer.md", ExportName("The Pragmatic Programmer"))
	assert.Equal(t, "highlights.md", ExportName(""))
	assert.Equal(t, "highlights.md", ExportName("!!!"))
}

func TestSaveFileWritesLiveBuffer(t *testing.T) {
	dir := t.TempDir()

	b := NewBuffer("server text")
	b.SetMode(ModeEdit)
	b.Edit("edited text")

	path, err := SaveFile(dir, "My Book", b.Text())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my-book.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "edited text", string(data), "export reflects edits, not server text")
}

func TestSaveFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "books")

	path, err := SaveFile(dir, "Book", "text")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, "0 B", SizeLabel(""))
	assert.NotEmpty(t, SizeLabel("0123456789"))
}
