package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeSwitchNeverMutatesText(t *testing.T) {
	b := NewBuffer("# Doc\n\nbody")

	for range 4 {
		b.SetMode(ModeEdit)
		b.SetMode(ModeRender)
	}

	assert.Equal(t, "# Doc\n\nbody", b.Text())
}

func TestEditOnlyAppliesInEditMode(t *testing.T) {
	b := NewBuffer("original")

	assert.False(t, b.Edit("changed"), "render mode has no writer")
	assert.Equal(t, "original", b.Text())

	b.SetMode(ModeEdit)
	assert.True(t, b.Edit("changed"))
	assert.Equal(t, "changed", b.Text())

	// Returning to render keeps the edit.
	b.SetMode(ModeRender)
	assert.Equal(t, "changed", b.Text())
}

func TestEditAcceptsFreeFormText(t *testing.T) {
	b := NewBuffer("# Doc")
	b.SetMode(ModeEdit)

	malformed := "###no space\n<unclosed>"
	assert.True(t, b.Edit(malformed))
	assert.Equal(t, malformed, b.Text())
}

func TestOriginalIsRetained(t *testing.T) {
	b := NewBuffer("server text")
	b.SetMode(ModeEdit)
	b.Edit("edited text")

	assert.Equal(t, "server text", b.Original())
	assert.True(t, b.Dirty())

	b.Edit("server text")
	assert.False(t, b.Dirty())
}
