package document

import "github.com/colonyops/quill/internal/core/convert"

// Index tracks the active chapter of the loaded result. Chapters are
// addressed by position; titles are display-only and may repeat.
type Index struct {
	chapters []convert.Chapter
	active   int
}

// NewIndex returns an index over the given chapters with the first
// chapter active.
func NewIndex(chapters []convert.Chapter) *Index {
	return &Index{chapters: chapters}
}

// Reset replaces the chapter list and unconditionally returns the
// active position to 0. Called whenever a new result arrives.
func (x *Index) Reset(chapters []convert.Chapter) {
	x.chapters = chapters
	x.active = 0
}

// Select makes the chapter at i active. Out-of-range values are
// ignored; this is a UI convenience operation, not a validated API.
// It reports whether the active chapter changed.
func (x *Index) Select(i int) bool {
	if i < 0 || i >= len(x.chapters) {
		return false
	}
	if i == x.active {
		return false
	}
	x.active = i
	return true
}

// Active returns the active chapter position.
func (x *Index) Active() int { return x.active }

// Len returns the number of chapters.
func (x *Index) Len() int { return len(x.chapters) }

// Chapters returns the chapter list.
func (x *Index) Chapters() []convert.Chapter { return x.chapters }

// ActiveChapter returns the active chapter, or false when the index is
// empty.
func (x *Index) ActiveChapter() (convert.Chapter, bool) {
	if len(x.chapters) == 0 {
		return convert.Chapter{}, false
	}
	return x.chapters[x.active], true
}
