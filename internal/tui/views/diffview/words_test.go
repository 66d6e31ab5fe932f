package diffview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"word",
		"two words",
		"  leading and trailing  ",
		"line one\nline two\n",
		"tabs\tand  runs   of space",
		"unicode — déjà vu",
	}

	for _, text := range cases {
		assert.Equal(t, text, strings.Join(tokenize(text), ""))
	}
}

func TestTokenizeSplitsWordAndSpaceRuns(t *testing.T) {
	tokens := tokenize("one  two\nthree")
	assert.Equal(t, []string{"one", "  ", "two", "\n", "three"}, tokens)
}

func TestDiffWordsEqual(t *testing.T) {
	diffs := diffWords("same text", "same text")
	require.Len(t, diffs, 1)
	assert.Equal(t, diffmatchpatch.DiffEqual, diffs[0].Type)
	assert.Equal(t, "same text", diffs[0].Text)
}

func TestDiffWordsWholeWordChange(t *testing.T) {
	diffs := diffWords("the quick brown fox", "the slow brown fox")

	var deleted, inserted []string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			deleted = append(deleted, d.Text)
		case diffmatchpatch.DiffInsert:
			inserted = append(inserted, d.Text)
		}
	}

	assert.Equal(t, []string{"quick"}, deleted, "changes land on word boundaries")
	assert.Equal(t, []string{"slow"}, inserted)
}

func TestTokenEncoderLargeVocabulary(t *testing.T) {
	// Enough distinct tokens to push IDs past the UTF-16 surrogate
	// block; a surrogate ID would come back as U+FFFD and lose its
	// token in decode.
	var b strings.Builder
	for i := 0; i < 60000; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	text := b.String()

	enc := newTokenEncoder()
	encoded := string(enc.encode(text))

	assert.False(t, strings.ContainsRune(encoded, '�'))
	require.Equal(t, text, enc.decode(encoded))
}

func TestDiffWordsLargeVocabulary(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60000; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	a := b.String()
	c := strings.Replace(a, "w57000", "changed", 1)

	var left, right strings.Builder
	for _, d := range diffWords(a, c) {
		if d.Type != diffmatchpatch.DiffInsert {
			left.WriteString(d.Text)
		}
		if d.Type != diffmatchpatch.DiffDelete {
			right.WriteString(d.Text)
		}
	}

	assert.Equal(t, a, left.String())
	assert.Equal(t, c, right.String())
}

func TestDiffWordsReconstructsBothSides(t *testing.T) {
	a := "alpha beta\ngamma delta"
	b := "alpha changed\ngamma delta epsilon"
	diffs := diffWords(a, b)

	var left, right strings.Builder
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffInsert {
			left.WriteString(d.Text)
		}
		if d.Type != diffmatchpatch.DiffDelete {
			right.WriteString(d.Text)
		}
	}

	assert.Equal(t, a, left.String())
	assert.Equal(t, b, right.String())
}
