package results

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/quill/internal/core/convert"
	"github.com/colonyops/quill/internal/core/styles"
)

// chapterItem adapts a chapter for the bubbles list.
type chapterItem struct {
	chapter convert.Chapter
}

// FilterValue implements list.Item. Filtering is disabled on the TOC,
// but the interface requires it.
func (i chapterItem) FilterValue() string { return i.chapter.Title }

// chapterDelegate renders one compact row per chapter with a highlight
// count badge.
type chapterDelegate struct{}

func (d chapterDelegate) Height() int  { return 1 }
func (d chapterDelegate) Spacing() int { return 0 }

func (d chapterDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d chapterDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(chapterItem)
	if !ok {
		return
	}

	title := ansi.Truncate(ci.chapter.Title, tocWidth-8, "…")

	line := title
	if n := len(ci.chapter.Highlights); n > 0 {
		line += styles.BadgeStyle.Render(fmt.Sprintf(" (%d)", n))
	}

	if index == m.Index() {
		fmt.Fprint(w, styles.ListItemActiveStyle.Render("▎"+line))
		return
	}
	fmt.Fprint(w, styles.ListItemStyle.Render(" "+line))
}
