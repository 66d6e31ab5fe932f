package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/quill/internal/core/convert"
	"github.com/colonyops/quill/internal/core/document"
	"github.com/colonyops/quill/internal/core/styles"
	"github.com/colonyops/quill/pkg/iojson"
)

type ConvertCmd struct {
	flags *Flags

	// flags
	book       string
	clippings  string
	notesFile  string
	mergeFile  string
	outDir     string
	toStdout   bool
	toClip     bool
	jsonOutput bool
}

// NewConvertCmd creates a new convert command
func NewConvertCmd(flags *Flags) *ConvertCmd {
	return &ConvertCmd{flags: flags}
}

// Register adds the convert command to the application
func (cmd *ConvertCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "convert",
		Usage:     "Convert a book's highlights to markdown without the TUI",
		UsageText: "quill convert --book book.epub --clippings 'My Clippings.txt' [options]",
		Description: `Submits a single conversion to the service and writes the generated
markdown document to the export directory.

Highlights come from a clippings file, a pasted-notes file, or both.
Pass --merge-file to fold the new highlights into a previously exported
document instead of starting fresh.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "book",
				Aliases:     []string{"b"},
				Usage:       "path to the source book file (EPUB)",
				Required:    true,
				Destination: &cmd.book,
			},
			&cli.StringFlag{
				Name:        "clippings",
				Usage:       "path to the clippings file",
				Destination: &cmd.clippings,
			},
			&cli.StringFlag{
				Name:        "notes-file",
				Usage:       "path to a text file of pasted highlights",
				Destination: &cmd.notesFile,
			},
			&cli.StringFlag{
				Name:        "merge-file",
				Usage:       "previously exported document to merge into",
				Destination: &cmd.mergeFile,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "export directory (defaults to export.dir from config)",
				Destination: &cmd.outDir,
			},
			&cli.BoolFlag{
				Name:        "stdout",
				Usage:       "print the markdown to stdout instead of saving a file",
				Destination: &cmd.toStdout,
			},
			&cli.BoolFlag{
				Name:        "copy",
				Usage:       "also copy the markdown to the clipboard",
				Destination: &cmd.toClip,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the full conversion result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ConvertCmd) run(ctx context.Context, c *cli.Command) error {
	collector := convert.NewCollector()
	collector.SetBookFile(cmd.book)
	collector.SetClippingsFile(cmd.clippings)

	if cmd.notesFile != "" {
		data, err := os.ReadFile(cmd.notesFile)
		if err != nil {
			return fmt.Errorf("read notes file: %w", err)
		}
		collector.SetNotesText(string(data))
	}

	if cmd.mergeFile != "" {
		collector.SetMergeEnabled(true)
		collector.SetMergeFile(cmd.mergeFile)
	}

	if !collector.CanSubmit() {
		return fmt.Errorf("nothing to convert: pass --clippings or --notes-file alongside --book")
	}

	cmd.flags.Logger.Info().
		Str("book", cmd.book).
		Bool("merge", cmd.mergeFile != "").
		Msg("submitting conversion")

	result, err := cmd.flags.Client.Submit(ctx, collector.BuildRequest())
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, result)
	}

	if cmd.toStdout {
		fmt.Fprint(out, result.Markdown)
	} else {
		dir := cmd.outDir
		if dir == "" {
			dir = cmd.flags.Config.Export.Dir
		}
		path, err := document.SaveFile(dir, result.Title, result.Markdown)
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		fmt.Fprintf(out, "saved %s\n", path)
	}

	if cmd.toClip {
		if err := document.CopyClipboard(result.Markdown); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}

	if !cmd.toStdout {
		cmd.printSummary(out, result)
	}

	return nil
}

// printSummary writes the conversion statistics. Severity colors apply
// only when stdout is a terminal.
func (cmd *ConvertCmd) printSummary(out io.Writer, result *convert.Result) {
	metrics := convert.DeriveMetrics(result.Stats, cmd.mergeFile != "")
	tty := term.IsTerminal(int(os.Stdout.Fd()))

	paint := func(s convert.Severity, text string) string {
		if !tty {
			return text
		}
		var style lipgloss.Style
		switch s {
		case convert.SeverityGood:
			style = styles.SuccessStyle
		case convert.SeverityWarn:
			style = styles.WarningStyle
		default:
			style = styles.ErrorStyle
		}
		return style.Render(text)
	}

	fmt.Fprintf(out, "%s by %s: %d chapters, %s\n",
		result.Title, result.Author, len(result.Chapters), metrics.FileSize)
	fmt.Fprintf(out, "matched %s  orphaned %s\n",
		paint(metrics.MatchSeverity, fmt.Sprintf("%.0f%%", metrics.MatchRate)),
		paint(metrics.OrphanSeverity, fmt.Sprintf("%d", metrics.OrphanCount)))

	if metrics.ShowMerge {
		fmt.Fprintf(out, "merged: %d new, %d duplicates skipped\n",
			metrics.NewAdded, metrics.DuplicatesFound)
	}
}
