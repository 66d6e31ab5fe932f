package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/quill/internal/core/config"
	"github.com/colonyops/quill/internal/core/styles"
)

type InitCmd struct {
	flags *Flags
	yes   bool
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize quill configuration with an interactive wizard",
		UsageText: "quill init [options]",
		Description: `Sets up quill for first-time use.

The wizard asks for the conversion service URL, the color theme, and
the export directory, then writes the config file.

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(c.Root().Writer, "init cancelled")
			return nil
		}
	}

	cfg := config.Default()

	if !cmd.yes {
		themeOptions := make([]huh.Option[string], 0, len(styles.ThemeNames()))
		for _, name := range styles.ThemeNames() {
			themeOptions = append(themeOptions, huh.NewOption(name, name))
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Conversion service URL").
				Description("Base URL of the highlights service, without /api").
				Value(&cfg.Service.URL),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&cfg.TUI.Theme),
			huh.NewInput().
				Title("Export directory").
				Description("Where saved documents go (empty = current directory)").
				Value(&cfg.Export.Dir),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := writeConfig(cfg, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "created config: %s\n", path)
	fmt.Fprintln(c.Root().Writer, "run 'quill' to start converting")
	return nil
}

func writeConfig(cfg *config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
