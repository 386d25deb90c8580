package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the config file location and the effective configuration,
including environment overrides.

Example:
  timetable config
  timetable config init
  timetable config edit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printConfig(cmd.OutOrStdout())
		},
	}
	cmd.AddCommand(a.configInitCmd())
	cmd.AddCommand(a.configEditCmd())
	return cmd
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}
			if err := config.Default().SaveTo(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func (a *App) configEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.editConfig(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *App) printConfig(w io.Writer) error {
	data, err := toml.Marshal(a.config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprintf(w, "%s %s\n", formatHeader("Config file:"), a.configPath)
	fmt.Fprintln(w, strings.Repeat("─", 22))
	_, err = w.Write(data)
	return err
}

// editConfig prompts for the commonly changed values; an empty answer keeps
// the current one. The result is validated before it is saved.
func (a *App) editConfig(in io.Reader, out io.Writer) error {
	cfg := *a.config
	reader := bufio.NewReader(in)
	p := prompter{reader: reader, out: out}

	cfg.Catalog.Source = p.value("Catalog source (file, http, sqlite)", cfg.Catalog.Source)
	switch cfg.Catalog.Source {
	case config.SourceFile:
		cfg.Catalog.Dir = p.value("Catalog directory", cfg.Catalog.Dir)
	case config.SourceHTTP:
		cfg.Catalog.BaseURL = p.value("Catalog base URL", cfg.Catalog.BaseURL)
	case config.SourceSQLite:
		cfg.Catalog.DBPath = p.value("Database path", cfg.Catalog.DBPath)
	}
	cfg.Search.PageSize = p.number("Search page size", cfg.Search.PageSize)
	cfg.Log.Level = p.value("Log level", cfg.Log.Level)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)
	if p.err != nil {
		return p.err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*a.config = cfg

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

// prompter asks one question per line. After end of input or the first
// read error every later prompt keeps its current value.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	eof    bool
	err    error
}

func (p *prompter) done() bool {
	return p.eof || p.err != nil
}

func (p *prompter) value(label, current string) string {
	if p.done() {
		return current
	}
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, err := p.reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		p.eof = true
	case err != nil:
		p.err = fmt.Errorf("reading input: %w", err)
		return current
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p *prompter) number(label string, current int) int {
	for !p.done() {
		s := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(p.out, "  Invalid number %q\n", s)
	}
	return current
}

func (p *prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s, or a .toml file)", options)
	for !p.done() {
		value := p.value(label, current)
		if theme.IsFile(value) {
			if _, err := theme.LoadFile(value); err != nil {
				fmt.Fprintf(p.out, "  Invalid theme file: %v\n", err)
				continue
			}
			return value
		}
		value = strings.ToLower(value)
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
	}
	return current
}
