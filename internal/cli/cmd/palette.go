package cmd

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/cli"
	"github.com/bnema/bezier/internal/cli/model"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

var paletteLimit int

var paletteCmd = &cobra.Command{
	Use:   "palette [query]",
	Short: "Fuzzy search tabs, bookmarks and history",
	Long: `Open the command palette.

Picking a tab activates it. Picking a bookmark or history entry navigates
the active tab there, or opens a new tab when none is active.

With --json the palette is not shown; the matches for the query are printed.`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().IntVar(&paletteLimit, "limit", 20, "maximum results per category; 0 means no cap")
}

func runPalette(cmd *cobra.Command, args []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	if jsonOutput {
		out := a.Palette.Execute(a.Ctx(), usecase.SearchCommandsInput{Query: query, Limit: paletteLimit})
		return writeJSON(cmd.OutOrStdout(), out)
	}

	m := model.NewPaletteModel(a.Ctx(), a.Theme, a.Palette, query, paletteLimit)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run palette: %w", err)
	}

	pm, ok := final.(model.PaletteModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	item, ok := pm.Selected()
	if !ok {
		return nil
	}
	return openCommandItem(cmd.OutOrStdout(), a, item)
}

// openCommandItem applies a palette pick to the browser store.
func openCommandItem(w io.Writer, a *cli.App, item usecase.CommandItem) error {
	ctx := a.Ctx()
	switch {
	case item.Category == usecase.CategoryTabs:
		a.Browser.SetActiveTab(ctx, entity.TabID(item.ID))
	default:
		if active, ok := a.Browser.ActiveTab(); ok {
			a.Browser.NavigateTab(ctx, active.ID, item.URL)
		} else {
			a.Browser.AddTab(ctx, store.TabSpec{Title: item.Title, URL: item.URL})
		}
	}
	_, err := fmt.Fprintf(w, "%s %s\n", a.Theme.AccentBadge(string(item.Category)), styles.Truncate(item.URL, 80))
	return err
}
