package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/bezier/internal/domain/entity"
)

var (
	themeFormat string
	themeApply  bool
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show and manage themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		current := a.Themes.CurrentTheme()
		return emit(cmd, current, func(w io.Writer) error {
			fmt.Fprintf(w, "%s %s\n\n", a.Theme.Title.Render(current.Name), a.Theme.Subtle.Render(string(current.ID)))
			for _, slot := range current.Colors.Slots() {
				fmt.Fprintln(w, a.Theme.Swatch(slot))
			}
			_, err := fmt.Fprintf(w, "\n%s %s / %s\n", a.Theme.Subtle.Render("Fonts"), current.Fonts.Sans, current.Fonts.Mono)
			return err
		})
	},
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom themes and presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		state := a.Themes.State()
		return emit(cmd, state, func(w io.Writer) error {
			rows := [][]string{{string(state.CurrentTheme.ID), state.CurrentTheme.Name, "current"}}
			for _, t := range state.CustomThemes {
				rows = append(rows, []string{string(t.ID), t.Name, "custom"})
			}
			for _, p := range state.Presets {
				rows = append(rows, []string{p.ID, p.Name, "preset"})
			}
			return printTable(w, a.Theme, []string{"ID", "Name", "Kind"}, rows)
		})
	},
}

var themeCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the active theme as CSS custom properties",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		vars := a.Themes.CSSVariables()
		return emit(cmd, vars, func(w io.Writer) error {
			_, err := io.WriteString(w, renderCSS(vars))
			return err
		})
	},
}

var themeSelectCmd = &cobra.Command{
	Use:   "select <theme-id>",
	Short: "Make a custom theme the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		if !a.Themes.SelectTheme(a.Ctx(), entity.ThemeID(args[0])) {
			return fmt.Errorf("theme %q not found", args[0])
		}
		return nil
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default theme",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		a.Themes.ResetTheme(a.Ctx())
		return nil
	},
}

var themeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active theme as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		data, err := encodeTheme(a.Themes.CurrentTheme(), themeFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var themeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add a theme file as a custom theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read theme: %w", err)
		}
		theme, err := decodeTheme(data, formatFor(args[0]))
		if err != nil {
			return err
		}

		ctx := a.Ctx()
		id, err := a.Themes.AddCustomTheme(ctx, theme)
		if err != nil {
			return err
		}
		if themeApply {
			a.Themes.SelectTheme(ctx, id)
		}
		return emitID(cmd, "theme", string(id))
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd, themeCSSCmd, themeSelectCmd, themeResetCmd, themeExportCmd, themeImportCmd)

	themeExportCmd.Flags().StringVar(&themeFormat, "format", "yaml", "yaml or json")
	themeImportCmd.Flags().BoolVar(&themeApply, "apply", false, "make the imported theme active")
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func encodeTheme(theme entity.Theme, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(theme)
	case "json":
		data, err := json.MarshalIndent(theme, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func decodeTheme(data []byte, format string) (entity.Theme, error) {
	var theme entity.Theme
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, &theme)
	} else {
		err = json.Unmarshal(data, &theme)
	}
	if err != nil {
		return entity.Theme{}, fmt.Errorf("decode %s theme: %w", format, err)
	}
	return theme, nil
}

func renderCSS(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", k, vars[k])
	}
	b.WriteString("}\n")
	return b.String()
}
