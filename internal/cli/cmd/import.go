package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/infrastructure/firefox"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import state from another browser",
}

var importFirefoxCmd = &cobra.Command{
	Use:   "firefox <profile-dir>",
	Short: "Replace open tabs with a Firefox profile's last session",
	Long: `Read the live session under sessionstore-backups/, falling back to the
last closed one
from a Firefox profile and open its tabs. Tab groups are recreated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		uc := usecase.NewImportSessionUseCase(firefox.NewSessionReader(args[0]), a.Browser)
		out, err := uc.Execute(a.Ctx())
		if err != nil {
			return err
		}
		return emit(cmd, out, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, a.Theme.SuccessStyle.Render(
				fmt.Sprintf("Imported %d tabs in %d groups", out.Tabs, out.Groups)))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importFirefoxCmd)
}
