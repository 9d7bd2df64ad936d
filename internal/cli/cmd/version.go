package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/build"
	"github.com/bnema/bezier/internal/domain/entity"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"about"},
	Short:   "Show version and build information",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := build.Current()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		theme := styles.NewTheme(entity.DefaultTheme().Colors)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(theme).Render(info))
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
