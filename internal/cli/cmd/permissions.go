package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/domain/entity"
)

type capabilityDecision struct {
	Capability entity.Capability `json:"capability"`
	Granted    bool              `json:"granted"`
}

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Show which capabilities the configured policy grants",
	Long: `Ask the permission gate for every capability and print its answer.

Grants come from the server.grant list in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		caps := entity.AllCapabilities()
		decisions := make([]capabilityDecision, 0, len(caps))
		for _, c := range caps {
			decisions = append(decisions, capabilityDecision{Capability: c, Granted: a.Permissions.Request(a.Ctx(), c)})
		}

		return emit(cmd, decisions, func(w io.Writer) error {
			rows := make([][]string, 0, len(decisions))
			for _, d := range decisions {
				verdict := a.Theme.ErrorStyle.Render("denied")
				if d.Granted {
					verdict = a.Theme.SuccessStyle.Render("granted")
				}
				rows = append(rows, []string{string(d.Capability), verdict})
			}
			return printTable(w, a.Theme, []string{"Capability", "Decision"}, rows)
		})
	},
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
}
