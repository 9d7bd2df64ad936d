package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/credential"
	"github.com/bnema/bezier/internal/domain/entity"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Password helpers",
}

var passwordStrengthCmd = &cobra.Command{
	Use:   "strength [password]",
	Short: "Score a password candidate",
	Long: `Score a password from 0 to 100 and rate it weak, medium or strong.

Without an argument the password is read from the first line of stdin,
which keeps it out of shell history.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"app": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		report := credential.Evaluate(password)
		return emit(cmd, report, func(w io.Writer) error {
			theme := styles.NewTheme(entity.DefaultTheme().Colors)
			color := theme.Error
			switch report.Strength {
			case credential.StrengthStrong:
				color = theme.Success
			case credential.StrengthMedium:
				color = theme.Warning
			}
			label := lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(report.Strength))
			_, err := fmt.Fprintf(w, "%s %s\n", label, theme.Subtle.Render(fmt.Sprintf("%d/100", report.Score)))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordStrengthCmd)
}
