package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v as JSON when --json is set and calls human otherwise.
func emit(cmd *cobra.Command, v any, human func(w io.Writer) error) error {
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return human(cmd.OutOrStdout())
}

// emitID reports the identifier a mutation created.
func emitID(cmd *cobra.Command, kind, id string) error {
	return emit(cmd, map[string]string{"id": id}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s\n", kind, id)
		return err
	})
}

func printTable(w io.Writer, theme *styles.Theme, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, theme.Subtle.Render("nothing here"))
		return err
	}
	_, err := fmt.Fprintln(w, styles.NewTable(theme, headers, rows).Render())
	return err
}

func flag(b bool, s string) string {
	if b {
		return s
	}
	return ""
}

func when(m entity.Millis) string {
	if m.IsZero() {
		return "-"
	}
	return styles.RelativeTime(m.Time())
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return n, nil
}
