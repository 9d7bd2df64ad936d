package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

const defaultHistoryMax = 50

var (
	historyMax   int
	historyTitle string
	statsDays    int
	statsTop     int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		entries := a.Browser.History()
		if historyMax > 0 && len(entries) > historyMax {
			entries = entries[:historyMax]
		}
		return emit(cmd, entries, func(w io.Writer) error {
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					string(e.ID),
					styles.Truncate(e.Title, 40),
					styles.Truncate(e.URL, 50),
					strconv.FormatInt(e.VisitCount, 10),
					when(e.Timestamp),
				})
			}
			return printTable(w, a.Theme, []string{"ID", "Title", "URL", "Visits", "Last Visit"}, rows)
		})
	},
}

var historyAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Record a visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id := a.Browser.AddHistoryEntry(a.Ctx(), store.VisitInfo{Title: historyTitle, URL: args[0]})
		return emitID(cmd, "history", string(id))
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		a.Browser.RemoveHistoryEntry(a.Ctx(), entity.HistoryID(args[0]))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		n := len(a.Browser.History())
		a.Browser.ClearHistory(a.Ctx())
		return emit(cmd, map[string]int{"deleted": n}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, a.Theme.SuccessStyle.Render(fmt.Sprintf("Deleted %d entries", n)))
			return err
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		stats := a.Analytics.Execute(a.Ctx(), usecase.HistoryAnalyticsInput{Days: statsDays, TopN: statsTop})
		return emit(cmd, stats, func(w io.Writer) error {
			return renderStats(w, a.Theme, stats)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyAddCmd, historyRemoveCmd, historyClearCmd, historyStatsCmd)

	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show; 0 shows all")
	historyAddCmd.Flags().StringVar(&historyTitle, "title", "", "page title")
	historyStatsCmd.Flags().IntVar(&statsDays, "days", 30, "days of daily activity to report")
	historyStatsCmd.Flags().IntVar(&statsTop, "top", 10, "entries in the top lists")
}

func renderStats(w io.Writer, theme *styles.Theme, s *entity.HistoryAnalytics) error {
	fmt.Fprintln(w, theme.Title.Render("History"))
	fmt.Fprintf(w, "  %s %d\n", theme.Subtle.Render("Entries"), s.TotalEntries)
	fmt.Fprintf(w, "  %s %d\n", theme.Subtle.Render("Visits "), s.TotalVisits)
	fmt.Fprintf(w, "  %s %d\n", theme.Subtle.Render("Days   "), s.UniqueDays)
	fmt.Fprintln(w)

	domains := make([][]string, 0, len(s.TopDomains))
	for _, d := range s.TopDomains {
		domains = append(domains, []string{
			d.Domain,
			strconv.FormatInt(d.TotalVisits, 10),
			strconv.FormatInt(d.PageCount, 10),
			when(d.LastVisit),
		})
	}
	fmt.Fprintln(w, theme.Subtitle.Render("Top domains"))
	if err := printTable(w, theme, []string{"Domain", "Visits", "Pages", "Last Visit"}, domains); err != nil {
		return err
	}

	days := make([][]string, 0, len(s.DailyVisits))
	for _, d := range s.DailyVisits {
		days = append(days, []string{d.Day, strconv.FormatInt(d.Entries, 10), strconv.FormatInt(d.Visits, 10)})
	}
	fmt.Fprintln(w, theme.Subtitle.Render("Daily activity"))
	return printTable(w, theme, []string{"Day", "Entries", "Visits"}, days)
}
