package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

var downloadName string

var downloadsCmd = &cobra.Command{
	Use:     "downloads",
	Aliases: []string{"dl"},
	Short:   "List and manage downloads",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		items := a.Browser.Downloads()
		return emit(cmd, items, func(w io.Writer) error {
			rows := make([][]string, 0, len(items))
			for _, d := range items {
				rows = append(rows, downloadRow(a.Theme, d))
			}
			return printTable(w, a.Theme, []string{"ID", "File", "Status", "Progress", "Size"}, rows)
		})
	},
}

var downloadsFetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a URL into the downloads directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt)
		defer stop()

		id, done := a.Transfers.Start(a.Ctx(), args[0], downloadName)
		select {
		case <-done:
		case <-ctx.Done():
			a.Browser.CancelDownload(context.WithoutCancel(ctx), id)
			<-done
		}

		item, ok := a.Browser.Download(id)
		if !ok {
			return fmt.Errorf("download %s cancelled", id)
		}
		if err := emit(cmd, item, func(w io.Writer) error {
			return printTable(w, a.Theme, []string{"ID", "File", "Status", "Progress", "Size"}, [][]string{downloadRow(a.Theme, item)})
		}); err != nil {
			return err
		}
		if item.Status == entity.DownloadError {
			return fmt.Errorf("download failed: %s", item.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.AddCommand(downloadsFetchCmd)
	downloadsFetchCmd.Flags().StringVar(&downloadName, "name", "", "file name to save as")

	downloadsCmd.AddCommand(
		downloadAction("pause", "Pause a download", (*store.BrowserStore).PauseDownload),
		downloadAction("resume", "Resume a paused download", (*store.BrowserStore).ResumeDownload),
		downloadAction("cancel", "Cancel a download and drop its record", (*store.BrowserStore).CancelDownload),
		downloadAction("remove", "Remove a download record", (*store.BrowserStore).RemoveDownload),
	)
}

func downloadAction(use, short string, fn func(*store.BrowserStore, context.Context, entity.DownloadID)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <download-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := GetApp()
			if err != nil {
				return err
			}
			id := entity.DownloadID(args[0])
			if _, ok := a.Browser.Download(id); !ok {
				return fmt.Errorf("download %q not found", args[0])
			}
			fn(a.Browser, a.Ctx(), id)
			return nil
		},
	}
}

func downloadRow(theme *styles.Theme, d entity.DownloadItem) []string {
	size := "-"
	if d.Size > 0 {
		size = styles.FormatBytes(d.Size)
	}
	return []string{
		string(d.ID),
		styles.Truncate(d.Filename, 40),
		theme.StatusBadge(d.Status),
		fmt.Sprintf("%.0f%%", d.Progress),
		size,
	}
}
