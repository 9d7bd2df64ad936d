package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

var (
	bookmarkTitle  string
	bookmarkFolder string
	bookmarkTags   []string
	bookmarkTag    string
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "List and manage bookmarks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		var bookmarks []entity.Bookmark
		switch {
		case bookmarkTag != "":
			bookmarks = a.Browser.BookmarksByTag(bookmarkTag)
		case bookmarkFolder != "":
			bookmarks = a.Browser.BookmarksInFolder(bookmarkFolder)
		default:
			bookmarks = a.Browser.Bookmarks()
		}

		return emit(cmd, bookmarks, func(w io.Writer) error {
			rows := make([][]string, 0, len(bookmarks))
			for _, b := range bookmarks {
				rows = append(rows, []string{
					string(b.ID),
					styles.Truncate(b.Title, 40),
					styles.Truncate(b.URL, 50),
					b.FolderID,
					strings.Join(b.Tags, ","),
				})
			}
			return printTable(w, a.Theme, []string{"ID", "Title", "URL", "Folder", "Tags"}, rows)
		})
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Bookmark a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id := a.Browser.AddBookmark(a.Ctx(), store.BookmarkSpec{
			Title:    bookmarkTitle,
			URL:      args[0],
			FolderID: bookmarkFolder,
			Tags:     bookmarkTags,
		})
		return emitID(cmd, "bookmark", string(id))
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <bookmark-id>",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		a.Browser.RemoveBookmark(a.Ctx(), entity.BookmarkID(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksAddCmd, bookmarksRemoveCmd)

	bookmarksCmd.Flags().StringVar(&bookmarkTag, "tag", "", "only bookmarks with this tag")
	bookmarksCmd.Flags().StringVar(&bookmarkFolder, "folder", "", "only bookmarks in this folder")

	bookmarksAddCmd.Flags().StringVar(&bookmarkTitle, "title", "", "bookmark title")
	bookmarksAddCmd.Flags().StringVar(&bookmarkFolder, "folder", "", "folder id")
	bookmarksAddCmd.Flags().StringSliceVar(&bookmarkTags, "tag", nil, "tag, repeatable")
}
