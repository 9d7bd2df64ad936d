package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

var (
	tabTitle string
	tabGroup string
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List and manage tabs",
	Args:  cobra.NoArgs,
	RunE:  runTabsList,
}

var tabsOpenCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a new tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id := a.Browser.AddTab(a.Ctx(), store.TabSpec{
			Title:   tabTitle,
			URL:     args[0],
			GroupID: entity.GroupID(tabGroup),
		})
		return emitID(cmd, "tab", string(id))
	},
}

var tabsNavigateCmd = &cobra.Command{
	Use:   "navigate <tab-id> <url-or-query>",
	Short: "Navigate a tab to a URL or search query",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id, err := requireTab(a.Browser, args[0])
		if err != nil {
			return err
		}
		a.Browser.NavigateTab(a.Ctx(), id, strings.Join(args[1:], " "))
		return nil
	},
}

var tabsMoveCmd = &cobra.Command{
	Use:   "move <tab-id> <index>",
	Short: "Move a tab to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id, err := requireTab(a.Browser, args[0])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		a.Browser.MoveTab(a.Ctx(), id, index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tabsCmd)
	tabsCmd.AddCommand(tabsOpenCmd, tabsNavigateCmd, tabsMoveCmd)
	tabsOpenCmd.Flags().StringVar(&tabTitle, "title", "", "tab title")
	tabsOpenCmd.Flags().StringVar(&tabGroup, "group", "", "group to open the tab in")

	tabsCmd.AddCommand(
		tabAction("close", "Close a tab", (*store.BrowserStore).CloseTab),
		tabAction("activate", "Make a tab the active one", (*store.BrowserStore).SetActiveTab),
		tabAction("pin", "Toggle a tab's pinned flag", (*store.BrowserStore).PinTab),
		tabAction("mute", "Toggle a tab's muted flag", (*store.BrowserStore).MuteTab),
		tabAction("hibernate", "Toggle a tab's hibernated flag", (*store.BrowserStore).HibernateTab),
	)
}

// tabAction builds a command applying fn to one tab.
func tabAction(use, short string, fn func(*store.BrowserStore, context.Context, entity.TabID)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tab-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := GetApp()
			if err != nil {
				return err
			}
			id, err := requireTab(a.Browser, args[0])
			if err != nil {
				return err
			}
			fn(a.Browser, a.Ctx(), id)
			return nil
		},
	}
}

func requireTab(s *store.BrowserStore, raw string) (entity.TabID, error) {
	id := entity.TabID(raw)
	if _, ok := s.Tab(id); !ok {
		return "", fmt.Errorf("tab %q not found", raw)
	}
	return id, nil
}

func runTabsList(cmd *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	tabs := a.Browser.Tabs()
	return emit(cmd, tabs, func(w io.Writer) error {
		rows := make([][]string, 0, len(tabs))
		for i, t := range tabs {
			state := strings.TrimSpace(strings.Join([]string{
				flag(t.IsActive, "active"),
				flag(t.Pinned, "pinned"),
				flag(t.Muted, "muted"),
				flag(t.Loading, "loading"),
				flag(t.Hibernated, "hibernated"),
			}, " "))
			rows = append(rows, []string{
				strconv.Itoa(i),
				string(t.ID),
				styles.Truncate(t.DisplayTitle(), 40),
				styles.Truncate(t.URL, 50),
				string(t.GroupID),
				strings.Join(strings.Fields(state), ","),
			})
		}
		return printTable(w, a.Theme, []string{"#", "ID", "Title", "URL", "Group", "State"}, rows)
	})
}
