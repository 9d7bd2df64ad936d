package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
)

var (
	groupColor     string
	groupLayout    string
	groupName      string
	groupCollapsed string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List and manage tab groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		groups := a.Browser.Groups()
		return emit(cmd, groups, func(w io.Writer) error {
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{
					string(g.ID),
					g.Name,
					g.Color,
					string(g.Layout),
					strconv.Itoa(len(g.Tabs)),
					flag(g.Collapsed, "collapsed"),
				})
			}
			return printTable(w, a.Theme, []string{"ID", "Name", "Color", "Layout", "Tabs", "State"}, rows)
		})
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tab group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		layout, err := entity.ParseGroupLayout(groupLayout)
		if err != nil {
			return err
		}
		id := a.Browser.AddTabGroup(a.Ctx(), args[0], groupColor, layout)
		return emitID(cmd, "group", string(id))
	},
}

var groupsUpdateCmd = &cobra.Command{
	Use:   "update <group-id>",
	Short: "Rename, recolor, collapse or re-layout a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id, err := requireGroup(a.Browser, args[0])
		if err != nil {
			return err
		}

		var patch store.GroupPatch
		if cmd.Flags().Changed("name") {
			patch.Name = &groupName
		}
		if cmd.Flags().Changed("color") {
			patch.Color = &groupColor
		}
		if cmd.Flags().Changed("layout") {
			layout, err := entity.ParseGroupLayout(groupLayout)
			if err != nil {
				return err
			}
			patch.Layout = &layout
		}
		if cmd.Flags().Changed("collapsed") {
			collapsed, err := strconv.ParseBool(groupCollapsed)
			if err != nil {
				return fmt.Errorf("invalid --collapsed value %q", groupCollapsed)
			}
			patch.Collapsed = &collapsed
		}
		a.Browser.UpdateTabGroup(a.Ctx(), id, patch)
		return nil
	},
}

var groupsRemoveCmd = &cobra.Command{
	Use:   "remove <group-id>",
	Short: "Remove a group; its tabs stay open ungrouped",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		id, err := requireGroup(a.Browser, args[0])
		if err != nil {
			return err
		}
		a.Browser.RemoveTabGroup(a.Ctx(), id)
		return nil
	},
}

var groupsAddTabCmd = &cobra.Command{
	Use:   "add <group-id> <tab-id>",
	Short: "Move a tab into a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		gid, err := requireGroup(a.Browser, args[0])
		if err != nil {
			return err
		}
		tid, err := requireTab(a.Browser, args[1])
		if err != nil {
			return err
		}
		a.Browser.MoveTabToGroup(a.Ctx(), tid, gid)
		return nil
	},
}

var groupsUngroupCmd = &cobra.Command{
	Use:   "ungroup <tab-id>",
	Short: "Take a tab out of its group",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		tid, err := requireTab(a.Browser, args[0])
		if err != nil {
			return err
		}
		a.Browser.RemoveTabFromGroup(a.Ctx(), tid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsCreateCmd, groupsUpdateCmd, groupsRemoveCmd, groupsAddTabCmd, groupsUngroupCmd)

	groupsCreateCmd.Flags().StringVar(&groupColor, "color", "", "group color")
	groupsCreateCmd.Flags().StringVar(&groupLayout, "layout", "", "grid, vertical or horizontal")

	groupsUpdateCmd.Flags().StringVar(&groupName, "name", "", "new name")
	groupsUpdateCmd.Flags().StringVar(&groupColor, "color", "", "new color")
	groupsUpdateCmd.Flags().StringVar(&groupLayout, "layout", "", "grid, vertical or horizontal")
	groupsUpdateCmd.Flags().StringVar(&groupCollapsed, "collapsed", "", "true or false")
}

func requireGroup(s *store.BrowserStore, raw string) (entity.GroupID, error) {
	id := entity.GroupID(raw)
	if _, ok := s.Group(id); !ok {
		return "", fmt.Errorf("group %q not found", raw)
	}
	return id, nil
}
