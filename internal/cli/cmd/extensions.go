package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
)

var extensionsCmd = &cobra.Command{
	Use:     "extensions",
	Aliases: []string{"ext"},
	Short:   "List and manage extension records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		exts := a.Extensions.Extensions()
		return emit(cmd, exts, func(w io.Writer) error {
			rows := make([][]string, 0, len(exts))
			for _, e := range exts {
				perms := make([]string, 0, len(e.Permissions))
				for _, p := range e.Permissions {
					perms = append(perms, string(p))
				}
				rows = append(rows, []string{
					string(e.ID),
					e.Name,
					e.Version,
					flag(e.Enabled, "enabled"),
					strings.Join(perms, ","),
				})
			}
			return printTable(w, a.Theme, []string{"ID", "Name", "Version", "State", "Permissions"}, rows)
		})
	},
}

var extensionsInstallCmd = &cobra.Command{
	Use:   "install <manifest.json>",
	Short: "Register an extension from its manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		spec, err := specFromManifest(data)
		if err != nil {
			return err
		}
		id, err := a.Extensions.InstallExtension(a.Ctx(), spec)
		if err != nil {
			return err
		}
		return emitID(cmd, "extension", string(id))
	},
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
	extensionsCmd.AddCommand(
		extensionsInstallCmd,
		extensionAction("uninstall", "Remove an extension and its queued messages", (*store.ExtensionStore).UninstallExtension),
		extensionAction("toggle", "Enable or disable an extension", (*store.ExtensionStore).ToggleExtension),
		extensionAction("clear-storage", "Drop an extension's stored data", (*store.ExtensionStore).ClearExtensionStorage),
	)
}

// specFromManifest reads the fields bezier tracks from a WebExtension
// manifest. The whole document is kept as the manifest. Host patterns and
// permissions bezier does not gate are dropped.
func specFromManifest(data []byte) (store.ExtensionSpec, error) {
	var m struct {
		Name        string            `json:"name"`
		Version     string            `json:"version"`
		Description string            `json:"description"`
		Permissions []string          `json:"permissions"`
		Icons       map[string]string `json:"icons"`
		Background  json.RawMessage   `json:"background"`
		Content     []struct {
			Matches []string `json:"matches"`
			JS      []string `json:"js"`
			CSS     []string `json:"css"`
		} `json:"content_scripts"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return store.ExtensionSpec{}, fmt.Errorf("decode manifest: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return store.ExtensionSpec{}, fmt.Errorf("decode manifest: %w", err)
	}

	spec := store.ExtensionSpec{
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		Background:  len(m.Background) > 0 && string(m.Background) != "null",
		Manifest:    raw,
	}
	for _, p := range m.Permissions {
		if c, err := entity.ParseCapability(p); err == nil {
			spec.Permissions = append(spec.Permissions, c)
		}
	}
	for _, size := range []string{"128", "96", "64", "48", "32", "16"} {
		if icon, ok := m.Icons[size]; ok {
			spec.Icon = icon
			break
		}
	}
	for _, cs := range m.Content {
		spec.ContentScripts = append(spec.ContentScripts, entity.ContentScript{
			Matches: cs.Matches,
			JS:      cs.JS,
			CSS:     cs.CSS,
		})
	}
	return spec, nil
}

func extensionAction(use, short string, fn func(*store.ExtensionStore, context.Context, entity.ExtensionID)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <extension-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := GetApp()
			if err != nil {
				return err
			}
			id := entity.ExtensionID(args[0])
			if _, ok := a.Extensions.Extension(id); !ok {
				return fmt.Errorf("extension %q not found", args[0])
			}
			fn(a.Extensions, a.Ctx(), id)
			return nil
		},
	}
}
