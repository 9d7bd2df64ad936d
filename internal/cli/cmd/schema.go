package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/infrastructure/config"
)

// schemaTargets maps a document name to a value of its Go type.
var schemaTargets = map[string]any{
	"browser":    &store.BrowserState{},
	"theme":      &store.ThemeState{},
	"extensions": &store.ExtensionState{},
	"config":     &config.Config{},
	"theme-file": &entity.Theme{},
}

var schemaCmd = &cobra.Command{
	Use:   "schema <document>",
	Short: "Print the JSON schema of a persisted document",
	Long: `Print the JSON schema of one of bezier's documents.

Documents: ` + strings.Join(schemaNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: schemaNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := documentSchema(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), schema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func schemaNames() []string {
	names := make([]string, 0, len(schemaTargets))
	for name := range schemaTargets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func documentSchema(name string) (*jsonschema.Schema, error) {
	target, ok := schemaTargets[name]
	if !ok {
		return nil, fmt.Errorf("unknown document %q (want one of %s)", name, strings.Join(schemaNames(), ", "))
	}
	r := &jsonschema.Reflector{
		FieldNameTag:   fieldTagFor(name),
		DoNotReference: true,
	}
	schema := r.Reflect(target)
	schema.Title = "bezier " + name
	return schema, nil
}

// fieldTagFor picks the struct tag naming fields in the document. The
// config file is keyed like its TOML source.
func fieldTagFor(name string) string {
	if name == "config" {
		return "toml"
	}
	return ""
}
