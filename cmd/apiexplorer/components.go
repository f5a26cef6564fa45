package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/artpar/apiexplorer/bootstrap"
	"github.com/artpar/apiexplorer/config"
	"github.com/artpar/apiexplorer/core/registry"
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/spf13/cobra"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List registered components",
	Long: `List the components found in components.dir with their operation counts.

Examples:
  apiexplorer components
  apiexplorer components --config /etc/apiexplorer/config.yaml`,
	RunE: runComponents,
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	comps, err := bootstrap.LoadComponents(cfg.Components.Dir)
	if err != nil {
		return err
	}

	reg := registry.New()
	if err := reg.Replace(comps); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tVIEWS\tACTIONS\tOTHERS")
	for _, comp := range reg.List() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
			comp.Name,
			len(comp.Operations(schema.KindView)),
			len(comp.Operations(schema.KindAction)),
			len(comp.Operations(schema.KindOther)),
		)
	}
	return w.Flush()
}
