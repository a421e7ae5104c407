// cmd/advisor-server/services.go
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"advisor-services/internal/common/config"
	"advisor-services/pkg/registry"
)

// servicesCmd prints the endpoint catalog and whether each service is enabled.
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the endpoint catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := registry.Default()
		if cfg.Server.CatalogPath != "" {
			var err error
			if catalog, err = registry.Load(cfg.Server.CatalogPath); err != nil {
				return err
			}
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROUTE\tSERVICE\tENABLED\tREQUIRES")
		for _, e := range catalog.Endpoints {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", e.Pattern(), e.Service,
				config.IsServiceEnabled(cfg, e.Service), strings.Join(e.Requires, ","))
		}
		return tw.Flush()
	},
}
