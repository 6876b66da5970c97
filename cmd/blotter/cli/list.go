package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the trade types the blotter can load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			cat := orch.Catalog()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTITLE\tSCHEMA")
			for _, trade := range orch.Trades() {
				schema := "-"
				if entry, ok := cat.Find(trade.ID); ok && entry.Schema != "" {
					schema = entry.Schema
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", trade.ID, trade.Name, trade.Title, schema)
			}
			return w.Flush()
		},
	}
}
