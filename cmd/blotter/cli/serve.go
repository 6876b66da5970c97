package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitqueue/OG-Platform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve blotter forms over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			srv, err := server.New(orch, server.Config{
				Addr:   a.v.GetString("addr"),
				Logger: a.logger,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
