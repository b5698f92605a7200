package cmd

import (
	"github.com/bnema/modelwatch/internal/adapters/web"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			addr := listenAddr
			if addr == "" {
				addr = app.settings.ListenAddr
			}

			return web.NewServer(app.tracker, app.clock, addr).Start()
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: from configuration)")

	return cmd
}
