package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/server"
)

// serveCommand starts the layout preview API.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout preview API",
		Long: `Run the layout preview API.

Serves the layout engine, the image fitter and the batch planner over
HTTP so a page under development can ask for the same answers the CLI
computes. Layout responses are cached in the configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Preview.Listen
			}
			srv := server.New(server.Options{Logger: c.Logger})
			printInfo("Listening on http://%s", listen)
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(ctx, listen)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default from config)")
	return cmd
}
