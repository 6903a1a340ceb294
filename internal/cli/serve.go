package cli

import (
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/playground-backend/internal"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST and WebSocket servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return application.RunApp(cmd.Context(), a.logger, a.conf)
		},
	}
}
