package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"notes-service/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Runs the HTTP API. Without NATS_URL the email jobs are processed by
workers inside this process; with NATS_URL they are published for the
worker command.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			return a.Serve(ctx)
		})
	},
}
