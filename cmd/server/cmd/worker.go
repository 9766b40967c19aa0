package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"notes-service/internal/app"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume email jobs from NATS",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			return a.RunWorker(ctx)
		})
	},
}
