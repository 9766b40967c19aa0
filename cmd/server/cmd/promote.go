package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"notes-service/internal/app"
	"notes-service/internal/domain"
)

var role string

var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Change a user's role",
	Long:  `Sets the role of an existing user. Registration always creates plain users; admins are made here.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			res, err := a.Promote(ctx, args[0], role)
			if err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", res.Result.Username, res.Result.Role)
			return nil
		})
	},
}

func init() {
	promoteCmd.Flags().StringVar(&role, "role", domain.RoleAdmin, "role to assign (user or admin)")
}
