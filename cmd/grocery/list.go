package main

import (
	"fmt"

	"grocery-planner/internal/client"
	"grocery-planner/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newListCmd() *cobra.Command {
	var (
		server string
		user   string
		week   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the grocery list for a week from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}

			list, err := client.New(server, user).GroceryList(cmd.Context(), week)
			if err != nil {
				return err
			}

			common.LogDebug("grocery list fetched",
				zap.String("week_start", list.WeekStart),
				zap.Int("items", len(list.Items)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week %s to %s (%d meals)\n", list.WeekStart, list.WeekEnd, list.MealCount)
			for _, it := range list.Items {
				fmt.Fprintln(out, it.Display)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "grocery planner server URL")
	cmd.Flags().StringVar(&user, "user", "", "user ID sent as X-User-ID")
	cmd.Flags().StringVar(&week, "week", "", "any date in the week (YYYY-MM-DD), defaults to the current week")
	return cmd
}
