package main

import (
	"fmt"
	"os"
	"time"

	"grocery-planner/internal/pkg/common"

	"github.com/spf13/cobra"
)

// now 由測試替換
var now = time.Now

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "grocery",
		Short: "Weekly grocery list tools",
		Long: `Build weekly grocery lists from planned recipes.

Available subcommands:
  list      - Fetch the grocery list for a week from the server
  aggregate - Aggregate a local JSON file of scheduled recipes
  week      - Print the Monday to Sunday window for a date`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return common.InitLogger(logLevel, "")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newListCmd(), newAggregateCmd(), newWeekCmd())
	return root
}

func main() {
	defer common.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
