package main

import (
	"fmt"
	"os"

	"grocery-planner/internal/core/grocery"
	"grocery-planner/internal/core/week"
	"grocery-planner/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAggregateCmd() *cobra.Command {
	var (
		file    string
		weekArg string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a local JSON file of scheduled recipes",
		Long: `Aggregate a JSON array of scheduled recipes into one grocery list.

Each element has a plan_date (YYYY-MM-DD) and an ingredients_text block.
With --week only recipes planned inside that week are included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open plan file: %w", err)
			}
			defer f.Close()

			var recipes []grocery.ScheduledRecipe
			if err := common.DecodeJSONStrict(f, &recipes); err != nil {
				return fmt.Errorf("decode plan file: %w", err)
			}

			if weekArg != "" {
				w := week.Resolve(weekArg, now())
				recipes = inWeek(recipes, w)
			}

			res := grocery.Run(recipes)
			common.LogInfo("plan aggregated",
				zap.Int("recipes", len(recipes)),
				zap.Int("items", len(res.Items)),
				zap.Int("lines_skipped", res.LinesSkipped),
			)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := common.ToJSON(res.Items)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}
			for _, it := range res.Items {
				fmt.Fprintln(out, it.Display())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file of scheduled recipes")
	cmd.Flags().StringVar(&weekArg, "week", "", "only include recipes planned in the week of this date")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func inWeek(recipes []grocery.ScheduledRecipe, w week.Window) []grocery.ScheduledRecipe {
	out := make([]grocery.ScheduledRecipe, 0, len(recipes))
	for _, r := range recipes {
		if w.Contains(r.PlanDate) {
			out = append(out, r)
		}
	}
	return out
}
