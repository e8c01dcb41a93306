package main

import (
	"fmt"

	"grocery-planner/internal/core/week"

	"github.com/spf13/cobra"
)

func newWeekCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the Monday to Sunday window for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := now()
			if date != "" {
				t, err := week.ParseReference(date)
				if err != nil {
					return err
				}
				ref = t
			}

			w := week.ComputeWeek(ref)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, w.String())
			fmt.Fprintf(out, "previous: %s\nnext:     %s\n", w.Previous().StartISO, w.Next().StartISO)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	return cmd
}
