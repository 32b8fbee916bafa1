package main

import (
	"fmt"
	"time"

	"github.com/chris/gohan/internal/meals"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <user-id>",
		Short: "Print a user's recent meals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.meals.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("no meals recorded")
				return nil
			}
			fmt.Println(meals.FormatHistory(list, displayLocation(a.cfg.MealQuestion.Timezone), time.Now()))
			return nil
		},
	}
	cmd.Flags().Int("limit", meals.HistoryLimit, "Number of meals to show")
	return cmd
}

func newNutritionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nutrition <user-id>",
		Short: "Print the nutrition summary for a user's last 7 days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			answer, err := a.meals.Nutrition(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", meals.NutritionFailureMessage(err), err)
			}
			fmt.Println(answer)
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired tracked prompts once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.store.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d expired tracked prompt(s)\n", n)
			return nil
		},
	}
}
