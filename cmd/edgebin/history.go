package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/ledger/postgres"
	"github.com/alfredjeanlab/edgebin/internal/model"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "List recorded conversion runs",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("history requires EDGEBIN_DATABASE_URL or database_url in the config file")
		}

		filter, err := runFilter(cmd)
		if err != nil {
			return err
		}

		store, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		if id, _ := cmd.Flags().GetString("id"); id != "" {
			run, err := store.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), run)
			} else {
				printRunTable(cmd.OutOrStdout(), run)
			}
			return nil
		}

		runs, err := store.ListRuns(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), runs)
		} else {
			printRunList(cmd.OutOrStdout(), runs)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("id", "", "show a single run")
	historyCmd.Flags().String("input", "", "only runs for this input path")
	historyCmd.Flags().StringSlice("status", nil, "only runs with these statuses (succeeded, failed)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs")
}

func runFilter(cmd *cobra.Command) (model.RunFilter, error) {
	input, _ := cmd.Flags().GetString("input")
	statuses, _ := cmd.Flags().GetStringSlice("status")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := model.RunFilter{Input: input, Limit: limit}
	for _, s := range statuses {
		st := model.RunStatus(s)
		if !st.IsValid() {
			return model.RunFilter{}, fmt.Errorf("unknown status %q (must be succeeded or failed)", s)
		}
		filter.Status = append(filter.Status, st)
	}
	return filter, nil
}
