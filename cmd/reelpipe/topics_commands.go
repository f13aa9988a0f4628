package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

func newTopicsCommand(ctx *commandContext) *cobra.Command {
	var categoryID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List ingested topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				topics, err := svc.Topics(cmd.Context(), categoryID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, topics)
				}
				if len(topics) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No topics")
					return nil
				}
				rows := make([][]string, 0, len(topics))
				for _, topic := range topics {
					rows = append(rows, []string{
						strconv.FormatInt(topic.ID, 10),
						topic.Title,
						topic.CategoryID,
						fmt.Sprintf("%.1f", topic.Score),
						topic.Status,
						topic.ExtractionStatus,
					})
				}
				table := renderTable(
					[]string{"ID", "Title", "Category", "Score", "Status", "Extraction"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Filter by category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit topics as JSON")
	return cmd
}
