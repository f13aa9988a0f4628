package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/store"
	"reelpipe/internal/trends"
)

func newTrendsCommand(ctx *commandContext) *cobra.Command {
	var categoryID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Cluster topics into trend groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				topics, err := st.ListTopics(cmd.Context(), categoryID)
				if err != nil {
					return err
				}
				builder := trends.NewBuilder(trends.Options{
					Threshold:      cfg.Trends.ClusterThreshold,
					MinClusterSize: cfg.Trends.MinClusterSize,
					MaxClusterSize: cfg.Trends.MaxClusterSize,
				})
				var clusters []trends.TrendTopic
				if categoryID != "" {
					clusters = builder.BuildForCategory(topics, categoryID)
				} else {
					clusters = builder.BuildAll(topics)
				}
				views := api.FromTrends(clusters)
				if asJSON {
					return writeJSON(cmd, views)
				}
				if len(views) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No trends detected")
					return nil
				}
				rows := make([][]string, 0, len(views))
				for _, trend := range views {
					rows = append(rows, []string{
						trend.ID,
						trend.CategoryID,
						trend.SeedTitle,
						strconv.Itoa(trend.Size),
						fmt.Sprintf("%.1f", trend.Score),
						trend.PacingHint,
						strings.Join(trend.Keywords, " "),
					})
				}
				table := renderTable(
					[]string{"Trend", "Category", "Seed Title", "Size", "Score", "Pacing", "Keywords"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Cluster a single category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit trends as JSON")
	return cmd
}
