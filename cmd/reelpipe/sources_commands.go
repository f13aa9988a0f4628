package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/logging"
	"reelpipe/internal/sourcehealth"
	"reelpipe/internal/store"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect and manage content sources",
	}

	sourcesCmd.AddCommand(newSourcesListCommand(ctx))
	sourcesCmd.AddCommand(newSourcesAddCommand(ctx))
	sourcesCmd.AddCommand(newSourcesCheckCommand(ctx))
	sourcesCmd.AddCommand(newSourcesHealthCommand(ctx))

	return sourcesCmd
}

func newSourcesListCommand(ctx *commandContext) *cobra.Command {
	var includeDisabled bool
	var asJSON bool
	var categoryID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				var sources []api.SourceView
				var err error
				if categoryID != "" {
					sources, err = svc.SourcesInCategory(cmd.Context(), categoryID)
				} else {
					sources, err = svc.Sources(cmd.Context(), !includeDisabled)
				}
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, sources)
				}
				if len(sources) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sources")
					return nil
				}
				rows := make([][]string, 0, len(sources))
				for _, source := range sources {
					rows = append(rows, []string{
						strconv.FormatInt(source.ID, 10),
						source.Name,
						source.Type,
						source.CategoryID,
						yesNo(source.Enabled),
						api.SourceHealthSummary(source),
					})
				}
				table := renderTable(
					[]string{"ID", "Name", "Type", "Category", "Enabled", "Health"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&includeDisabled, "all", "a", false, "Include disabled sources")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit sources as JSON")
	cmd.Flags().StringVar(&categoryID, "category", "", "Only enabled sources in this category")
	return cmd
}

func newSourcesAddCommand(ctx *commandContext) *cobra.Command {
	var sourceType, categoryID string
	var priority int

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a content source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedType := store.SourceType(strings.ToLower(strings.TrimSpace(sourceType)))
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				source, err := st.NewSource(cmd.Context(), &store.Source{
					Name:       strings.TrimSpace(args[0]),
					URL:        strings.TrimSpace(args[1]),
					Type:       parsedType,
					CategoryID: strings.TrimSpace(categoryID),
					Priority:   priority,
					IsEnabled:  true,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added source %d (%s)\n", source.ID, source.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sourceType, "type", "t", "rss", "Source type (rss, atom, html, youtube, reddit, manual)")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category tag")
	cmd.Flags().IntVar(&priority, "priority", 0, "Polling priority")
	return cmd
}

func newSourcesCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [id]",
		Short: "Probe sources and update their health state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return err
				}
				monitor := sourcehealth.NewMonitor(st, cfg.Health, logger)
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					id, err := parseID(args[0])
					if err != nil {
						return err
					}
					source, err := monitor.CheckSource(cmd.Context(), id)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, renderStatusLine(source.Name,
						healthStatusKind(string(source.HealthStatus)),
						source.HealthDetail, shouldColorize(out)))
					return nil
				}

				report, err := monitor.CheckAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Checked %d source(s), skipped %d: %d healthy, %d warning, %d dead\n",
					report.Checked, report.Skipped, report.Healthy, report.Warning, report.Dead)
				return nil
			})
		},
	}
}

func newSourcesHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show per-source health details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				sources, err := svc.Sources(cmd.Context(), false)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(sources) == 0 {
					fmt.Fprintln(out, "No sources")
					return nil
				}
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Source Health", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, source := range sources {
					detail := api.SourceHealthSummary(source)
					if source.HealthDetail != "" {
						detail += " - " + source.HealthDetail
					}
					fmt.Fprintln(out, renderStatusLine(source.Name, healthStatusKind(source.HealthStatus), detail, colorize))
				}
				return nil
			})
		},
	}
}
