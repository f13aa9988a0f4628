package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

func newScriptsCommand(ctx *commandContext) *cobra.Command {
	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "Inspect generated scripts",
	}

	scriptsCmd.AddCommand(newScriptsListCommand(ctx))
	scriptsCmd.AddCommand(newScriptsShowCommand(ctx))

	return scriptsCmd
}

func newScriptsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scripts with artifact readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				scripts, err := svc.Scripts(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, scripts)
				}
				if len(scripts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No scripts")
					return nil
				}
				rows := make([][]string, 0, len(scripts))
				for _, script := range scripts {
					rows = append(rows, []string{
						strconv.FormatInt(script.ID, 10),
						script.Title,
						script.Status,
						api.ScriptArtifactSummary(script),
						script.ErrorMessage,
					})
				}
				table := renderTable(
					[]string{"ID", "Title", "Status", "Artifacts", "Error"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit scripts as JSON")
	return cmd
}

func newScriptsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single script with its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				script, err := svc.Script(cmd.Context(), id)
				if err != nil {
					return err
				}
				if script == nil {
					return fmt.Errorf("script %d not found", id)
				}
				return writeJSON(cmd, script)
			})
		},
	}
}
