package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process all queued jobs in the foreground",
		Long:  "Drain the job queue once without starting the daemon. Jobs run one at a time in FIFO order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				worker, err := ctx.buildWorker(cfg, st)
				if err != nil {
					return err
				}
				before, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if before.Queued == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				if err := worker.RunPending(cmd.Context()); err != nil {
					return err
				}
				after, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Processed %d job(s), %d done, %d errored\n",
					before.Queued, after.Done-before.Done, after.Errored-before.Errored)
				return nil
			})
		},
	}
}
