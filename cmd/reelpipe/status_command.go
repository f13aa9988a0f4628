package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				stats, err := svc.JobStats(cmd.Context())
				if err != nil {
					return err
				}
				lockPath := filepath.Join(cfg.LogDir(), "reelpiped.lock")
				running := daemonLockHeld(lockPath)

				if asJSON {
					return writeJSON(cmd, api.DaemonStatusView{
						Running:      running,
						Jobs:         stats,
						DatabasePath: st.Path(),
						LockFilePath: lockPath,
					})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Reelpipe Status", colorize) {
					fmt.Fprintln(out, line)
				}
				daemonKind := statusWarn
				daemonMsg := "not running"
				if running {
					daemonKind = statusOK
					daemonMsg = "running"
				}
				fmt.Fprintln(out, renderStatusLine("Daemon", daemonKind, daemonMsg, colorize))
				fmt.Fprintln(out, renderStatusLine("Database", statusInfo, st.Path(), colorize))

				jobsKind := statusOK
				if stats.Errored > 0 {
					jobsKind = statusWarn
				}
				summary := fmt.Sprintf("%d total, %d queued, %d running, %d done, %d errored",
					stats.Total, stats.Queued, stats.Running, stats.Done, stats.Errored)
				fmt.Fprintln(out, renderStatusLine("Jobs", jobsKind, summary, colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON")
	return cmd
}

// daemonLockHeld reports whether another process holds the daemon lock file.
func daemonLockHeld(path string) bool {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return false
	}
	if ok {
		_ = lock.Unlock()
		return false
	}
	return true
}
