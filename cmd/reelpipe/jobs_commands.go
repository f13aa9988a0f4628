package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and manage pipeline jobs",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	jobsCmd.AddCommand(newJobsRequeueCommand(ctx))
	jobsCmd.AddCommand(newJobsCancelCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipeline jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				statuses := make([]store.JobStatus, 0, len(listStatuses))
				for _, status := range listStatuses {
					statuses = append(statuses, store.JobStatus(status))
				}
				jobs, err := svc.Jobs(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, jobs)
				}
				if len(jobs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No jobs")
					return nil
				}
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						strconv.FormatInt(job.ID, 10),
						job.Kind,
						api.JobTargetLabel(job),
						job.Status,
						fmt.Sprintf("%d%%", job.Progress),
						job.CreatedAt,
					})
				}
				table := renderTable(
					[]string{"ID", "Kind", "Target", "Status", "Progress", "Created"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by job status (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit jobs as JSON")
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				job, err := svc.Describe(cmd.Context(), id)
				if err != nil {
					return err
				}
				if job == nil {
					return fmt.Errorf("job %d not found", id)
				}
				return writeJSON(cmd, job)
			})
		},
	}
}

func newJobsRequeueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requeue <id> [id...]",
		Short: "Requeue failed jobs as fresh queue entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				result, err := api.RequeueFailedJobsByID(cmd.Context(), svc, ids)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, item := range result.Jobs {
					switch item.Outcome {
					case api.RequeueDone:
						fmt.Fprintf(out, "Job %d requeued as job %d\n", item.ID, item.NewJobID)
					case api.RequeueNotFound:
						fmt.Fprintf(out, "Job %d not found\n", item.ID)
					default:
						fmt.Fprintf(out, "Job %d is not in a failed state\n", item.ID)
					}
				}
				fmt.Fprintf(out, "Requeued %d job(s)\n", result.RequeuedCount)
				return nil
			})
		},
	}
}

func newJobsCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id> [id...]",
		Short: "Cancel jobs still waiting in the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withService(func(cfg *config.Config, st *store.Store, svc *api.Service) error {
				result, err := api.CancelQueuedJobsByID(cmd.Context(), svc, ids)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, item := range result.Jobs {
					switch item.Outcome {
					case api.CancelDone:
						fmt.Fprintf(out, "Job %d canceled\n", item.ID)
					case api.CancelNotFound:
						fmt.Fprintf(out, "Job %d not found\n", item.ID)
					default:
						fmt.Fprintf(out, "Job %d is %s, not queued\n", item.ID, item.PriorStatus)
					}
				}
				fmt.Fprintf(out, "Canceled %d job(s)\n", result.CanceledCount)
				return nil
			})
		},
	}
}

func newEnqueueCommand(ctx *commandContext) *cobra.Command {
	var scriptID, topicID, sourceID int64
	var categoryID string

	cmd := &cobra.Command{
		Use:   "enqueue <kind>",
		Short: "Add a job to the pipeline queue",
		Long:  "Add a job to the pipeline queue. The running daemon picks it up on its next tick; use `reelpipe run` to process the queue in the foreground.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := store.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown job kind %q", args[0])
			}
			payload := buildPayload(scriptID, topicID, sourceID, categoryID)
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				job, err := st.NewJob(cmd.Context(), kind, payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enqueued %s as job %d\n", kind, job.ID)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&scriptID, "script", 0, "Script ID for script-scoped kinds")
	cmd.Flags().Int64Var(&topicID, "topic", 0, "Topic ID for topic-scoped kinds")
	cmd.Flags().Int64Var(&sourceID, "source", 0, "Source ID for health checks")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category for trend extraction")
	return cmd
}

func buildPayload(scriptID, topicID, sourceID int64, categoryID string) store.Payload {
	switch {
	case scriptID > 0:
		return store.ScriptPayload(scriptID)
	case topicID > 0:
		return store.TopicPayload(topicID)
	case sourceID > 0:
		return store.SourcePayload(sourceID)
	case categoryID != "":
		return store.CategoryPayload(categoryID)
	default:
		return nil
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one id is required")
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
