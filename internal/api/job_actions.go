package api

import (
	"context"

	"reelpipe/internal/store"
)

// JobActionService captures job operations needed by per-job requeue/cancel workflows.
type JobActionService interface {
	Describe(ctx context.Context, id int64) (*JobView, error)
	Requeue(ctx context.Context, id int64) (*JobView, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type RequeueOutcome string

const (
	RequeueDone      RequeueOutcome = "requeued"
	RequeueNotFound  RequeueOutcome = "not_found"
	RequeueNotFailed RequeueOutcome = "not_failed"
)

type RequeueResult struct {
	ID       int64          `json:"id"`
	Outcome  RequeueOutcome `json:"outcome"`
	NewJobID int64          `json:"newJobId,omitempty"`
}

type RequeueJobsResult struct {
	RequeuedCount int             `json:"requeuedCount"`
	Jobs          []RequeueResult `json:"jobs"`
}

type CancelOutcome string

const (
	CancelDone      CancelOutcome = "canceled"
	CancelNotFound  CancelOutcome = "not_found"
	CancelNotQueued CancelOutcome = "not_queued"
)

type CancelResult struct {
	ID          int64         `json:"id"`
	Outcome     CancelOutcome `json:"outcome"`
	PriorStatus string        `json:"priorStatus,omitempty"`
}

type CancelJobsResult struct {
	CanceledCount int            `json:"canceledCount"`
	Jobs          []CancelResult `json:"jobs"`
}

// RequeueFailedJobsByID validates IDs and requeues only errored jobs. Each
// requeue creates a fresh job; the failed record stays for history.
func RequeueFailedJobsByID(ctx context.Context, service JobActionService, ids []int64) (RequeueJobsResult, error) {
	result := RequeueJobsResult{Jobs: make([]RequeueResult, 0, len(ids))}
	for _, id := range ids {
		job, err := service.Describe(ctx, id)
		if err != nil {
			return RequeueJobsResult{}, err
		}
		if job == nil {
			result.Jobs = append(result.Jobs, RequeueResult{ID: id, Outcome: RequeueNotFound})
			continue
		}
		if job.Status != string(store.JobError) {
			result.Jobs = append(result.Jobs, RequeueResult{ID: id, Outcome: RequeueNotFailed})
			continue
		}
		created, err := service.Requeue(ctx, id)
		if err != nil {
			return RequeueJobsResult{}, err
		}
		if created == nil {
			result.Jobs = append(result.Jobs, RequeueResult{ID: id, Outcome: RequeueNotFound})
			continue
		}
		result.RequeuedCount++
		result.Jobs = append(result.Jobs, RequeueResult{ID: id, Outcome: RequeueDone, NewJobID: created.ID})
	}
	return result, nil
}

// CancelQueuedJobsByID validates IDs and cancels jobs still waiting in the queue.
func CancelQueuedJobsByID(ctx context.Context, service JobActionService, ids []int64) (CancelJobsResult, error) {
	result := CancelJobsResult{Jobs: make([]CancelResult, 0, len(ids))}
	for _, id := range ids {
		job, err := service.Describe(ctx, id)
		if err != nil {
			return CancelJobsResult{}, err
		}
		if job == nil {
			result.Jobs = append(result.Jobs, CancelResult{ID: id, Outcome: CancelNotFound})
			continue
		}
		if job.Status != string(store.JobQueued) {
			result.Jobs = append(result.Jobs, CancelResult{ID: id, Outcome: CancelNotQueued, PriorStatus: job.Status})
			continue
		}
		canceled, err := service.Cancel(ctx, id)
		if err != nil {
			return CancelJobsResult{}, err
		}
		if !canceled {
			result.Jobs = append(result.Jobs, CancelResult{ID: id, Outcome: CancelNotQueued, PriorStatus: job.Status})
			continue
		}
		result.CanceledCount++
		result.Jobs = append(result.Jobs, CancelResult{ID: id, Outcome: CancelDone, PriorStatus: job.Status})
	}
	return result, nil
}
