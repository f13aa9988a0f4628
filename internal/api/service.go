package api

import (
	"context"

	"reelpipe/internal/store"
)

// Reader abstracts store reads needed for API queries.
type Reader interface {
	ListJobs(ctx context.Context, statuses ...store.JobStatus) ([]*store.Job, error)
	GetJob(ctx context.Context, id int64) (*store.Job, error)
	Stats(ctx context.Context) (store.JobStats, error)
	ListScripts(ctx context.Context) ([]*store.Script, error)
	GetScript(ctx context.Context, id int64) (*store.Script, error)
	ListTopics(ctx context.Context, categoryID string) ([]*store.Topic, error)
	GetTopic(ctx context.Context, id int64) (*store.Topic, error)
	ListSources(ctx context.Context, enabledOnly bool) ([]*store.Source, error)
	SourcesByCategory(ctx context.Context, categoryID string) ([]*store.Source, error)
	GetSource(ctx context.Context, id int64) (*store.Source, error)
}

// Writer abstracts the store mutations needed for job actions.
type Writer interface {
	NewJob(ctx context.Context, kind store.JobKind, payload store.Payload) (*store.Job, error)
	UpdateJob(ctx context.Context, job *store.Job) error
}

// Service exposes read operations and job actions returning API views.
type Service struct {
	reader Reader
	writer Writer
}

// NewService constructs a Service around the provided store accessors. The
// writer may be nil for read-only consumers.
func NewService(reader Reader, writer Writer) *Service {
	if reader == nil {
		return nil
	}
	return &Service{reader: reader, writer: writer}
}

// Jobs returns jobs filtered by status, newest first.
func (s *Service) Jobs(ctx context.Context, statuses ...store.JobStatus) ([]JobView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	jobs, err := s.reader.ListJobs(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	return SortJobsNewestFirst(FromJobs(jobs)), nil
}

// Describe fetches a single job.
func (s *Service) Describe(ctx context.Context, id int64) (*JobView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	job, err := s.reader.GetJob(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}
	view := FromJob(job)
	return &view, nil
}

// JobStats returns aggregate job counters.
func (s *Service) JobStats(ctx context.Context) (JobStatsResponse, error) {
	if s == nil || s.reader == nil {
		return JobStatsResponse{}, nil
	}
	stats, err := s.reader.Stats(ctx)
	if err != nil {
		return JobStatsResponse{}, err
	}
	return FromJobStats(stats), nil
}

// Scripts returns all scripts with artifact readiness flags.
func (s *Service) Scripts(ctx context.Context) ([]ScriptView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	scripts, err := s.reader.ListScripts(ctx)
	if err != nil {
		return nil, err
	}
	return FromScripts(scripts), nil
}

// Script fetches a single script.
func (s *Service) Script(ctx context.Context, id int64) (*ScriptView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	script, err := s.reader.GetScript(ctx, id)
	if err != nil || script == nil {
		return nil, err
	}
	view := FromScript(script)
	return &view, nil
}

// Topics returns topics, optionally filtered by category.
func (s *Service) Topics(ctx context.Context, categoryID string) ([]TopicView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	topics, err := s.reader.ListTopics(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return FromTopics(topics), nil
}

// Sources returns sources with their health snapshots.
func (s *Service) Sources(ctx context.Context, enabledOnly bool) ([]SourceView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	sources, err := s.reader.ListSources(ctx, enabledOnly)
	if err != nil {
		return nil, err
	}
	return FromSources(sources), nil
}

// SourcesInCategory returns the enabled sources tagged with a category.
func (s *Service) SourcesInCategory(ctx context.Context, categoryID string) ([]SourceView, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	sources, err := s.reader.SourcesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return FromSources(sources), nil
}

// Requeue creates a fresh job with the same kind and payload as the given
// job. The original record is left untouched.
func (s *Service) Requeue(ctx context.Context, id int64) (*JobView, error) {
	if s == nil || s.reader == nil || s.writer == nil {
		return nil, nil
	}
	job, err := s.reader.GetJob(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}
	created, err := s.writer.NewJob(ctx, job.Kind, job.Payload)
	if err != nil {
		return nil, err
	}
	view := FromJob(created)
	return &view, nil
}

// Cancel marks a queued job as errored so the worker never picks it up.
// It reports false when the job is not in a cancelable state.
func (s *Service) Cancel(ctx context.Context, id int64) (bool, error) {
	if s == nil || s.reader == nil || s.writer == nil {
		return false, nil
	}
	job, err := s.reader.GetJob(ctx, id)
	if err != nil || job == nil {
		return false, err
	}
	if job.Status != store.JobQueued {
		return false, nil
	}
	job.Status = store.JobError
	job.Error = "canceled by operator"
	if err := s.writer.UpdateJob(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}
