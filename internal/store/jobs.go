package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const jobColumns = "id, kind, payload_json, status, progress, error_message, created_at, updated_at"

// NewJob inserts a job in the queued state with zero progress.
func (s *Store) NewJob(ctx context.Context, kind JobKind, payload Payload) (*Job, error) {
	if _, ok := kindSet[kind]; !ok {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}

	var payloadJSON any
	if len(payload) > 0 {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		payloadJSON = string(data)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (kind, payload_json, status, progress, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		kind,
		payloadJSON,
		JobQueued,
		0,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetJob(ctx, id)
}

// GetJob fetches a job by identifier. Returns nil when no job matches.
func (s *Store) GetJob(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// UpdateJob persists changes to an existing job.
func (s *Store) UpdateJob(ctx context.Context, job *Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	job.UpdatedAt = time.Now().UTC()

	var payloadJSON any
	if len(job.Payload) > 0 {
		data, err := json.Marshal(job.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		payloadJSON = string(data)
	}

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET kind = ?, payload_json = ?, status = ?, progress = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		job.Kind,
		payloadJSON,
		job.Status,
		job.Progress,
		nullableString(job.Error),
		job.UpdatedAt.Format(time.RFC3339Nano),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// QueuedJobs returns all queued jobs ordered by creation time ascending.
func (s *Store) QueuedJobs(ctx context.Context) ([]*Job, error) {
	return s.ListJobs(ctx, JobQueued)
}

// ListJobs returns jobs filtered by status set (or all jobs when no status is
// provided), ordered by creation time.
func (s *Store) ListJobs(ctx context.Context, statuses ...JobStatus) ([]*Job, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY created_at, id`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns a count of jobs grouped by status.
func (s *Store) Stats(ctx context.Context) (JobStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return JobStats{}, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := JobStats{}
	for rows.Next() {
		var status JobStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return JobStats{}, err
		}
		stats.Total += count
		switch status {
		case JobQueued:
			stats.Queued += count
		case JobRunning:
			stats.Running += count
		case JobDone:
			stats.Done += count
		case JobError:
			stats.Errored += count
		}
	}
	return stats, rows.Err()
}

// ResetStuckRunning returns jobs left in the running state (e.g. after an
// unclean shutdown) back to queued so the worker can pick them up again.
func (s *Store) ResetStuckRunning(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs SET status = ?, progress = 0, updated_at = ? WHERE status = ?`,
		JobQueued,
		time.Now().UTC().Format(time.RFC3339Nano),
		JobRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id         int64
		kindStr    string
		payloadRaw sql.NullString
		statusStr  string
		progress   int
		errMessage sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&kindStr,
		&payloadRaw,
		&statusStr,
		&progress,
		&errMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:       id,
		Kind:     JobKind(kindStr),
		Status:   JobStatus(statusStr),
		Progress: progress,
		Error:    errMessage.String,
	}
	if payloadRaw.Valid && payloadRaw.String != "" {
		payload := Payload{}
		if err := json.Unmarshal([]byte(payloadRaw.String), &payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
		job.Payload = payload
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}
