package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sourceColumns = "id, name, type, url, category_id, is_enabled, priority, health_status, consecutive_failures, avg_latency_ms, last_check_at, last_item_count, freshness_hours, health_detail, created_at, updated_at"

// NewSource inserts a source definition with pending health.
func (s *Store) NewSource(ctx context.Context, source *Source) (*Source, error) {
	if source == nil {
		return nil, errors.New("source is nil")
	}
	if source.Name == "" {
		return nil, errors.New("source requires a name")
	}
	if source.Type == "" {
		source.Type = SourceRSS
	}
	if source.HealthStatus == "" {
		source.HealthStatus = HealthPending
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sources (
            name, type, url, category_id, is_enabled, priority, health_status,
            consecutive_failures, avg_latency_ms, last_check_at, last_item_count,
            freshness_hours, health_detail, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		source.Name,
		source.Type,
		nullableString(source.URL),
		nullableString(source.CategoryID),
		boolToInt(source.IsEnabled),
		source.Priority,
		source.HealthStatus,
		source.ConsecutiveFailures,
		source.AvgLatencyMS,
		nullableTime(source.LastCheckAt),
		source.LastItemCount,
		source.FreshnessHours,
		nullableString(source.HealthDetail),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert source: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetSource(ctx, id)
}

// GetSource fetches a source by identifier. Returns nil when no source matches.
func (s *Store) GetSource(ctx context.Context, id int64) (*Source, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE id = ?`, id)
	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return source, nil
}

// UpdateSource persists changes to an existing source.
func (s *Store) UpdateSource(ctx context.Context, source *Source) error {
	if source == nil {
		return errors.New("source is nil")
	}
	source.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE sources
         SET name = ?, type = ?, url = ?, category_id = ?, is_enabled = ?, priority = ?,
             health_status = ?, consecutive_failures = ?, avg_latency_ms = ?, last_check_at = ?,
             last_item_count = ?, freshness_hours = ?, health_detail = ?, updated_at = ?
         WHERE id = ?`,
		source.Name,
		source.Type,
		nullableString(source.URL),
		nullableString(source.CategoryID),
		boolToInt(source.IsEnabled),
		source.Priority,
		source.HealthStatus,
		source.ConsecutiveFailures,
		source.AvgLatencyMS,
		nullableTime(source.LastCheckAt),
		source.LastItemCount,
		source.FreshnessHours,
		nullableString(source.HealthDetail),
		source.UpdatedAt.Format(time.RFC3339Nano),
		source.ID,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	return nil
}

// ListSources returns sources ordered by priority descending then name.
// When enabledOnly is set, disabled sources are filtered out.
func (s *Store) ListSources(ctx context.Context, enabledOnly bool) ([]*Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources`
	if enabledOnly {
		query += ` WHERE is_enabled = 1`
	}
	query += ` ORDER BY priority DESC, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// SourcesByCategory returns enabled sources belonging to a category.
func (s *Store) SourcesByCategory(ctx context.Context, categoryID string) ([]*Source, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE is_enabled = 1 AND category_id = ? ORDER BY priority DESC, name`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("sources by category: %w", err)
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

func scanSource(scanner interface{ Scan(dest ...any) error }) (*Source, error) {
	var (
		id             int64
		name           string
		typeStr        string
		url            sql.NullString
		categoryID     sql.NullString
		isEnabled      sql.NullInt64
		priority       int
		healthStr      string
		failures       int
		avgLatency     float64
		lastCheckRaw   sql.NullString
		lastItemCount  int
		freshnessHours float64
		healthDetail   sql.NullString
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&typeStr,
		&url,
		&categoryID,
		&isEnabled,
		&priority,
		&healthStr,
		&failures,
		&avgLatency,
		&lastCheckRaw,
		&lastItemCount,
		&freshnessHours,
		&healthDetail,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	source := &Source{
		ID:                  id,
		Name:                name,
		Type:                SourceType(typeStr),
		URL:                 url.String,
		CategoryID:          categoryID.String,
		IsEnabled:           isEnabled.Valid && isEnabled.Int64 != 0,
		Priority:            priority,
		HealthStatus:        HealthStatus(healthStr),
		ConsecutiveFailures: failures,
		AvgLatencyMS:        avgLatency,
		LastItemCount:       lastItemCount,
		FreshnessHours:      freshnessHours,
		HealthDetail:        healthDetail.String,
	}
	if lastCheckRaw.Valid {
		if lastCheck, err := parseTimeString(lastCheckRaw.String); err == nil {
			source.LastCheckAt = &lastCheck
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		source.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		source.UpdatedAt = updated
	}
	return source, nil
}
