package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const topicColumns = "id, title, translated_title, url, raw_text, full_content, insights_json, extraction_status, language, score, status, category_id, source_id, content_hash, created_at, updated_at"

// NewTopic inserts a freshly ingested topic.
func (s *Store) NewTopic(ctx context.Context, topic *Topic) (*Topic, error) {
	if topic == nil {
		return nil, errors.New("topic is nil")
	}
	if topic.Status == "" {
		topic.Status = TopicNew
	}
	if topic.ExtractionStatus == "" {
		topic.ExtractionStatus = ExtractionPending
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO topics (
            title, translated_title, url, raw_text, full_content, insights_json,
            extraction_status, language, score, status, category_id, source_id,
            content_hash, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		topic.Title,
		nullableString(topic.TranslatedTitle),
		nullableString(topic.URL),
		nullableString(topic.RawText),
		nullableString(topic.FullContent),
		nullableString(topic.InsightsJSON),
		topic.ExtractionStatus,
		nullableString(topic.Language),
		topic.Score,
		topic.Status,
		nullableString(topic.CategoryID),
		topic.SourceID,
		nullableString(topic.ContentHash),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetTopic(ctx, id)
}

// GetTopic fetches a topic by identifier. Returns nil when no topic matches.
func (s *Store) GetTopic(ctx context.Context, id int64) (*Topic, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = ?`, id)
	topic, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return topic, nil
}

// UpdateTopic persists changes to an existing topic.
func (s *Store) UpdateTopic(ctx context.Context, topic *Topic) error {
	if topic == nil {
		return errors.New("topic is nil")
	}
	topic.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE topics
         SET title = ?, translated_title = ?, url = ?, raw_text = ?, full_content = ?,
             insights_json = ?, extraction_status = ?, language = ?, score = ?, status = ?,
             category_id = ?, source_id = ?, content_hash = ?, updated_at = ?
         WHERE id = ?`,
		topic.Title,
		nullableString(topic.TranslatedTitle),
		nullableString(topic.URL),
		nullableString(topic.RawText),
		nullableString(topic.FullContent),
		nullableString(topic.InsightsJSON),
		topic.ExtractionStatus,
		nullableString(topic.Language),
		topic.Score,
		topic.Status,
		nullableString(topic.CategoryID),
		topic.SourceID,
		nullableString(topic.ContentHash),
		topic.UpdatedAt.Format(time.RFC3339Nano),
		topic.ID,
	)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// ListTopics returns topics, optionally filtered by category, ordered by
// descending score then creation time.
func (s *Store) ListTopics(ctx context.Context, categoryID string) ([]*Topic, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if categoryID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+topicColumns+` FROM topics ORDER BY score DESC, id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT `+topicColumns+` FROM topics WHERE category_id = ? ORDER BY score DESC, id`, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []*Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// TopicExistsByHash reports whether a topic with the given content hash has
// already been ingested.
func (s *Store) TopicExistsByHash(ctx context.Context, hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM topics WHERE content_hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("topic hash lookup: %w", err)
	}
	return count > 0, nil
}

func scanTopic(scanner interface{ Scan(dest ...any) error }) (*Topic, error) {
	var (
		id              int64
		title           string
		translatedTitle sql.NullString
		url             sql.NullString
		rawText         sql.NullString
		fullContent     sql.NullString
		insights        sql.NullString
		extractionStr   string
		language        sql.NullString
		score           float64
		statusStr       string
		categoryID      sql.NullString
		sourceID        sql.NullInt64
		contentHash     sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&title,
		&translatedTitle,
		&url,
		&rawText,
		&fullContent,
		&insights,
		&extractionStr,
		&language,
		&score,
		&statusStr,
		&categoryID,
		&sourceID,
		&contentHash,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	topic := &Topic{
		ID:               id,
		Title:            title,
		TranslatedTitle:  translatedTitle.String,
		URL:              url.String,
		RawText:          rawText.String,
		FullContent:      fullContent.String,
		InsightsJSON:     insights.String,
		ExtractionStatus: ExtractionStatus(extractionStr),
		Language:         language.String,
		Score:            score,
		Status:           TopicStatus(statusStr),
		CategoryID:       categoryID.String,
		SourceID:         sourceID.Int64,
		ContentHash:      contentHash.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		topic.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		topic.UpdatedAt = updated
	}
	return topic, nil
}
