package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const scriptColumns = "id, topic_id, title, hook, voice_text, on_screen_text, storyboard_json, music_json, seo_json, voice_asset_ref, export_ref, style_preset, status, error_message, created_at, updated_at"

// NewScript inserts a draft script for a topic.
func (s *Store) NewScript(ctx context.Context, script *Script) (*Script, error) {
	if script == nil {
		return nil, errors.New("script is nil")
	}
	if script.TopicID == 0 {
		return nil, errors.New("script requires a topic id")
	}
	if script.Status == "" {
		script.Status = ScriptDraft
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scripts (
            topic_id, title, hook, voice_text, on_screen_text, storyboard_json,
            music_json, seo_json, voice_asset_ref, export_ref, style_preset,
            status, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		script.TopicID,
		nullableString(script.Title),
		nullableString(script.Hook),
		nullableString(script.VoiceText),
		nullableString(script.OnScreenText),
		nullableString(script.StoryboardJSON),
		nullableString(script.MusicJSON),
		nullableString(script.SEOJSON),
		nullableString(script.VoiceAssetRef),
		nullableString(script.ExportRef),
		nullableString(script.StylePreset),
		script.Status,
		nullableString(script.Error),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert script: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetScript(ctx, id)
}

// GetScript fetches a script by identifier. Returns nil when no script matches.
func (s *Store) GetScript(ctx context.Context, id int64) (*Script, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+scriptColumns+` FROM scripts WHERE id = ?`, id)
	script, err := scanScript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}
	return script, nil
}

// UpdateScript persists changes to an existing script.
func (s *Store) UpdateScript(ctx context.Context, script *Script) error {
	if script == nil {
		return errors.New("script is nil")
	}
	script.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE scripts
         SET topic_id = ?, title = ?, hook = ?, voice_text = ?, on_screen_text = ?,
             storyboard_json = ?, music_json = ?, seo_json = ?, voice_asset_ref = ?,
             export_ref = ?, style_preset = ?, status = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		script.TopicID,
		nullableString(script.Title),
		nullableString(script.Hook),
		nullableString(script.VoiceText),
		nullableString(script.OnScreenText),
		nullableString(script.StoryboardJSON),
		nullableString(script.MusicJSON),
		nullableString(script.SEOJSON),
		nullableString(script.VoiceAssetRef),
		nullableString(script.ExportRef),
		nullableString(script.StylePreset),
		script.Status,
		nullableString(script.Error),
		script.UpdatedAt.Format(time.RFC3339Nano),
		script.ID,
	)
	if err != nil {
		return fmt.Errorf("update script: %w", err)
	}
	return nil
}

// ListScripts returns all scripts ordered by creation time.
func (s *Store) ListScripts(ctx context.Context) ([]*Script, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scriptColumns+` FROM scripts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []*Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}
	return scripts, rows.Err()
}

// ScriptsWithVoiceText returns all scripts with non-empty voice text,
// excluding the given id. Used by the duplicate gate.
func (s *Store) ScriptsWithVoiceText(ctx context.Context, excludeID int64) ([]*Script, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+scriptColumns+` FROM scripts WHERE voice_text IS NOT NULL AND voice_text != '' AND id != ? ORDER BY id`,
		excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("scripts with voice text: %w", err)
	}
	defer rows.Close()

	var scripts []*Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}
	return scripts, rows.Err()
}

func scanScript(scanner interface{ Scan(dest ...any) error }) (*Script, error) {
	var (
		id            int64
		topicID       int64
		title         sql.NullString
		hook          sql.NullString
		voiceText     sql.NullString
		onScreenText  sql.NullString
		storyboard    sql.NullString
		music         sql.NullString
		seo           sql.NullString
		voiceAssetRef sql.NullString
		exportRef     sql.NullString
		stylePreset   sql.NullString
		statusStr     string
		errMessage    sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&topicID,
		&title,
		&hook,
		&voiceText,
		&onScreenText,
		&storyboard,
		&music,
		&seo,
		&voiceAssetRef,
		&exportRef,
		&stylePreset,
		&statusStr,
		&errMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	script := &Script{
		ID:             id,
		TopicID:        topicID,
		Title:          title.String,
		Hook:           hook.String,
		VoiceText:      voiceText.String,
		OnScreenText:   onScreenText.String,
		StoryboardJSON: storyboard.String,
		MusicJSON:      music.String,
		SEOJSON:        seo.String,
		VoiceAssetRef:  voiceAssetRef.String,
		ExportRef:      exportRef.String,
		StylePreset:    stylePreset.String,
		Status:         ScriptStatus(statusStr),
		Error:          errMessage.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		script.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		script.UpdatedAt = updated
	}
	return script, nil
}
