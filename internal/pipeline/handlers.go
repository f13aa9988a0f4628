package pipeline

import (
	"context"
	"fmt"
	"strings"

	"reelpipe/internal/logging"
	"reelpipe/internal/providers"
	"reelpipe/internal/services"
	"reelpipe/internal/similarity"
	"reelpipe/internal/store"
)

func (w *Worker) loadScript(ctx context.Context, job *store.Job) (*store.Script, error) {
	scriptID, ok := job.Payload.ScriptID()
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "pipeline", string(job.Kind), "payload missing scriptId", nil)
	}
	script, err := w.store.GetScript(ctx, scriptID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", string(job.Kind), "load script", err)
	}
	if script == nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", string(job.Kind),
			fmt.Sprintf("script %d not found", scriptID), nil)
	}
	return script, nil
}

func (w *Worker) loadTopic(ctx context.Context, job *store.Job, topicID int64) (*store.Topic, error) {
	topic, err := w.store.GetTopic(ctx, topicID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", string(job.Kind), "load topic", err)
	}
	if topic == nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", string(job.Kind),
			fmt.Sprintf("topic %d not found", topicID), nil)
	}
	return topic, nil
}

func (w *Worker) loadTopicFromPayload(ctx context.Context, job *store.Job) (*store.Topic, error) {
	topicID, ok := job.Payload.TopicID()
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "pipeline", string(job.Kind), "payload missing topicId", nil)
	}
	return w.loadTopic(ctx, job, topicID)
}

// loadScriptAndTopic resolves the script from the payload and its backing
// topic. Jobs that generate content need both.
func (w *Worker) loadScriptAndTopic(ctx context.Context, job *store.Job) (*store.Script, *store.Topic, error) {
	script, err := w.loadScript(ctx, job)
	if err != nil {
		return nil, nil, err
	}
	topic, err := w.loadTopic(ctx, job, script.TopicID)
	if err != nil {
		return nil, nil, err
	}
	return script, topic, nil
}

func (w *Worker) markGenerating(ctx context.Context, script *store.Script) error {
	script.Status = store.ScriptGenerating
	script.Error = ""
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "mark_generating", "persist script", err)
	}
	return nil
}

func (w *Worker) saveScript(ctx context.Context, script *store.Script, status store.ScriptStatus) error {
	script.Status = status
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "save_script", "persist script", err)
	}
	return nil
}

func (w *Worker) handleFetchTopics(ctx context.Context, job *store.Job) error {
	w.setProgress(ctx, job, 10)
	report, err := w.ingestor.FetchTopics(ctx)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	logging.WithContext(ctx, w.logger).Info("topics fetched",
		logging.Int("created", report.Created),
		logging.Int("duplicates", report.Duplicates),
		logging.Bool("seeded", report.Seeded))
	return nil
}

func (w *Worker) handleExtractContent(ctx context.Context, job *store.Job) error {
	topic, err := w.loadTopicFromPayload(ctx, job)
	if err != nil {
		return err
	}

	topic.ExtractionStatus = store.ExtractionExtracting
	if err := w.store.UpdateTopic(ctx, topic); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "extract_content", "persist topic", err)
	}
	w.setProgress(ctx, job, 20)

	extracted, err := w.generator.ExtractContent(ctx, topic.URL, topic.RawText)
	if err != nil {
		topic.ExtractionStatus = store.ExtractionFailed
		if updateErr := w.store.UpdateTopic(ctx, topic); updateErr != nil {
			logging.WithContext(ctx, w.logger).Warn("persist extraction failure", logging.Error(updateErr))
		}
		return err
	}
	w.setProgress(ctx, job, 80)

	topic.FullContent = extracted.FullContent
	topic.InsightsJSON = extracted.Insights
	topic.ExtractionStatus = store.ExtractionDone
	if err := w.store.UpdateTopic(ctx, topic); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "extract_content", "persist topic", err)
	}
	return nil
}

func (w *Worker) handleTranslateTopic(ctx context.Context, job *store.Job) error {
	topic, err := w.loadTopicFromPayload(ctx, job)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 20)

	translated, err := w.generator.TranslateTitle(ctx, topic.Title, topic.Language)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 80)

	topic.TranslatedTitle = translated
	if err := w.store.UpdateTopic(ctx, topic); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "translate_topic", "persist topic", err)
	}
	return nil
}

func (w *Worker) handleGenerateHook(ctx context.Context, job *store.Job) error {
	script, topic, err := w.loadScriptAndTopic(ctx, job)
	if err != nil {
		return err
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 20)

	if err := w.generateHookStep(ctx, script, topic); err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	return w.saveScript(ctx, script, store.ScriptDraft)
}

func (w *Worker) generateHookStep(ctx context.Context, script *store.Script, topic *store.Topic) error {
	hook, err := w.generator.GenerateHook(ctx, providers.HookRequest{
		Title:       topic.Title,
		CategoryID:  topic.CategoryID,
		FullContent: topic.FullContent,
		Insights:    topic.InsightsJSON,
	})
	if err != nil {
		return err
	}
	script.Hook = hook
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "generate_hook", "persist script", err)
	}
	return nil
}

func (w *Worker) handleGenerateScript(ctx context.Context, job *store.Job) error {
	script, topic, err := w.loadScriptAndTopic(ctx, job)
	if err != nil {
		return err
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 10)

	if err := w.generateScriptStep(ctx, job, script, topic); err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	return w.saveScript(ctx, script, store.ScriptDraft)
}

// generateScriptStep produces the script body and runs the similarity gate
// before persisting anything. A duplicate is a hard failure.
func (w *Worker) generateScriptStep(ctx context.Context, job *store.Job, script *store.Script, topic *store.Topic) error {
	result, err := w.generator.GenerateScript(ctx, providers.ScriptRequest{
		Title:       topic.Title,
		Hook:        script.Hook,
		CategoryID:  topic.CategoryID,
		FullContent: topic.FullContent,
		Insights:    topic.InsightsJSON,
		Language:    topic.Language,
	})
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 50)

	voiceText := ExtractVoiceLines(result.Body)
	candidate := voiceText
	if candidate == "" {
		candidate = result.Body
	}

	existing, err := w.store.ScriptsWithVoiceText(ctx, script.ID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "generate_script", "load existing scripts", err)
	}
	documents := make([]similarity.Document, 0, len(existing))
	for _, other := range existing {
		documents = append(documents, similarity.Document{
			ID:    other.ID,
			Title: other.Title,
			Text:  other.VoiceText,
		})
	}
	check := w.checker.CheckScript(candidate, documents)
	if !check.Passed {
		return services.Wrap(services.ErrSimilarityRejected, "pipeline", "generate_script", check.Reject(), nil)
	}
	w.setProgress(ctx, job, 70)

	script.VoiceText = voiceText
	script.OnScreenText = result.Body
	if script.Title == "" && result.Title != "" {
		script.Title = result.Title
	}
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "generate_script", "persist script", err)
	}
	return nil
}

func (w *Worker) handleGenerateStoryboard(ctx context.Context, job *store.Job) error {
	script, err := w.loadScript(ctx, job)
	if err != nil {
		return err
	}
	if strings.TrimSpace(script.VoiceText) == "" {
		return services.Wrap(services.ErrValidation, "pipeline", "generate_storyboard", "script has no voice text", nil)
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 20)

	if err := w.generateStoryboardStep(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	return w.saveScript(ctx, script, store.ScriptDraft)
}

func (w *Worker) generateStoryboardStep(ctx context.Context, script *store.Script) error {
	document, err := w.generator.GenerateStoryboard(ctx, script.VoiceText)
	if err != nil {
		return err
	}
	script.StoryboardJSON = document
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "generate_storyboard", "persist script", err)
	}
	return nil
}

// handleGenerateVoice synthesizes a voiceover asset. A missing voice
// provider is a soft skip, not a failure.
func (w *Worker) handleGenerateVoice(ctx context.Context, job *store.Job) error {
	script, err := w.loadScript(ctx, job)
	if err != nil {
		return err
	}

	if !w.cfg.Voice.Enabled || !w.voice.Available() {
		logging.WithContext(ctx, w.logger).Info("voice provider unavailable, skipping synthesis",
			logging.Int64(logging.FieldScriptID, script.ID))
		w.setProgress(ctx, job, 90)
		return nil
	}
	if strings.TrimSpace(script.VoiceText) == "" {
		return services.Wrap(services.ErrValidation, "pipeline", "generate_voice", "script has no voice text", nil)
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 30)

	preset := script.StylePreset
	if preset == "" {
		preset = w.cfg.Voice.StylePreset
	}
	ref, err := w.voice.Synthesize(ctx, script.VoiceText, preset)
	if err != nil {
		return services.Wrap(services.ErrProvider, "pipeline", "generate_voice", "synthesis failed", err)
	}
	w.setProgress(ctx, job, 90)

	script.VoiceAssetRef = ref
	return w.saveScript(ctx, script, store.ScriptDraft)
}

func (w *Worker) handlePickMusic(ctx context.Context, job *store.Job) error {
	script, err := w.loadScript(ctx, job)
	if err != nil {
		return err
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 20)

	if err := w.pickMusicStep(ctx, script); err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	return w.saveScript(ctx, script, store.ScriptDraft)
}

func (w *Worker) pickMusicStep(ctx context.Context, script *store.Script) error {
	category := ""
	if topic, err := w.store.GetTopic(ctx, script.TopicID); err == nil && topic != nil {
		category = topic.CategoryID
	}
	document, err := w.generator.PickMusic(ctx, script.Title, category)
	if err != nil {
		return err
	}
	script.MusicJSON = document
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "pick_music", "persist script", err)
	}
	return nil
}

func (w *Worker) generateSEOStep(ctx context.Context, script *store.Script) error {
	document, err := w.generator.GenerateSEO(ctx, script.Title, script.OnScreenText)
	if err != nil {
		return err
	}
	script.SEOJSON = document
	if err := w.store.UpdateScript(ctx, script); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "generate_seo", "persist script", err)
	}
	return nil
}

// handleExportPackage marks the script exported and records a download
// reference. Actual asset packaging happens outside the pipeline.
func (w *Worker) handleExportPackage(ctx context.Context, job *store.Job) error {
	script, err := w.loadScript(ctx, job)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 50)

	script.ExportRef = fmt.Sprintf("exports/script-%d.json", script.ID)
	return w.saveScript(ctx, script, store.ScriptExported)
}

// handleGenerateAll runs the full generation chain, skipping any step whose
// output already exists so a rerun after partial failure resumes instead of
// regenerating.
func (w *Worker) handleGenerateAll(ctx context.Context, job *store.Job) error {
	script, topic, err := w.loadScriptAndTopic(ctx, job)
	if err != nil {
		return err
	}
	if err := w.markGenerating(ctx, script); err != nil {
		return err
	}

	if script.Hook == "" {
		if err := w.generateHookStep(ctx, script, topic); err != nil {
			return err
		}
	}
	w.setProgress(ctx, job, 15)

	if script.VoiceText == "" && script.OnScreenText == "" {
		if err := w.generateScriptStep(ctx, job, script, topic); err != nil {
			return err
		}
	}
	w.setProgress(ctx, job, 45)

	if script.StoryboardJSON == "" {
		if script.VoiceText == "" {
			return services.Wrap(services.ErrValidation, "pipeline", "generate_all", "no voice text for storyboard", nil)
		}
		if err := w.generateStoryboardStep(ctx, script); err != nil {
			return err
		}
	}
	w.setProgress(ctx, job, 65)

	if script.MusicJSON == "" {
		if err := w.pickMusicStep(ctx, script); err != nil {
			return err
		}
	}
	w.setProgress(ctx, job, 80)

	if script.SEOJSON == "" {
		if err := w.generateSEOStep(ctx, script); err != nil {
			return err
		}
	}
	w.setProgress(ctx, job, 95)

	if err := w.saveScript(ctx, script, store.ScriptReady); err != nil {
		return err
	}
	if err := w.notifier.NotifyScriptReady(ctx, script.Title); err != nil {
		logging.WithContext(ctx, w.logger).Warn("script ready notification failed", logging.Error(err))
	}
	return nil
}

func (w *Worker) handleHealthCheck(ctx context.Context, job *store.Job) error {
	sourceID, ok := job.Payload.SourceID()
	if !ok {
		return services.Wrap(services.ErrValidation, "pipeline", "health_check", "payload missing sourceId", nil)
	}
	w.setProgress(ctx, job, 20)

	source, err := w.health.CheckSource(ctx, sourceID)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)

	logger := logging.WithContext(ctx, w.logger)
	if source.HealthStatus == store.HealthDead {
		if err := w.notifier.NotifySourceDead(ctx, source.Name, source.ConsecutiveFailures); err != nil {
			logger.Warn("source dead notification failed", logging.Error(err))
		}
	}
	if !source.IsEnabled {
		if err := w.notifier.NotifySourceDisabled(ctx, source.Name); err != nil {
			logger.Warn("source disabled notification failed", logging.Error(err))
		}
	}
	return nil
}

func (w *Worker) handleHealthCheckAll(ctx context.Context, job *store.Job) error {
	w.setProgress(ctx, job, 10)
	report, err := w.health.CheckAll(ctx)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 90)
	logging.WithContext(ctx, w.logger).Info("health check batch finished",
		logging.Int("checked", report.Checked),
		logging.Int("skipped", report.Skipped),
		logging.Int("dead", report.Dead))
	return nil
}

func (w *Worker) handleAutoDiscovery(ctx context.Context, job *store.Job) error {
	categoryID, _ := job.Payload.CategoryID()
	if categoryID == "" {
		categoryID = "general"
	}
	w.setProgress(ctx, job, 10)

	discovered, err := w.generator.DiscoverSources(ctx, categoryID)
	if err != nil {
		return err
	}
	w.setProgress(ctx, job, 50)

	existing, err := w.store.ListSources(ctx, false)
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "auto_discovery", "list sources", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, source := range existing {
		known[source.URL] = struct{}{}
	}

	created := 0
	for _, candidate := range discovered {
		if _, dup := known[candidate.URL]; dup {
			continue
		}
		sourceType := store.SourceRSS
		if candidate.Type == string(store.SourceAtom) {
			sourceType = store.SourceAtom
		}
		if _, err := w.store.NewSource(ctx, &store.Source{
			Name:       candidate.Name,
			Type:       sourceType,
			URL:        candidate.URL,
			CategoryID: categoryID,
			IsEnabled:  true,
		}); err != nil {
			logging.WithContext(ctx, w.logger).Warn("store discovered source failed", logging.Error(err))
			continue
		}
		known[candidate.URL] = struct{}{}
		created++
	}
	w.setProgress(ctx, job, 90)
	logging.WithContext(ctx, w.logger).Info("auto discovery finished",
		logging.String("category", categoryID),
		logging.Int("suggested", len(discovered)),
		logging.Int("created", created))
	return nil
}

func (w *Worker) handleExtractTrends(ctx context.Context, job *store.Job) error {
	categoryID, _ := job.Payload.CategoryID()
	w.setProgress(ctx, job, 20)

	topics, err := w.store.ListTopics(ctx, categoryID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "extract_trends", "list topics", err)
	}

	var clusters int
	if categoryID != "" {
		clusters = len(w.trends.BuildForCategory(topics, categoryID))
	} else {
		clusters = len(w.trends.BuildAll(topics))
	}
	w.setProgress(ctx, job, 90)

	logging.WithContext(ctx, w.logger).Info("trend extraction finished",
		logging.String("category", categoryID),
		logging.Int("topics", len(topics)),
		logging.Int("clusters", clusters))
	return nil
}
