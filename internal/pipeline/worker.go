package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelpipe/internal/config"
	"reelpipe/internal/ingest"
	"reelpipe/internal/logging"
	"reelpipe/internal/notifications"
	"reelpipe/internal/providers"
	"reelpipe/internal/services"
	"reelpipe/internal/similarity"
	"reelpipe/internal/sourcehealth"
	"reelpipe/internal/store"
	"reelpipe/internal/trends"
)

// Worker is the single-concurrency job executor. One scheduler tick picks at
// most one queued job and runs it to completion before the next pickup, so
// handlers never race on shared entities.
type Worker struct {
	cfg       *config.Config
	store     *store.Store
	generator providers.Generator
	voice     providers.Voice
	notifier  notifications.Service
	logger    *slog.Logger

	checker  *similarity.Checker
	ingestor *ingest.Ingestor
	health   *sourcehealth.Monitor
	trends   *trends.Builder
	handlers map[store.JobKind]handlerFunc

	mu         sync.Mutex
	running    bool
	inFlight   bool
	retryUntil time.Time
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	processedSinceDrain int
	failedSinceDrain    int
}

type handlerFunc func(ctx context.Context, job *store.Job) error

// New builds a Worker wired to the given store and providers.
func New(cfg *config.Config, st *store.Store, generator providers.Generator, voice providers.Voice, notifier notifications.Service, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = logging.NewNop()
	}
	if voice == nil {
		voice = providers.UnavailableVoice{}
	}
	w := &Worker{
		cfg:       cfg,
		store:     st,
		generator: generator,
		voice:     voice,
		notifier:  notifier,
		logger:    logger.With(logging.String(logging.FieldComponent, "pipeline")),
		checker: &similarity.Checker{
			NGramSize:       cfg.Similarity.NGramSize,
			ScriptThreshold: cfg.Similarity.ScriptThreshold,
			TopicThreshold:  cfg.Similarity.TopicThreshold,
		},
		ingestor: ingest.New(st, logger),
		health:   sourcehealth.NewMonitor(st, cfg.Health, logger),
		trends: trends.NewBuilder(trends.Options{
			Threshold:      cfg.Trends.ClusterThreshold,
			MinClusterSize: cfg.Trends.MinClusterSize,
			MaxClusterSize: cfg.Trends.MaxClusterSize,
		}),
	}
	w.handlers = map[store.JobKind]handlerFunc{
		store.KindFetchTopics:        w.handleFetchTopics,
		store.KindExtractContent:     w.handleExtractContent,
		store.KindTranslateTopic:     w.handleTranslateTopic,
		store.KindGenerateHook:       w.handleGenerateHook,
		store.KindGenerateScript:     w.handleGenerateScript,
		store.KindGenerateStoryboard: w.handleGenerateStoryboard,
		store.KindGenerateVoice:      w.handleGenerateVoice,
		store.KindPickMusic:          w.handlePickMusic,
		store.KindExportPackage:      w.handleExportPackage,
		store.KindGenerateAll:        w.handleGenerateAll,
		store.KindHealthCheck:        w.handleHealthCheck,
		store.KindHealthCheckAll:     w.handleHealthCheckAll,
		store.KindAutoDiscovery:      w.handleAutoDiscovery,
		store.KindExtractTrends:      w.handleExtractTrends,
	}
	return w
}

// Enqueue creates a queued job. The job runs on a later scheduler tick.
func (w *Worker) Enqueue(ctx context.Context, kind store.JobKind, payload store.Payload) (*store.Job, error) {
	job, err := w.store.NewJob(ctx, kind, payload)
	if err != nil {
		return nil, err
	}
	w.logger.Info("job enqueued",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldJobKind, string(job.Kind)))
	return job, nil
}

// Start begins the scheduler loop. Jobs left in running state by a previous
// process are reset to queued before the first tick.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("pipeline already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	if reset, err := w.store.ResetStuckRunning(ctx); err != nil {
		w.logger.Warn("reset stuck jobs failed", logging.Error(err))
	} else if reset > 0 {
		w.logger.Info("requeued stuck jobs", logging.Int64("count", reset))
	}

	go w.run(runCtx)
	return nil
}

// Stop terminates the scheduler and waits for any in-flight job to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
}

// Busy reports whether a job is currently executing.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

func (w *Worker) tickInterval() time.Duration {
	seconds := w.cfg.Worker.TickInterval
	if seconds <= 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

func (w *Worker) errorRetryInterval() time.Duration {
	seconds := w.cfg.Worker.ErrorRetryInterval
	if seconds <= 0 {
		seconds = 5
	}
	return time.Duration(seconds) * time.Second
}

// deferPickup delays the next tick pickup by the error retry interval.
func (w *Worker) deferPickup() {
	w.mu.Lock()
	w.retryUntil = time.Now().Add(w.errorRetryInterval())
	w.mu.Unlock()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick claims the oldest queued job, if any, and runs it. The inFlight flag
// is the single-concurrency guarantee; the loop itself is single-goroutine
// but the flag also covers RunPending callers. After a failure the pickup is
// deferred until the error retry interval has passed.
func (w *Worker) tick(ctx context.Context) {
	w.mu.Lock()
	if w.inFlight || time.Now().Before(w.retryUntil) {
		w.mu.Unlock()
		return
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	queued, err := w.store.QueuedJobs(ctx)
	if err != nil {
		w.logger.Error("fetch queued jobs failed", logging.Error(err))
		w.deferPickup()
		return
	}
	if len(queued) == 0 {
		w.maybeNotifyDrained(ctx)
		return
	}

	w.processJob(ctx, queued[0])
}

// RunPending processes queued jobs until the queue is empty. Used by tests
// and one-shot CLI invocations; the daemon relies on the tick loop instead.
// An explicit drain works through the queue without the post-failure backoff.
func (w *Worker) RunPending(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.inFlight {
			w.mu.Unlock()
			return errors.New("pipeline busy")
		}
		w.inFlight = true
		w.mu.Unlock()

		queued, err := w.store.QueuedJobs(ctx)
		if err == nil && len(queued) > 0 {
			w.processJob(ctx, queued[0])
		}

		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()

		if err != nil {
			return err
		}
		if len(queued) == 0 {
			w.maybeNotifyDrained(ctx)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job *store.Job) {
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithJobKind(ctx, string(job.Kind))
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, w.logger)

	job.Status = store.JobRunning
	job.Progress = 0
	job.Error = ""
	if err := w.store.UpdateJob(ctx, job); err != nil {
		logger.Error("mark job running failed", logging.Error(err))
		return
	}
	logger.Info("job started")
	started := time.Now()

	handler, ok := w.handlers[job.Kind]
	if !ok {
		w.failJob(ctx, logger, job, fmt.Errorf("no handler for job kind %q", job.Kind))
		return
	}

	if err := handler(ctx, job); err != nil {
		w.failJob(ctx, logger, job, err)
		return
	}

	job.Status = store.JobDone
	job.Progress = 100
	if err := w.store.UpdateJob(ctx, job); err != nil {
		logger.Error("mark job done failed", logging.Error(err))
		return
	}
	w.mu.Lock()
	w.processedSinceDrain++
	w.mu.Unlock()
	logger.Info("job completed", logging.Duration("elapsed", time.Since(started)))
}

// failJob is the outer error boundary: the job is marked errored and, when
// the payload references a script, the script mirrors the same error so the
// failure is visible on the entity, not just the queue.
func (w *Worker) failJob(ctx context.Context, logger *slog.Logger, job *store.Job, jobErr error) {
	message := jobErr.Error()
	job.Status = store.JobError
	job.Error = message
	if err := w.store.UpdateJob(ctx, job); err != nil {
		logger.Error("mark job errored failed", logging.Error(err))
	}

	if scriptID, ok := job.Payload.ScriptID(); ok {
		script, err := w.store.GetScript(ctx, scriptID)
		if err != nil {
			logger.Warn("load script for error mirror failed", logging.Error(err))
		} else if script != nil {
			script.SetFailed(message)
			if err := w.store.UpdateScript(ctx, script); err != nil {
				logger.Warn("mirror error onto script failed", logging.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.failedSinceDrain++
	w.retryUntil = time.Now().Add(w.errorRetryInterval())
	w.mu.Unlock()

	logger.Error("job failed", logging.Error(jobErr))
	if err := w.notifier.NotifyJobFailed(ctx, string(job.Kind), job.ID, message); err != nil {
		logger.Warn("job failure notification failed", logging.Error(err))
	}
}

// setProgress persists an advisory progress checkpoint. Values never move
// backwards within a job.
func (w *Worker) setProgress(ctx context.Context, job *store.Job, progress int) {
	if progress <= job.Progress {
		return
	}
	if progress > 100 {
		progress = 100
	}
	job.Progress = progress
	if err := w.store.UpdateJob(ctx, job); err != nil {
		w.logger.Warn("persist progress failed",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.Error(err))
	}
}

func (w *Worker) maybeNotifyDrained(ctx context.Context) {
	w.mu.Lock()
	processed, failed := w.processedSinceDrain, w.failedSinceDrain
	w.processedSinceDrain = 0
	w.failedSinceDrain = 0
	w.mu.Unlock()

	if processed == 0 && failed == 0 {
		return
	}
	if err := w.notifier.NotifyQueueDrained(ctx, processed, failed); err != nil {
		w.logger.Warn("queue drained notification failed", logging.Error(err))
	}
}
