package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"reelpipe/internal/config"
	"reelpipe/internal/logging"
	"reelpipe/internal/notifications"
	"reelpipe/internal/pipeline"
	"reelpipe/internal/store"
)

// Daemon coordinates the background pipeline and enforces single-instance
// execution through a lock file.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	worker *pipeline.Worker

	lockPath string
	lock     *flock.Flock
	logPath  string

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Processing   bool
	Jobs         store.JobStats
	DatabasePath string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, worker *pipeline.Worker, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || worker == nil {
		return nil, errors.New("daemon requires config, store, and worker")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.LogDir(), "reelpiped.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger.With(logging.String(logging.FieldComponent, "daemon")),
		store:    st,
		worker:   worker,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		logPath:  filepath.Join(cfg.LogDir(), "reelpipe.log"),
	}, nil
}

// Start acquires the daemon lock and launches the pipeline worker.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another reelpipe daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.worker.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start pipeline: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.worker.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock failed", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and releases the store.
func (d *Daemon) Close() error {
	d.Stop()
	return d.store.Close()
}

// Status returns the current daemon status snapshot.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	stats, err := d.store.Stats(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("job stats: %w", err)
	}
	return Status{
		Running:      d.running.Load(),
		Processing:   d.worker.Busy(),
		Jobs:         stats,
		DatabasePath: filepath.Join(d.cfg.DataDir(), "reelpipe.db"),
		LockFilePath: d.lockPath,
	}, nil
}

// Enqueue submits a job through the running pipeline.
func (d *Daemon) Enqueue(ctx context.Context, kind store.JobKind, payload store.Payload) (*store.Job, error) {
	return d.worker.Enqueue(ctx, kind, payload)
}

// TestNotification sends a test push notification with the current config.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	notifier := notifications.NewService(d.cfg)
	if err := notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}
