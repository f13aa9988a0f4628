package sourcehealth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"reelpipe/internal/config"
	"reelpipe/internal/logging"
	"reelpipe/internal/services"
	"reelpipe/internal/store"
)

// Monitor owns the per-source health state machine. Health fields on Source
// are mutated only here.
type Monitor struct {
	store  *store.Store
	prober *Prober
	cfg    config.Health
	logger *slog.Logger
	now    func() time.Time
}

// Report aggregates one batch pass over the enabled sources.
type Report struct {
	Checked int
	Skipped int
	Healthy int
	Warning int
	Dead    int
}

// CategoryStats summarizes source health within one category.
type CategoryStats struct {
	CategoryID string
	Total      int
	Healthy    int
	Warning    int
	Dead       int
	Pending    int
	Disabled   int
}

// NewMonitor builds a Monitor against the given store and health settings.
func NewMonitor(st *store.Store, cfg config.Health, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Monitor{
		store:  st,
		prober: NewProber(time.Duration(cfg.ProbeTimeout) * time.Second),
		cfg:    cfg,
		logger: logger.With(logging.String(logging.FieldComponent, "sourcehealth")),
		now:    time.Now,
	}
}

// CheckSource probes one source and persists the resulting health transition.
// Non-networkable sources are skipped; a pending one flips to ok.
func (m *Monitor) CheckSource(ctx context.Context, sourceID int64) (*store.Source, error) {
	source, err := m.store.GetSource(ctx, sourceID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sourcehealth", "check", "load source", err)
	}
	if source == nil {
		return nil, services.Wrap(services.ErrNotFound, "sourcehealth", "check",
			fmt.Sprintf("source %d not found", sourceID), nil)
	}

	if !source.Type.IsNetworkable() {
		if source.HealthStatus == store.HealthPending {
			source.HealthStatus = store.HealthOK
			source.HealthDetail = "non-networkable source, assumed healthy"
			now := m.now().UTC()
			source.LastCheckAt = &now
			if err := m.store.UpdateSource(ctx, source); err != nil {
				return nil, services.Wrap(services.ErrTransient, "sourcehealth", "check", "persist source", err)
			}
		}
		return source, nil
	}

	result := m.prober.Probe(ctx, source.URL)
	m.applyResult(source, result)

	if err := m.store.UpdateSource(ctx, source); err != nil {
		return nil, services.Wrap(services.ErrTransient, "sourcehealth", "check", "persist source", err)
	}

	m.logger.Info("source checked",
		logging.Int64(logging.FieldSourceID, source.ID),
		logging.String("status", string(source.HealthStatus)),
		logging.Int("failures", source.ConsecutiveFailures),
		logging.Float64("latency_ms", result.LatencyMS),
		logging.String("detail", source.HealthDetail))
	return source, nil
}

// applyResult mutates source per the status transition rule. Latency keeps a
// two-point running average, not a windowed one.
func (m *Monitor) applyResult(source *store.Source, result ProbeResult) {
	now := m.now().UTC()
	source.LastCheckAt = &now

	if source.AvgLatencyMS <= 0 {
		source.AvgLatencyMS = result.LatencyMS
	} else {
		source.AvgLatencyMS = (source.AvgLatencyMS + result.LatencyMS) / 2
	}

	if !result.OK {
		source.ConsecutiveFailures++
		source.HealthDetail = result.Detail
		switch {
		case source.ConsecutiveFailures >= m.cfg.DeadFailures:
			source.HealthStatus = store.HealthDead
		case source.ConsecutiveFailures >= m.cfg.WarningFailures:
			source.HealthStatus = store.HealthWarning
		default:
			source.HealthStatus = store.HealthPending
		}
		if source.ConsecutiveFailures >= m.cfg.AutoDisableFailures && source.IsEnabled {
			source.IsEnabled = false
			m.logger.Warn("source auto-disabled after repeated failures",
				logging.Int64(logging.FieldSourceID, source.ID),
				logging.Int("failures", source.ConsecutiveFailures))
		}
		return
	}

	source.ConsecutiveFailures = 0
	source.LastItemCount = result.ItemCount
	source.FreshnessHours = result.FreshnessHours
	switch {
	case result.FreshnessHours > m.cfg.StaleHours:
		source.HealthStatus = store.HealthWarning
		source.HealthDetail = fmt.Sprintf("stale feed: newest item %.1fh old", result.FreshnessHours)
	case source.AvgLatencyMS > m.cfg.LatencyWarningMS:
		source.HealthStatus = store.HealthWarning
		source.HealthDetail = fmt.Sprintf("slow feed: %.0fms average latency", source.AvgLatencyMS)
	default:
		source.HealthStatus = store.HealthOK
		source.HealthDetail = fmt.Sprintf("%d items", result.ItemCount)
	}
}

// CheckAll probes every enabled source sequentially with a small delay
// between probes. Sequential on purpose so feed servers see one request at
// a time from us.
func (m *Monitor) CheckAll(ctx context.Context) (Report, error) {
	sources, err := m.store.ListSources(ctx, true)
	if err != nil {
		return Report{}, services.Wrap(services.ErrTransient, "sourcehealth", "check_all", "list sources", err)
	}

	var report Report
	delay := time.Duration(m.cfg.BatchDelayMS) * time.Millisecond

	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !source.Type.IsNetworkable() {
			report.Skipped++
			if source.HealthStatus == store.HealthPending {
				if _, err := m.CheckSource(ctx, source.ID); err != nil {
					m.logger.Warn("skip transition failed", logging.Int64(logging.FieldSourceID, source.ID), logging.Error(err))
				}
			}
			continue
		}

		checked, err := m.CheckSource(ctx, source.ID)
		if err != nil {
			m.logger.Warn("source check failed", logging.Int64(logging.FieldSourceID, source.ID), logging.Error(err))
			continue
		}
		report.Checked++
		switch checked.HealthStatus {
		case store.HealthOK:
			report.Healthy++
		case store.HealthWarning:
			report.Warning++
		case store.HealthDead:
			report.Dead++
		}

		if delay > 0 && i < len(sources)-1 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	m.logger.Info("batch health check complete",
		logging.Int("checked", report.Checked),
		logging.Int("skipped", report.Skipped),
		logging.Int("healthy", report.Healthy),
		logging.Int("warning", report.Warning),
		logging.Int("dead", report.Dead))
	return report, nil
}

// SourcesNeedingAttention returns enabled sources currently in warning or
// dead state, plus any source with at least one recorded failure.
func (m *Monitor) SourcesNeedingAttention(ctx context.Context) ([]*store.Source, error) {
	sources, err := m.store.ListSources(ctx, true)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sourcehealth", "attention", "list sources", err)
	}

	var needy []*store.Source
	for _, source := range sources {
		if source.HealthStatus == store.HealthWarning || source.HealthStatus == store.HealthDead || source.ConsecutiveFailures > 0 {
			needy = append(needy, source)
		}
	}
	return needy, nil
}

// CategoryHealthStats aggregates source health per category, including
// disabled sources so auto-disable casualties stay visible.
func (m *Monitor) CategoryHealthStats(ctx context.Context) (map[string]CategoryStats, error) {
	sources, err := m.store.ListSources(ctx, false)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sourcehealth", "stats", "list sources", err)
	}

	stats := make(map[string]CategoryStats)
	for _, source := range sources {
		entry := stats[source.CategoryID]
		entry.CategoryID = source.CategoryID
		entry.Total++
		if !source.IsEnabled {
			entry.Disabled++
		}
		switch source.HealthStatus {
		case store.HealthOK:
			entry.Healthy++
		case store.HealthWarning:
			entry.Warning++
		case store.HealthDead:
			entry.Dead++
		default:
			entry.Pending++
		}
		stats[source.CategoryID] = entry
	}
	return stats, nil
}
