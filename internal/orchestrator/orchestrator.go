// Package orchestrator sequences the site adapters of one aggregation
// run, feeds their output into the event store and produces run
// statistics.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"agendaveiro/internal/config"
	"agendaveiro/internal/metrics"
	"agendaveiro/internal/models/domain"
	"agendaveiro/internal/scraper/sites"
	"agendaveiro/internal/utils/logger/sl"

	"github.com/google/uuid"
)

// Store is the event-store surface a run needs: the upsert adapters
// write through, plus stats and snapshot export.
type Store interface {
	sites.Store
	Stats(ctx context.Context) (domain.StoreStats, error)
	ExportSnapshot(ctx context.Context) (string, error)
}

// RunSummary reports the outcome of one run per adapter, so partial
// failures are visible without reading the logs.
type RunSummary struct {
	RunID             string
	AdaptersSucceeded int
	AdaptersFailed    int
	TotalEvents       int
	SnapshotPath      string
	Results           []AdapterResult
}

type AdapterResult struct {
	Name   string
	Events int
	Err    error
}

// Orchestrator runs the configured adapters strictly sequentially against
// one shared fetcher session and one store handle.
type Orchestrator struct {
	logger   *slog.Logger
	cfg      *config.Config
	fetcher  sites.Fetcher
	store    Store
	adapters map[string]sites.ScrapeFunc
}

func New(
	logger *slog.Logger,
	cfg *config.Config,
	fetcher sites.Fetcher,
	store Store,
	adapters map[string]sites.ScrapeFunc,
) *Orchestrator {
	op := "orchestrator.New()"
	log := logger.With(
		slog.String("op", op),
	)

	log.Info("creating orchestrator", slog.Int("adapters", len(adapters)))

	return &Orchestrator{
		logger:   logger,
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		adapters: adapters,
	}
}

// Run executes every configured site adapter in order. Each adapter's
// failure, including a panic, is contained at this boundary: it is
// counted and the run continues. The snapshot export is always attempted,
// even when every adapter failed; its error is the only one Run returns.
func (o *Orchestrator) Run(ctx context.Context) (RunSummary, error) {
	op := "orchestrator.Run()"

	runID := uuid.New().String()
	log := o.logger.With(
		slog.String("op", op),
		slog.String("runID", runID),
	)

	log.Info("starting aggregation run", slog.Int("sites", len(o.cfg.ScraperConfig.Sites)))

	if stats, err := o.store.Stats(ctx); err != nil {
		log.Warn("cannot read initial store stats", sl.Err(err))
	} else {
		log.Info("store before run",
			slog.Int("totalEvents", stats.TotalEvents),
			slog.Int("futureEvents", stats.FutureEvents),
		)
	}

	summary := RunSummary{RunID: runID}

	for _, site := range o.cfg.ScraperConfig.Sites {
		sitelog := log.With(slog.String("site", site.Name))

		scrapeFunc, exists := o.adapters[site.Name]
		if !exists {
			sitelog.Error("no adapter registered for site")
			summary.AdaptersFailed++
			summary.Results = append(summary.Results, AdapterResult{
				Name: site.Name,
				Err:  fmt.Errorf("no adapter registered for %q", site.Name),
			})
			metrics.AdapterRuns.WithLabelValues(site.Name, "failed").Inc()
			continue
		}

		sitelog.Info("running adapter", slog.String("url", site.URL))

		count, err := o.runAdapter(ctx, scrapeFunc, site)
		summary.Results = append(summary.Results, AdapterResult{
			Name:   site.Name,
			Events: count,
			Err:    err,
		})
		summary.TotalEvents += count

		if err != nil {
			summary.AdaptersFailed++
			metrics.AdapterRuns.WithLabelValues(site.Name, "failed").Inc()
			sitelog.Error("adapter failed", sl.Err(err))
			continue
		}

		summary.AdaptersSucceeded++
		metrics.AdapterRuns.WithLabelValues(site.Name, "succeeded").Inc()
		sitelog.Info("adapter finished", slog.Int("eventsCount", count))
	}

	snapshotPath, exportErr := o.store.ExportSnapshot(ctx)
	if exportErr != nil {
		log.Error("snapshot export failed", sl.Err(exportErr))
		exportErr = fmt.Errorf("%s: %w", op, exportErr)
	} else {
		summary.SnapshotPath = snapshotPath
	}

	if stats, err := o.store.Stats(ctx); err != nil {
		log.Warn("cannot read final store stats", sl.Err(err))
	} else {
		metrics.StoreEvents.Set(float64(stats.TotalEvents))
		metrics.StoreFutureEvents.Set(float64(stats.FutureEvents))
		log.Info("store after run",
			slog.Int("totalEvents", stats.TotalEvents),
			slog.Int("futureEvents", stats.FutureEvents),
			slog.Any("bySource", stats.BySource),
		)
	}

	log.Info("aggregation run finished",
		slog.Int("adaptersSucceeded", summary.AdaptersSucceeded),
		slog.Int("adaptersFailed", summary.AdaptersFailed),
		slog.Int("totalEvents", summary.TotalEvents),
	)

	return summary, exportErr
}

// runAdapter invokes one adapter with panic containment.
func (o *Orchestrator) runAdapter(ctx context.Context, scrapeFunc sites.ScrapeFunc, site config.SiteConfig) (count int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("adapter %q panicked: %v", site.Name, rec)
		}
	}()

	return scrapeFunc(ctx, o.logger, o.fetcher, o.store, site.URL)
}
