package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/service"
)

// ReportWorker periodically rebuilds the cached sales reports.
type ReportWorker struct {
	dashboardService *service.DashboardService
	interval         time.Duration
}

// NewReportWorker constructs a ReportWorker.
func NewReportWorker(dashboardService *service.DashboardService, interval time.Duration) *ReportWorker {
	return &ReportWorker{
		dashboardService: dashboardService,
		interval:         interval,
	}
}

// Start begins the periodic rebuild loop and listens for context cancellation.
func (w *ReportWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting report worker")

	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Report worker stopped")
			return
		}
	}
}

func (w *ReportWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.dashboardService.Warm(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild sales reports")
		return
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Sales reports rebuilt")
}
