package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/service"
)

// ImportWorker periodically synchronizes the catalog from the legacy
// storefront API.
type ImportWorker struct {
	importService *service.ImportService
	interval      time.Duration
}

// NewImportWorker constructs an ImportWorker.
func NewImportWorker(importService *service.ImportService, interval time.Duration) *ImportWorker {
	return &ImportWorker{
		importService: importService,
		interval:      interval,
	}
}

// Start begins the periodic import loop and listens for context cancellation.
func (w *ImportWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting import worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Import worker stopped")
			return
		}
	}
}

func (w *ImportWorker) run(ctx context.Context) {
	log.Info().Msg("Importing catalog from legacy API...")

	start := time.Now()
	if _, err := w.importService.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to import catalog")
		return
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Catalog import completed")
}
