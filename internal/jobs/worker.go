package jobs

import (
	"context"
	"errors"
	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	"fixmycondo/infras/metrics"
	"fixmycondo/internal/jobs/cachesync"
	"fixmycondo/internal/jobs/slasweeper"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Worker runs the background jobs and exposes their metrics.
type Worker struct {
	Config    *config.Config
	Metrics   *metrics.Metrics
	Kafka     kafka.Client
	Sweeper   slasweeper.Sweeper
	CacheSync cachesync.Syncer
}

func New(cfg *config.Config, metrics *metrics.Metrics, kafka kafka.Client, sweeper slasweeper.Sweeper, cacheSync cachesync.Syncer) *Worker {
	return &Worker{
		Config:    cfg,
		Metrics:   metrics,
		Kafka:     kafka,
		Sweeper:   sweeper,
		CacheSync: cacheSync,
	}
}

// Handler serves the worker's metrics and liveness check.
func (w *Worker) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Get("/health", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", w.Metrics.Handler())

	return mux
}

// Run blocks until ctx is cancelled and every job has returned.
func (w *Worker) Run(ctx context.Context) {
	server := &http.Server{
		Addr:              net.JoinHostPort(w.Config.Server.Host, w.Config.Metrics.WorkerPort),
		Handler:           w.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(3)

	go func() {
		defer wg.Done()

		log.Info().Str("port", w.Config.Metrics.WorkerPort).Msg("Starting worker metrics server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Worker metrics server stopped")
		}
	}()

	go func() {
		defer wg.Done()

		w.Sweeper.Run(ctx)
	}()

	go func() {
		defer wg.Done()

		w.CacheSync.Run(ctx)
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down worker metrics server")
	}

	wg.Wait()

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka writers")
	}

	log.Info().Msg("Worker stopped.")
}
