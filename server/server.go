// Package server exposes the portfolio tracker over an HTTP JSON API, with
// a background task keeping cached prices warm.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	tracker "github.com/gwally9/investment-tracker"
)

// App owns the store, the price cache and the valuation engine for the
// lifetime of the server process.
type App struct {
	cfg    *Config
	store  *tracker.Store
	cache  *tracker.Cache
	engine *tracker.Engine
}

// New loads the position store and wires the quote provider, cache and
// engine according to cfg.
func New(cfg *Config) (*App, error) {
	store, err := tracker.LoadStore(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	var provider tracker.QuoteProvider
	switch cfg.QuoteProvider {
	case "", "yahoo":
		provider = tracker.NewYahoo()
	case "stooq":
		provider = tracker.NewStooq()
	default:
		return nil, fmt.Errorf("unknown quote provider %q", cfg.QuoteProvider)
	}

	cache := tracker.NewCache(provider)
	cache.TTL = cfg.QuoteTTL
	cache.FetchTimeout = cfg.FetchTimeout

	return &App{
		cfg:    cfg,
		store:  store,
		cache:  cache,
		engine: tracker.NewEngine(cache),
	}, nil
}

// Router builds the HTTP routes.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", a.getPortfolio)
		r.Post("/position", a.addPosition)
		r.Put("/position/{id}", a.editPosition)
		r.Delete("/position/{id}", a.deletePosition)
		r.Post("/refresh-prices", a.refreshPrices)
		r.Get("/export", a.exportCSV)
		r.Get("/stream", a.stream)
	})
	return r
}

// Start runs the server and the background price refresher until SIGINT or
// SIGTERM, then shuts down gracefully.
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.refreshLoop(ctx)

	addr := ":" + a.cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}

// refreshLoop keeps the cached prices of all held tickers warm so user
// requests rarely wait on the quote source. Each pass refreshes tickers
// concurrently, each fetch bounded by the cache timeout; the loop itself
// never blocks on a single slow ticker.
func (a *App) refreshLoop(ctx context.Context) {
	t := time.NewTicker(a.cfg.RefreshInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := a.cache.RefreshAll(ctx, a.store.Tickers()); err != nil {
				logger.WithError(err).Warn("background refresh left tickers unavailable")
			}
		}
	}
}
