package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cartquote/internal/app"
	"cartquote/internal/config"
	"cartquote/internal/logx"
	"cartquote/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		boot := logx.New(logx.Options{Service: "cartquote"})
		boot.Fatal().Err(err).Msg("config")
	}
	log := logx.New(logx.Options{Service: "cartquote", Level: cfg.Server.LogLevel, Format: cfg.Server.LogFormat})
	log = log.With().Str("env", cfg.Server.Env).Logger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a := app.New(cfg, log, metrics.New(reg))
	log.Info().Strs("providers", a.Aggregator.Providers()).Msg("providers.configured")

	requestTimeout := config.Timeout(cfg.Server.RequestTimeoutSec, 20*time.Second)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(log, a.Checkout, reg, requestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func newRouter(log zerolog.Logger, svc quoter, gatherer prometheus.Gatherer, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID(log), accessLog, recoverPanic, withCORS(), limitBody)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	// promhttp negotiates its own compression
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(withGzip, withJSONHeaders, withTimeout(requestTimeout))
		r.Post("/cart", handleCart(svc))
	})
	return r
}
