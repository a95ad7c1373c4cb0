package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vgsales/internal/api"
	"vgsales/internal/config"
	"vgsales/internal/engine"
	"vgsales/internal/logging"
	"vgsales/internal/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New("vgsales", cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// The API is live immediately and answers 503 until the data is loaded.
	h := api.NewHandler(nil)
	e := api.NewServer(h, api.Options{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPS: cfg.RateLimitRPS,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	go func() {
		logger.Infof("BACKGROUND: Loading %s", cfg.DataFile)
		t0 := time.Now()

		ds, err := engine.Load(cfg.DataFile, engine.TrimOptions{
			PublisherThreshold: cfg.PublisherThreshold,
			PlatformThreshold:  cfg.PlatformThreshold,
		})
		if err != nil {
			logger.Fatalf("BACKGROUND: %v", err)
		}
		m.LoadedRows.Set(float64(ds.Cleaned.Len()))
		m.DroppedRows.Set(float64(ds.Dropped))
		m.LoadSeconds.Set(time.Since(t0).Seconds())

		h.SetService(engine.NewService(ds, engine.NewCache(m), engine.Options{
			Series: engine.SeriesOptions{WrapAround: cfg.SeriesWrapAround},
			TopK:   cfg.TopK,
		}))
		logger.Infof("BACKGROUND: Load complete in %v. API is fully ready.", time.Since(t0))
	}()

	go func() {
		logger.Infof("Server ready on %s (data loading in background...)", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(err)
	}
}
