package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/services"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("failed to run server")
	}
}

func run(log *logrus.Logger) error {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogrusLevel())

	log.WithFields(logrus.Fields{
		"spanner_db": cfg.SpannerDB,
		"http_port":  cfg.HTTPPort,
		"catalog":    cfg.CatalogBaseURL,
	}).Info("starting storefront service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer serviceOpts.Close()

	// 3. Build the route table with middleware applied
	handler := httptransport.NewRouter(serviceOpts.Handlers, log)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler,
	}

	// 4. Start HTTP server in background
	go func() {
		log.WithField("port", cfg.HTTPPort).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server error")
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
