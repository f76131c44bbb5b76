package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/auth"
	"github.com/ukydev/fleet-reports/internal/config"
	"github.com/ukydev/fleet-reports/internal/fleet"
	"github.com/ukydev/fleet-reports/internal/handlers"
	"github.com/ukydev/fleet-reports/internal/metrics"
	"github.com/ukydev/fleet-reports/internal/middleware"
	"github.com/ukydev/fleet-reports/internal/notify"
	"github.com/ukydev/fleet-reports/internal/remote"
	"github.com/ukydev/fleet-reports/internal/reports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	setupLogging(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func setupLogging(level, format string) {
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// app holds the wired components of the service.
type app struct {
	fleet     *fleet.Cache
	service   *reports.Service
	publisher notify.Publisher
	handler   http.Handler
}

func newApp(cfg config.Config, publisher notify.Publisher) *app {
	metrics.RegisterDefault()

	vendor := remote.New(cfg.VendorBaseURL, cfg.VendorToken, remote.WithRateLimit(cfg.VendorRateLimit))
	datamart := remote.New(cfg.VendorDatamartURL, cfg.VendorToken, remote.WithRateLimit(cfg.VendorRateLimit))

	cache := fleet.NewCache(vendor)
	service := reports.NewService(vendor, datamart, cache, cfg.Location, reports.WithPublisher(publisher))

	mux := http.NewServeMux()
	handlers.NewReportHandler(service).Register(mux)
	mux.HandleFunc("GET /health", handlers.Health(cache))
	mux.Handle("GET /metrics", metrics.Handler())

	authMiddleware := middleware.NewAuthMiddleware(auth.NewService(cfg.DashboardToken))
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies)

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = rateLimit.RateLimit(handler)
	handler = middleware.Logging(routePattern)(handler)

	return &app{fleet: cache, service: service, publisher: publisher, handler: handler}
}

// routePattern labels request metrics by the matched route rather than
// the raw path so ids do not explode label cardinality.
func routePattern(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func newPublisher(cfg config.Config) notify.Publisher {
	if cfg.MQTTBrokerURL == "" {
		return notify.Noop{}
	}
	p, err := notify.NewMQTT(notify.Options{
		BrokerURL: cfg.MQTTBrokerURL,
		ClientID:  cfg.MQTTClientID,
		Topic:     cfg.MQTTTopic,
	})
	if err != nil {
		log.WithError(err).Warn("MQTT unavailable, report notifications disabled")
		return notify.Noop{}
	}
	return p
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	a := newApp(cfg, publisher)
	a.fleet.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":     cfg.Port,
			"vendor":   cfg.VendorBaseURL,
			"timezone": cfg.Location.String(),
		}).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
