package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/academyhub/stats/apps/api/internal/business/stats"
	"github.com/academyhub/stats/apps/api/internal/platform/config"
	firestoreclient "github.com/academyhub/stats/apps/api/internal/platform/firestore"
	apirouter "github.com/academyhub/stats/apps/api/internal/platform/http"
	"github.com/academyhub/stats/apps/api/internal/platform/logging"
	"github.com/academyhub/stats/apps/api/internal/platform/metrics"
	"github.com/academyhub/stats/apps/api/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", "err", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("academy timezone", "err", err)
		os.Exit(1)
	}

	firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		slog.Error("firestore init", "err", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	if err := firestoreclient.Ping(ctx, firestoreClient); err != nil {
		slog.Error("firestore ping", "err", err)
		os.Exit(1)
	}
	slog.Info("connected to Firestore", "project", cfg.FirebaseProjectID, "credentials", credsSource)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	statsService := stats.NewService(
		repository.NewPlayerRepository(firestoreClient),
		repository.NewTeamRepository(firestoreClient, loc),
		repository.NewAttendanceRepository(firestoreClient, loc),
		repository.NewInvoiceRepository(firestoreClient, loc),
		repository.NewStatsRepository(firestoreClient),
		stats.WithLocation(loc),
		stats.WithMetrics(metrics.New(registry)),
	)

	refresher := stats.NewRefresher(statsService, cfg.RefreshInterval)
	if cfg.SnapshotOnStart {
		if _, err := refresher.RunOnce(ctx); err != nil {
			slog.Warn("initial stats snapshot failed", "err", err)
		}
	}
	go refresher.Run(ctx)

	router := apirouter.NewRouter(statsService, refresher, registry, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("server listening", "port", cfg.Port, "timezone", loc.String())

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "err", err)
	}
	slog.Info("server exited")
}
