package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/academyhub/stats/apps/api/internal/business/stats"
	"github.com/academyhub/stats/apps/api/internal/platform/config"
	firestoreclient "github.com/academyhub/stats/apps/api/internal/platform/firestore"
	"github.com/academyhub/stats/apps/api/internal/platform/logging"
	"github.com/academyhub/stats/apps/api/internal/repository"
)

// report prints the dashboard, team breakdown and forecast as JSON.
// Usage: go run ./cmd/report -team u12 -month 2026-05 [-save]
func main() {
	teamID := flag.String("team", "", "limit the dashboard to one team")
	month := flag.String("month", "", "limit the team breakdown to a calendar month (YYYY-MM)")
	save := flag.Bool("save", false, "persist the academy snapshot to stats_snapshots")
	flag.Parse()

	if err := run(*teamID, *month, *save); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(teamID, monthFlag string, save bool) error {
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var month stats.Month
	if monthFlag != "" {
		t, err := time.ParseInLocation("2006-01", monthFlag, loc)
		if err != nil {
			return fmt.Errorf("parse -month: %w", err)
		}
		month = stats.Month{Year: t.Year(), Month: t.Month()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("firestore init: %w", err)
	}
	defer client.Close()
	slog.Debug("firestore client ready", "project", cfg.FirebaseProjectID, "credentials", credsSource)

	svc := stats.NewService(
		repository.NewPlayerRepository(client),
		repository.NewTeamRepository(client, loc),
		repository.NewAttendanceRepository(client, loc),
		repository.NewInvoiceRepository(client, loc),
		repository.NewStatsRepository(client),
		stats.WithLocation(loc),
	)

	rep, err := svc.Report(ctx, teamID, month, save)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
