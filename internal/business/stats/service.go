package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/academyhub/stats/apps/api/internal/platform/metrics"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

var (
	// ErrUnknownPlayer is returned when a player-scoped query names no roster player.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrUnknownTeam is returned when a team-scoped query names no team.
	ErrUnknownTeam = errors.New("unknown team")
)

// ScopeAcademy labels snapshots computed over the whole roster.
const ScopeAcademy = "academy"

// PlayerStore abstracts the roster collection.
type PlayerStore interface {
	ListPlayers(ctx context.Context) ([]model.Player, error)
}

// TeamStore abstracts the teams collection.
type TeamStore interface {
	ListTeams(ctx context.Context) ([]model.Team, error)
}

// AttendanceStore abstracts the attendance collection.
type AttendanceStore interface {
	ListAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
}

// InvoiceStore abstracts the invoices collection.
type InvoiceStore interface {
	ListInvoices(ctx context.Context) ([]model.Invoice, error)
}

// SnapshotStore persists derived snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap model.StatsSnapshot) error
	LatestSnapshot(ctx context.Context) (model.StatsSnapshot, error)
}

// Month narrows attendance queries to one calendar month. The zero value means all time.
type Month struct {
	Year  int
	Month time.Month
}

// IsZero reports whether no month was selected.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Snapshot is one consistent read of every record collection. All figures in a
// single response are computed from the same Snapshot.
type Snapshot struct {
	Players    []model.Player
	Teams      []model.Team
	Attendance []model.AttendanceRecord
	Invoices   []model.Invoice
	LoadedAt   time.Time
}

// Size is the total number of records in the snapshot.
func (s Snapshot) Size() int {
	return len(s.Players) + len(s.Teams) + len(s.Attendance) + len(s.Invoices)
}

// Service reads snapshots from the record store and runs the aggregators over them.
type Service struct {
	players    PlayerStore
	teams      TeamStore
	attendance AttendanceStore
	invoices   InvoiceStore
	snapshots  SnapshotStore
	metrics    *metrics.Recorder
	loc        *time.Location
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for forecasts and snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone that defines calendar month boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMetrics attaches a Prometheus recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

func NewService(players PlayerStore, teams TeamStore, attendance AttendanceStore, invoices InvoiceStore, snapshots SnapshotStore, opts ...Option) *Service {
	s := &Service{
		players:    players,
		teams:      teams,
		attendance: attendance,
		invoices:   invoices,
		snapshots:  snapshots,
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock in the academy's time zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Location returns the zone used for month boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// LoadSnapshot reads all four collections concurrently.
func (s *Service) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	started := time.Now()
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := s.players.ListPlayers(gctx)
		if err != nil {
			return fmt.Errorf("load players: %w", err)
		}
		snap.Players = players
		return nil
	})
	g.Go(func() error {
		teams, err := s.teams.ListTeams(gctx)
		if err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		snap.Teams = teams
		return nil
	})
	g.Go(func() error {
		records, err := s.attendance.ListAttendance(gctx)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		snap.Attendance = records
		return nil
	})
	g.Go(func() error {
		invoices, err := s.invoices.ListInvoices(gctx)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}
		snap.Invoices = invoices
		return nil
	})

	err := g.Wait()
	s.metrics.ObserveSnapshotLoad(started, err)
	if err != nil {
		return Snapshot{}, err
	}

	snap.LoadedAt = s.Now()
	s.metrics.SetRecords("players", len(snap.Players))
	s.metrics.SetRecords("teams", len(snap.Teams))
	s.metrics.SetRecords("attendance", len(snap.Attendance))
	s.metrics.SetRecords("invoices", len(snap.Invoices))
	slog.Debug("snapshot loaded",
		"players", len(snap.Players),
		"teams", len(snap.Teams),
		"attendance", len(snap.Attendance),
		"invoices", len(snap.Invoices),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return snap, nil
}

// Dashboard computes the headline numbers for the whole academy, or for one
// team's players when teamID is set.
func (s *Service) Dashboard(ctx context.Context, teamID string) (model.DashboardStats, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return s.DashboardOf(snap, teamID)
}

// DashboardOf computes the dashboard from an already loaded snapshot.
func (s *Service) DashboardOf(snap Snapshot, teamID string) (model.DashboardStats, error) {
	players, err := playersInScope(snap, teamID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	s.metrics.CountAggregation("dashboard")
	return ComputeDashboardStats(players, snap.Attendance), nil
}

// Teams computes the ordered per-team breakdown, optionally for one month.
func (s *Service) Teams(ctx context.Context, month Month) ([]model.TeamAttendance, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.TeamsOf(snap, month), nil
}

// TeamsOf computes the ordered team breakdown from an already loaded snapshot.
func (s *Service) TeamsOf(snap Snapshot, month Month) []model.TeamAttendance {
	s.metrics.CountAggregation("teams")
	records := s.inMonth(snap.Attendance, month)
	return TeamBreakdown(snap.Teams, records, TeamLookup(snap.Players))
}

// Player computes one player's attendance stats, optionally for one month.
func (s *Service) Player(ctx context.Context, playerID string, month Month) (model.AttendanceStats, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return model.AttendanceStats{}, err
	}
	found := false
	for _, p := range snap.Players {
		if p.ID == playerID {
			found = true
			break
		}
	}
	if !found {
		return model.AttendanceStats{}, fmt.Errorf("player %s: %w", playerID, ErrUnknownPlayer)
	}
	s.metrics.CountAggregation("player")
	records := s.inMonth(FilterByPlayer(snap.Attendance, playerID), month)
	return ComputeAttendanceStats(records), nil
}

// Players computes per-player stats for the roster in scope, in roster order.
// Players with no records get zeroed stats.
func (s *Service) Players(ctx context.Context, teamID string, month Month) ([]model.PlayerAttendance, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	players, err := playersInScope(snap, teamID)
	if err != nil {
		return nil, err
	}
	s.metrics.CountAggregation("players")

	byPlayer := make(map[string]model.AttendanceStats)
	for _, row := range GroupByPlayer(s.inMonth(snap.Attendance, month)) {
		byPlayer[row.PlayerID] = row.Stats
	}
	out := make([]model.PlayerAttendance, 0, len(players))
	for _, p := range players {
		out = append(out, model.PlayerAttendance{PlayerID: p.ID, Stats: byPlayer[p.ID]})
	}
	return out, nil
}

// Forecast projects revenue from the current invoice collection.
func (s *Service) Forecast(ctx context.Context) (model.FinancialForecast, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return model.FinancialForecast{}, fmt.Errorf("load invoices: %w", err)
	}
	s.metrics.CountAggregation("forecast")
	return ComputeForecast(invoices, s.Now()), nil
}

// ForecastOf projects revenue from the invoices of an already loaded snapshot,
// as of the moment it was loaded.
func (s *Service) ForecastOf(snap Snapshot) model.FinancialForecast {
	s.metrics.CountAggregation("forecast")
	return ComputeForecast(snap.Invoices, snap.LoadedAt)
}

// Compute derives a full academy snapshot from one read of the record store.
func (s *Service) Compute(snap Snapshot) model.StatsSnapshot {
	s.metrics.CountAggregation("snapshot")
	return model.StatsSnapshot{
		ID:          uuid.NewString(),
		Scope:       ScopeAcademy,
		ComputedAt:  snap.LoadedAt,
		RecordCount: snap.Size(),
		Dashboard:   ComputeDashboardStats(snap.Players, snap.Attendance),
		Teams:       TeamBreakdown(snap.Teams, snap.Attendance, TeamLookup(snap.Players)),
		Forecast:    ComputeForecast(snap.Invoices, snap.LoadedAt),
	}
}

// Refresh computes a snapshot and persists it.
func (s *Service) Refresh(ctx context.Context) (model.StatsSnapshot, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	out := s.Compute(snap)
	if err := s.Save(ctx, out); err != nil {
		return model.StatsSnapshot{}, err
	}
	return out, nil
}

// Save persists a computed snapshot. Without a snapshot store it is a no-op.
func (s *Service) Save(ctx context.Context, out model.StatsSnapshot) error {
	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.SaveSnapshot(ctx, out); err != nil {
		return err
	}
	slog.Info("stats snapshot saved", "snapshot_id", out.ID, "records", out.RecordCount)
	return nil
}

// Latest returns the most recently persisted snapshot.
func (s *Service) Latest(ctx context.Context) (model.StatsSnapshot, error) {
	if s.snapshots == nil {
		return model.StatsSnapshot{}, errors.New("snapshot store not configured")
	}
	return s.snapshots.LatestSnapshot(ctx)
}

func (s *Service) inMonth(records []model.AttendanceRecord, month Month) []model.AttendanceRecord {
	if month.IsZero() {
		return records
	}
	return FilterByMonth(records, month.Year, month.Month, s.loc)
}

func playersInScope(snap Snapshot, teamID string) ([]model.Player, error) {
	if teamID == "" {
		return snap.Players, nil
	}
	known := false
	for _, t := range snap.Teams {
		if t.ID == teamID {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrUnknownTeam)
	}
	out := make([]model.Player, 0)
	for _, p := range snap.Players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}
