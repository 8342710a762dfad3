package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/academyhub/stats/apps/api/internal/platform/metrics"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

type mockStore struct {
	players    []model.Player
	teams      []model.Team
	attendance []model.AttendanceRecord
	invoices   []model.Invoice
	err        error

	mu    sync.Mutex
	saved []model.StatsSnapshot
}

func (m *mockStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	return m.players, m.err
}

func (m *mockStore) ListTeams(ctx context.Context) ([]model.Team, error) {
	return m.teams, nil
}

func (m *mockStore) ListAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	return m.attendance, nil
}

func (m *mockStore) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return m.invoices, nil
}

func (m *mockStore) SaveSnapshot(ctx context.Context, snap model.StatsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, snap)
	return nil
}

func (m *mockStore) LatestSnapshot(ctx context.Context) (model.StatsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return model.StatsSnapshot{}, errors.New("not found")
	}
	return m.saved[len(m.saved)-1], nil
}

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestService(store *mockStore) *Service {
	return NewService(store, store, store, store, store,
		WithClock(func() time.Time { return fixedNow }),
		WithMetrics(metrics.New(nil)),
	)
}

func academyStore() *mockStore {
	return &mockStore{
		players: []model.Player{
			{ID: "p1", Name: "Ana", TeamID: "u12"},
			{ID: "p2", Name: "Ben", TeamID: "u12"},
			{ID: "p3", Name: "Cleo", TeamID: "u14"},
		},
		teams: []model.Team{
			{ID: "u14", Name: "U14"},
			{ID: "u12", Name: "U12", Order: intPtr(0)},
		},
		attendance: []model.AttendanceRecord{
			{PlayerID: "p1", Present: true, Rating: rated(8), Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
			{PlayerID: "p2", Present: false, Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
			{PlayerID: "p3", Present: true, Rating: rated(6), Date: time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC)},
			{PlayerID: "gone", Present: true, Rating: rated(10), Date: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)},
		},
		invoices: []model.Invoice{
			invoice(100, model.InvoicePaid, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)),
			invoice(50, model.InvoiceOutstanding, time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)),
			invoice(200, model.InvoicePaid, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestServiceDashboard(t *testing.T) {
	svc := newTestService(academyStore())

	all, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if all.TotalPlayers != 3 || all.TotalSessions != 3 {
		t.Errorf("academy dashboard = %+v", all)
	}

	team, err := svc.Dashboard(context.Background(), "u12")
	if err != nil {
		t.Fatalf("Dashboard(u12): %v", err)
	}
	if team.TotalPlayers != 2 || team.TotalSessions != 2 || team.AttendanceRate != 50 || team.AverageRating != 8 {
		t.Errorf("u12 dashboard = %+v", team)
	}

	if _, err := svc.Dashboard(context.Background(), "nope"); !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("unknown team error = %v, want ErrUnknownTeam", err)
	}
}

func TestServiceTeams(t *testing.T) {
	svc := newTestService(academyStore())

	rows, err := svc.Teams(context.Background(), Month{})
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if len(rows) != 2 || rows[0].TeamID != "u12" || rows[1].TeamID != "u14" {
		t.Fatalf("rows = %+v", rows)
	}

	may, err := svc.Teams(context.Background(), Month{Year: 2026, Month: time.May})
	if err != nil {
		t.Fatalf("Teams(may): %v", err)
	}
	if may[1].Stats.TotalSessions != 0 {
		t.Errorf("u14 had no May sessions, got %+v", may[1].Stats)
	}
}

func TestServicePlayer(t *testing.T) {
	svc := newTestService(academyStore())

	got, err := svc.Player(context.Background(), "p1", Month{})
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if got.TotalSessions != 1 || got.AttendanceRate != 100 || got.AverageRating != 8 {
		t.Errorf("p1 = %+v", got)
	}

	if _, err := svc.Player(context.Background(), "gone", Month{}); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("deleted player error = %v, want ErrUnknownPlayer", err)
	}
}

func TestServicePlayers(t *testing.T) {
	store := academyStore()
	store.players = append(store.players, model.Player{ID: "p4", TeamID: "u14"})
	svc := newTestService(store)

	rows, err := svc.Players(context.Background(), "u14", Month{})
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(rows) != 2 || rows[0].PlayerID != "p3" || rows[1].PlayerID != "p4" {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[1].Stats != (model.AttendanceStats{}) {
		t.Errorf("new player should have zeroed stats, got %+v", rows[1].Stats)
	}
}

func TestServiceForecast(t *testing.T) {
	svc := newTestService(academyStore())
	got, err := svc.Forecast(context.Background())
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	approx(t, "currentMonth.total", got.CurrentMonth.Total, 150)
	approx(t, "nextMonth.expected", got.NextMonth.Expected, 133.33)
}

func TestServiceLoadError(t *testing.T) {
	store := academyStore()
	store.err = errors.New("firestore unavailable")
	svc := newTestService(store)

	if _, err := svc.Dashboard(context.Background(), ""); err == nil {
		t.Fatalf("expected load error")
	}
	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if len(store.saved) != 0 {
		t.Errorf("nothing should be saved on load failure")
	}
}

func TestServiceRefreshIsConsistent(t *testing.T) {
	store := academyStore()
	svc := newTestService(store)

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.ID == "" || snap.Scope != ScopeAcademy || !snap.ComputedAt.Equal(fixedNow) {
		t.Errorf("snapshot header = %+v", snap)
	}
	if snap.RecordCount != 3+2+4+3 {
		t.Errorf("recordCount = %d", snap.RecordCount)
	}

	// Every player has a team, so the team rows must add up to the dashboard.
	var sessions int
	for _, row := range snap.Teams {
		sessions += row.Stats.TotalSessions
	}
	if sessions != snap.Dashboard.TotalSessions {
		t.Errorf("team sessions %d do not reconcile with dashboard %d", sessions, snap.Dashboard.TotalSessions)
	}

	latest, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != snap.ID {
		t.Errorf("latest = %s, want %s", latest.ID, snap.ID)
	}
}

func TestServiceConcurrentCalls(t *testing.T) {
	svc := newTestService(academyStore())
	want, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Dashboard(context.Background(), "")
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("dashboard differs between concurrent calls")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
