package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/academyhub/stats/apps/api/pkg/model"
)

// Report bundles the dashboard, team breakdown and forecast computed from a
// single snapshot.
type Report struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	TeamID      string                  `json:"teamId,omitempty"`
	Month       string                  `json:"month,omitempty"`
	Dashboard   model.DashboardStats    `json:"dashboard"`
	Teams       []model.TeamAttendance  `json:"teams"`
	Forecast    model.FinancialForecast `json:"forecast"`
	SnapshotID  string                  `json:"snapshotId,omitempty"`
}

// String formats the month as YYYY-MM, or "" for all time.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Report reads the store once and derives every figure from that read. With
// save set, the academy snapshot computed from the same read is persisted too.
func (s *Service) Report(ctx context.Context, teamID string, month Month, save bool) (Report, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return Report{}, err
	}

	dash, err := s.DashboardOf(snap, teamID)
	if err != nil {
		return Report{}, err
	}
	out := Report{
		GeneratedAt: snap.LoadedAt,
		TeamID:      teamID,
		Month:       month.String(),
		Dashboard:   dash,
		Teams:       s.TeamsOf(snap, month),
		Forecast:    s.ForecastOf(snap),
	}

	if save {
		computed := s.Compute(snap)
		if err := s.Save(ctx, computed); err != nil {
			return Report{}, fmt.Errorf("save snapshot: %w", err)
		}
		out.SnapshotID = computed.ID
	}
	return out, nil
}
