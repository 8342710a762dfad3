package stats

import "github.com/academyhub/stats/apps/api/pkg/model"

// ComputeDashboardStats reduces the headline numbers for a set of players.
// Attendance for players outside the set (deleted players, other teams) is
// ignored so it cannot inflate the totals.
func ComputeDashboardStats(players []model.Player, attendance []model.AttendanceRecord) model.DashboardStats {
	ids := make(map[string]struct{}, len(players))
	for _, p := range players {
		ids[p.ID] = struct{}{}
	}

	scoped := make([]model.AttendanceRecord, 0, len(attendance))
	for _, r := range attendance {
		if _, ok := ids[r.PlayerID]; ok {
			scoped = append(scoped, r)
		}
	}

	att := ComputeAttendanceStats(scoped)
	return model.DashboardStats{
		TotalPlayers:   len(players),
		TotalSessions:  att.TotalSessions,
		AttendanceRate: att.AttendanceRate,
		AverageRating:  att.AverageRating,
	}
}
