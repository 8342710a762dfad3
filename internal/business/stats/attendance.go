package stats

import (
	"sort"
	"time"

	"github.com/academyhub/stats/apps/api/pkg/model"
)

// ComputeAttendanceStats reduces records into session, presence and rating figures.
// The caller scopes records beforehand (team, player or whole academy).
func ComputeAttendanceStats(records []model.AttendanceRecord) model.AttendanceStats {
	var present, rated int
	var ratingSum float64

	for _, r := range records {
		if r.Present {
			present++
		}
		if v, ok := r.Rating.Value(); ok {
			rated++
			ratingSum += v
		}
	}

	return model.AttendanceStats{
		TotalSessions:  len(records),
		PresentCount:   present,
		RatedSessions:  rated,
		AttendanceRate: percent(present, len(records)),
		AverageRating:  mean(ratingSum, rated),
	}
}

// GroupByTeam partitions records by team and reduces each partition. A record's
// own TeamID wins over the player lookup; records with no resolvable team are dropped.
func GroupByTeam(records []model.AttendanceRecord, teamOfPlayer map[string]string) map[string]model.AttendanceStats {
	parts, _ := partitionByTeam(records, teamOfPlayer)
	out := make(map[string]model.AttendanceStats, len(parts))
	for teamID, recs := range parts {
		out[teamID] = ComputeAttendanceStats(recs)
	}
	return out
}

func partitionByTeam(records []model.AttendanceRecord, teamOfPlayer map[string]string) (map[string][]model.AttendanceRecord, []string) {
	parts := make(map[string][]model.AttendanceRecord)
	var seen []string
	for _, r := range records {
		teamID := r.TeamID
		if teamID == "" {
			teamID = teamOfPlayer[r.PlayerID]
		}
		if teamID == "" {
			continue
		}
		if _, ok := parts[teamID]; !ok {
			seen = append(seen, teamID)
		}
		parts[teamID] = append(parts[teamID], r)
	}
	return parts, seen
}

// TeamBreakdown groups records by team and lays the result out in display order.
func TeamBreakdown(teams []model.Team, records []model.AttendanceRecord, teamOfPlayer map[string]string) []model.TeamAttendance {
	parts, seen := partitionByTeam(records, teamOfPlayer)
	stats := make(map[string]model.AttendanceStats, len(parts))
	for teamID, recs := range parts {
		stats[teamID] = ComputeAttendanceStats(recs)
	}
	return OrderTeams(teams, stats, seen)
}

// OrderTeams lays out per-team stats for display. Teams with an explicit Order
// come first in ascending order; the rest keep the order they were supplied in.
// Teams missing from stats get zeroed figures. Stats for teams with no team
// document follow in discovered order, which callers take from the records.
// Any such team absent from discovered is appended last, by ID.
func OrderTeams(teams []model.Team, stats map[string]model.AttendanceStats, discovered []string) []model.TeamAttendance {
	ordered := make([]model.Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oj := ordered[i].Order, ordered[j].Order
		switch {
		case oi != nil && oj != nil:
			return *oi < *oj
		case oi != nil:
			return true
		default:
			return false
		}
	})

	out := make([]model.TeamAttendance, 0, len(ordered))
	known := make(map[string]bool, len(ordered))
	for _, t := range ordered {
		if known[t.ID] {
			continue
		}
		known[t.ID] = true
		out = append(out, model.TeamAttendance{
			TeamID:   t.ID,
			TeamName: t.Name,
			Stats:    stats[t.ID],
		})
	}
	for _, id := range discovered {
		if known[id] {
			continue
		}
		known[id] = true
		out = append(out, model.TeamAttendance{TeamID: id, Stats: stats[id]})
	}

	var rest []string
	for id := range stats {
		if !known[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, model.TeamAttendance{TeamID: id, Stats: stats[id]})
	}
	return out
}

// GroupByPlayer reduces records per player, in the order players first appear.
func GroupByPlayer(records []model.AttendanceRecord) []model.PlayerAttendance {
	parts := make(map[string][]model.AttendanceRecord)
	var order []string
	for _, r := range records {
		if _, ok := parts[r.PlayerID]; !ok {
			order = append(order, r.PlayerID)
		}
		parts[r.PlayerID] = append(parts[r.PlayerID], r)
	}

	out := make([]model.PlayerAttendance, 0, len(order))
	for _, id := range order {
		out = append(out, model.PlayerAttendance{PlayerID: id, Stats: ComputeAttendanceStats(parts[id])})
	}
	return out
}

// FilterByPlayer returns the records belonging to playerID.
func FilterByPlayer(records []model.AttendanceRecord, playerID string) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0)
	for _, r := range records {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out
}

// FilterByTeam returns the records resolved to teamID, using the same
// resolution rule as GroupByTeam.
func FilterByTeam(records []model.AttendanceRecord, teamID string, teamOfPlayer map[string]string) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0)
	for _, r := range records {
		resolved := r.TeamID
		if resolved == "" {
			resolved = teamOfPlayer[r.PlayerID]
		}
		if resolved == teamID {
			out = append(out, r)
		}
	}
	return out
}

// FilterByMonth returns records dated within the given calendar month in loc.
// Records without a date never match.
func FilterByMonth(records []model.AttendanceRecord, year int, month time.Month, loc *time.Location) []model.AttendanceRecord {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]model.AttendanceRecord, 0)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		d := r.Date.In(loc)
		if d.Year() == year && d.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// TeamLookup builds the player to team table used by the grouping functions.
func TeamLookup(players []model.Player) map[string]string {
	out := make(map[string]string, len(players))
	for _, p := range players {
		if p.TeamID != "" {
			out[p.ID] = p.TeamID
		}
	}
	return out
}
