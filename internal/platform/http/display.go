package http

import (
	"github.com/academyhub/stats/apps/api/pkg/model"
	"github.com/academyhub/stats/apps/api/pkg/util"
	"github.com/gin-gonic/gin"
)

// The engine returns full precision; these blocks carry the rounded strings
// the dashboard tiles render.

func attendanceDisplay(s model.AttendanceStats) gin.H {
	return gin.H{
		"attendanceRate": util.Percent(s.AttendanceRate),
		"averageRating":  util.Rating(s.AverageRating),
	}
}

func dashboardDisplay(s model.DashboardStats) gin.H {
	return gin.H{
		"attendanceRate": util.Percent(s.AttendanceRate),
		"averageRating":  util.Rating(s.AverageRating),
	}
}

func forecastDisplay(f model.FinancialForecast) gin.H {
	return gin.H{
		"currentMonth": gin.H{
			"paid":        util.Money(f.CurrentMonth.Paid),
			"outstanding": util.Money(f.CurrentMonth.Outstanding),
			"total":       util.Money(f.CurrentMonth.Total),
		},
		"nextMonth": gin.H{
			"due":      util.Money(f.NextMonth.Due),
			"expected": util.Money(f.NextMonth.Expected),
		},
		"thirdMonth": gin.H{
			"expected": util.Money(f.ThirdMonth.Expected),
		},
		"averageMonthlyRevenue": util.Money(f.AverageMonthlyRevenue),
		"annualProjected":       util.Money(f.AnnualProjected),
		"collectionRatePercent": util.Percent(f.CollectionRatePercent),
	}
}

func teamRows(rows []model.TeamAttendance) []gin.H {
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"teamId":   row.TeamID,
			"teamName": row.TeamName,
			"stats":    row.Stats,
			"display":  attendanceDisplay(row.Stats),
		})
	}
	return out
}

func playerRows(rows []model.PlayerAttendance) []gin.H {
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"playerId": row.PlayerID,
			"stats":    row.Stats,
			"display":  attendanceDisplay(row.Stats),
		})
	}
	return out
}
