package model

import (
	"strings"
	"time"
)

// Player is a member of the academy roster.
type Player struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	TeamID string `json:"teamId,omitempty"`
	Active bool   `json:"active"`
}

// Team groups players. Order is the explicit display position set from the
// reorderable team list; nil means the team was never placed.
type Team struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Order     *int      `json:"order,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AttendanceRecord is one session's presence and rating entry for one player.
// TeamID may be empty, in which case the team is resolved through the player.
type AttendanceRecord struct {
	ID       string    `json:"id,omitempty"`
	PlayerID string    `json:"playerId,omitempty"`
	TeamID   string    `json:"teamId,omitempty"`
	Date     time.Time `json:"date,omitempty"`
	Present  bool      `json:"present"`
	Rating   Rating    `json:"rating"`
}

// InvoiceStatus classifies an invoice into exactly one revenue bucket.
type InvoiceStatus string

const (
	InvoicePaid        InvoiceStatus = "paid"
	InvoiceOutstanding InvoiceStatus = "outstanding"
)

// ParseInvoiceStatus maps a stored status onto paid or outstanding.
// Anything that is not "paid" is treated as still owed.
func ParseInvoiceStatus(raw string) InvoiceStatus {
	if strings.EqualFold(strings.TrimSpace(raw), string(InvoicePaid)) {
		return InvoicePaid
	}
	return InvoiceOutstanding
}

// Invoice is a single bill issued to a player.
type Invoice struct {
	ID        string        `json:"id,omitempty"`
	PlayerID  string        `json:"playerId,omitempty"`
	Amount    float64       `json:"amount"`
	DueDate   time.Time     `json:"dueDate,omitempty"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
	Status    InvoiceStatus `json:"status"`
}

// Paid reports whether the invoice is in the paid bucket.
func (i Invoice) Paid() bool {
	return i.Status == InvoicePaid
}

// AttendanceStats is the reduction of a set of attendance records.
// AttendanceRate is a percentage in [0,100]; AverageRating is in [0,10].
type AttendanceStats struct {
	TotalSessions  int     `json:"totalSessions" firestore:"totalSessions"`
	PresentCount   int     `json:"presentCount" firestore:"presentCount"`
	RatedSessions  int     `json:"ratedSessions" firestore:"ratedSessions"`
	AttendanceRate float64 `json:"attendanceRate" firestore:"attendanceRate"`
	AverageRating  float64 `json:"averageRating" firestore:"averageRating"`
}

// TeamAttendance is one row of an ordered team breakdown.
type TeamAttendance struct {
	TeamID   string          `json:"teamId" firestore:"teamId"`
	TeamName string          `json:"teamName,omitempty" firestore:"teamName,omitempty"`
	Stats    AttendanceStats `json:"stats" firestore:"stats"`
}

// PlayerAttendance is one row of a per-player breakdown.
type PlayerAttendance struct {
	PlayerID string          `json:"playerId"`
	Stats    AttendanceStats `json:"stats"`
}

// MonthRevenue holds the current calendar month's invoice totals.
type MonthRevenue struct {
	Paid        float64 `json:"paid" firestore:"paid"`
	Outstanding float64 `json:"outstanding" firestore:"outstanding"`
	Total       float64 `json:"total" firestore:"total"`
}

// MonthProjection holds the amount due next month and how much of it is expected to be collected.
type MonthProjection struct {
	Due      float64 `json:"due" firestore:"due"`
	Expected float64 `json:"expected" firestore:"expected"`
}

// ThirdMonthProjection is the expected revenue two months out.
type ThirdMonthProjection struct {
	Expected float64 `json:"expected" firestore:"expected"`
}

// FinancialForecast is the revenue projection derived from invoice history.
// CollectionRate is a ratio in [0,1]; CollectionRatePercent is the same figure in [0,100].
type FinancialForecast struct {
	CurrentMonth          MonthRevenue         `json:"currentMonth" firestore:"currentMonth"`
	NextMonth             MonthProjection      `json:"nextMonth" firestore:"nextMonth"`
	ThirdMonth            ThirdMonthProjection `json:"thirdMonth" firestore:"thirdMonth"`
	AverageMonthlyRevenue float64              `json:"averageMonthlyRevenue" firestore:"averageMonthlyRevenue"`
	AnnualProjected       float64              `json:"annualProjected" firestore:"annualProjected"`
	CollectionRate        float64              `json:"collectionRate" firestore:"collectionRate"`
	CollectionRatePercent float64              `json:"collectionRatePercent" firestore:"collectionRatePercent"`
}

// DashboardStats are the landing page headline numbers.
type DashboardStats struct {
	TotalPlayers   int     `json:"totalPlayers" firestore:"totalPlayers"`
	TotalSessions  int     `json:"totalSessions" firestore:"totalSessions"`
	AttendanceRate float64 `json:"attendanceRate" firestore:"attendanceRate"`
	AverageRating  float64 `json:"averageRating" firestore:"averageRating"`
}

// StatsSnapshot is a persisted copy of the derived statistics computed from one
// consistent read of the record collections.
type StatsSnapshot struct {
	ID          string            `json:"id" firestore:"id"`
	Scope       string            `json:"scope" firestore:"scope"`
	ComputedAt  time.Time         `json:"computedAt" firestore:"computedAt"`
	RecordCount int               `json:"recordCount" firestore:"recordCount"`
	Dashboard   DashboardStats    `json:"dashboard" firestore:"dashboard"`
	Teams       []TeamAttendance  `json:"teams" firestore:"teams"`
	Forecast    FinancialForecast `json:"forecast" firestore:"forecast"`
}
