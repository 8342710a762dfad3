package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

// AttendanceRepository reads session attendance records.
type AttendanceRepository struct {
	client *firestore.Client
	loc    *time.Location
}

func NewAttendanceRepository(client *firestore.Client, loc *time.Location) *AttendanceRepository {
	return &AttendanceRepository{client: client, loc: loc}
}

// ListAttendance loads every attendance record.
func (r *AttendanceRepository) ListAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	err := eachDocument(ctx, r.client, attendanceCollection, func(id string, data map[string]any) {
		out = append(out, decodeAttendance(id, data, r.loc))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAttendance never rejects a record: a missing present flag reads as
// absent and a missing or malformed rating reads as unrated.
func decodeAttendance(id string, data map[string]any, loc *time.Location) model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:       id,
		PlayerID: asString(data["playerId"]),
		TeamID:   asString(data["teamId"]),
		Date:     asTime(data["date"], loc),
		Present:  asBool(data["present"]),
		Rating:   model.RatingFromPtr(asFloatPtr(data["rating"])),
	}
}
