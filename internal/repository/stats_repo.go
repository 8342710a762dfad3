package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/academyhub/stats/apps/api/pkg/model"
)

// StatsRepository stores derived snapshots: one document per snapshot in
// stats_snapshots and a copy of the newest in the system/stats singleton.
type StatsRepository struct {
	client *firestore.Client
}

func NewStatsRepository(client *firestore.Client) *StatsRepository {
	return &StatsRepository{client: client}
}

// SaveSnapshot writes the snapshot history entry and the latest pointer in one batch.
func (r *StatsRepository) SaveSnapshot(ctx context.Context, snap model.StatsSnapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("snapshot id is required")
	}
	batch := r.client.Batch()
	batch.Set(r.client.Collection(snapshotsCollection).Doc(snap.ID), snap)
	batch.Set(r.client.Collection(systemCollection).Doc(latestStatsDoc), snap)
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot, or ErrNotFound before the first refresh.
func (r *StatsRepository) LatestSnapshot(ctx context.Context) (model.StatsSnapshot, error) {
	doc, err := r.client.Collection(systemCollection).Doc(latestStatsDoc).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.StatsSnapshot{}, fmt.Errorf("latest snapshot: %w", ErrNotFound)
	}
	if err != nil {
		return model.StatsSnapshot{}, fmt.Errorf("get latest snapshot: %w", err)
	}
	var snap model.StatsSnapshot
	if err := doc.DataTo(&snap); err != nil {
		return model.StatsSnapshot{}, fmt.Errorf("decode latest snapshot: %w", err)
	}
	return snap, nil
}
