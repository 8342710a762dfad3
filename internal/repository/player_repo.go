package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

// PlayerRepository reads the roster from the players collection.
type PlayerRepository struct {
	client *firestore.Client
}

func NewPlayerRepository(client *firestore.Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

// ListPlayers loads every roster document.
func (r *PlayerRepository) ListPlayers(ctx context.Context) ([]model.Player, error) {
	var out []model.Player
	err := eachDocument(ctx, r.client, playersCollection, func(id string, data map[string]any) {
		out = append(out, decodePlayer(id, data))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodePlayer(id string, data map[string]any) model.Player {
	p := model.Player{
		ID:     id,
		Name:   asString(data["name"]),
		TeamID: asString(data["teamId"]),
		Active: true,
	}
	if v, ok := data["active"]; ok {
		p.Active = asBool(v)
	}
	return p
}
