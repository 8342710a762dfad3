package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

// TeamRepository reads the teams collection.
type TeamRepository struct {
	client *firestore.Client
	loc    *time.Location
}

func NewTeamRepository(client *firestore.Client, loc *time.Location) *TeamRepository {
	return &TeamRepository{client: client, loc: loc}
}

// ListTeams returns teams in creation order, which is the fallback display
// order for teams that were never placed explicitly. Teams without a creation
// time go last, ordered by ID.
func (r *TeamRepository) ListTeams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	err := eachDocument(ctx, r.client, teamsCollection, func(id string, data map[string]any) {
		out = append(out, decodeTeam(id, data, r.loc))
	})
	if err != nil {
		return nil, err
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(teams []model.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		ci, cj := teams[i].CreatedAt, teams[j].CreatedAt
		switch {
		case ci.IsZero() && cj.IsZero():
			return teams[i].ID < teams[j].ID
		case ci.IsZero():
			return false
		case cj.IsZero():
			return true
		case ci.Equal(cj):
			return teams[i].ID < teams[j].ID
		default:
			return ci.Before(cj)
		}
	})
}

func decodeTeam(id string, data map[string]any, loc *time.Location) model.Team {
	t := model.Team{
		ID:        id,
		Name:      asString(data["name"]),
		CreatedAt: asTime(data["createdAt"], loc),
	}
	if order, ok := asInt(data["order"]); ok {
		t.Order = &order
	}
	return t
}
