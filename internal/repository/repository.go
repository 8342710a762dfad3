package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Collection names in the academy Firestore project.
const (
	playersCollection    = "players"
	teamsCollection      = "teams"
	attendanceCollection = "attendance"
	invoicesCollection   = "invoices"
	snapshotsCollection  = "stats_snapshots"
	systemCollection     = "system"
	latestStatsDoc       = "stats"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// eachDocument walks every document of a collection. Documents are handed to fn
// as raw maps so each repository can decode loosely typed fields itself.
func eachDocument(ctx context.Context, client *firestore.Client, collection string, fn func(id string, data map[string]any)) error {
	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("iterate %s: %w", collection, err)
		}
		fn(doc.Ref.ID, doc.Data())
	}
}
