package projections

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/model"
)

// UpdateIndex maintains the kind:category → listing IDs index used by the
// category filter dropdowns and counts.
func UpdateIndex(ctx context.Context, rdb *redis.Client, evt model.CatalogAccepted) error {
	key := fmt.Sprintf("idx:%s:%s", evt.Kind, evt.Category)

	// redis/go-redis/v9: SAdd adds the listing to the category Set.
	// Sets give O(1) membership for category lookups.
	if err := rdb.SAdd(ctx, key, evt.ListingID).Err(); err != nil {
		return err
	}

	// redis/go-redis/v9: SAdd tracks the known categories per kind, which
	// feeds the "All" dropdown without scanning listings.
	catKey := fmt.Sprintf("categories:%s", evt.Kind)
	if err := rdb.SAdd(ctx, catKey, evt.Category).Err(); err != nil {
		return err
	}

	log.Printf("Index Projector: updated %s with listing %s", key, evt.ListingID)
	return nil
}
