package projections

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/model"
)

const deltaTTL = 5 * time.Minute // short TTL, clients poll "what changed"

// UpdateDelta records a recent-change marker with a short TTL. The site's
// "new listings" ribbons poll these instead of diffing whole catalogs;
// expiry keeps Redis memory bounded.
func UpdateDelta(ctx context.Context, rdb *redis.Client, evt model.CatalogAccepted) error {
	key := fmt.Sprintf("delta:%s:%s:%s", evt.Kind, evt.ListingID, evt.Timestamp)

	delta := map[string]any{
		"kind":       evt.Kind,
		"listing_id": evt.ListingID,
		"category":   evt.Category,
		"timestamp":  evt.Timestamp,
		"type":       "update",
	}

	data, err := json.Marshal(delta)
	if err != nil {
		return err
	}

	// redis/go-redis/v9: Set with TTL; deltas expire automatically.
	if err := rdb.Set(ctx, key, data, deltaTTL).Err(); err != nil {
		return err
	}

	log.Printf("Delta Projector: updated %s (TTL: %v)", key, deltaTTL)
	return nil
}
