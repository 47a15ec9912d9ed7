package projections

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/catalog"
	"holdco-backend/internal/model"
)

// UpdateShard stores the ready-to-send detail JSON for one listing. The
// detail endpoint serves straight from this key without touching the
// snapshot.
func UpdateShard(ctx context.Context, rdb *redis.Client, snap *catalog.Snapshot, evt model.CatalogAccepted) error {
	it, ok := snap.Get(evt.Kind, evt.ListingID)
	if !ok {
		return fmt.Errorf("listing %s/%s not in snapshot", evt.Kind, evt.ListingID)
	}

	data, err := json.Marshal(it)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("shard:%s:%s", evt.Kind, evt.ListingID)
	// redis/go-redis/v9: Set stores the detail JSON as a string value,
	// no expiration; the next sync overwrites it.
	if err := rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return err
	}

	log.Printf("Shard Projector: updated %s", key)
	return nil
}
