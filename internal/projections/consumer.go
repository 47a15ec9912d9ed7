package projections

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/catalog"
	"holdco-backend/internal/kstream"
	"holdco-backend/internal/model"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ConsumeAcceptedTopic runs the three projectors (Index, Shard, Delta)
// over catalog.accepted, keeping the Redis read models current with the
// synced snapshot.
func ConsumeAcceptedTopic(ctx context.Context, snap *catalog.Snapshot) error {
	// redis/go-redis/v9: client for the read-optimized projections.
	rdb := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_ADDR", "redis:6379"),
	})
	defer rdb.Close()

	reader := kstream.KafkaReader(kstream.TopicCatalogAccepted, "projectors-group")
	defer reader.Close()

	log.Println("Projectors: consuming from", kstream.TopicCatalogAccepted)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var evt model.CatalogAccepted
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Printf("Projectors: failed to unmarshal: %v", err)
			continue
		}

		if err := UpdateIndex(ctx, rdb, evt); err != nil {
			log.Printf("Index Projector error: %v", err)
		}
		if err := UpdateShard(ctx, rdb, snap, evt); err != nil {
			log.Printf("Shard Projector error: %v", err)
		}
		if err := UpdateDelta(ctx, rdb, evt); err != nil {
			log.Printf("Delta Projector error: %v", err)
		}
	}
}
