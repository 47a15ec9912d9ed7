package projections

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/model"
)

// Reader serves the read models the projectors maintain. A shard miss is
// (nil, nil) so callers can fall back to the snapshot.
type Reader struct {
	rdb *redis.Client
}

func NewReader(rdb *redis.Client) *Reader {
	return &Reader{rdb: rdb}
}

// Shard returns the ready-to-send detail JSON for a listing, or nil when
// the shard key is absent.
func (r *Reader) Shard(ctx context.Context, kind model.Kind, id string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, fmt.Sprintf("shard:%s:%s", kind, id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// Categories reads the per-kind category index, sorted, with the "All"
// sentinel first. Empty when the projectors have not run yet.
func (r *Reader) Categories(ctx context.Context, kind model.Kind) ([]string, error) {
	cats, err := r.rdb.SMembers(ctx, fmt.Sprintf("categories:%s", kind)).Result()
	if err != nil || len(cats) == 0 {
		return nil, err
	}
	sort.Strings(cats)
	return append([]string{model.CategoryAll}, cats...), nil
}
