package saved

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/model"
)

// Store keeps per-principal favorite sets in Redis, one Set per principal
// per listing kind. Keying by principal (user ID when logged in, device ID
// otherwise) makes favorites follow the account across devices.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(kind model.Kind, principal string) string {
	return fmt.Sprintf("saved:%s:%s", kind, principal)
}

// Toggle flips membership of id: add if absent, remove if present.
// Returns the resulting membership. Applying Toggle twice restores the
// original state; Redis Sets guarantee no duplicate entries.
func (s *Store) Toggle(ctx context.Context, kind model.Kind, principal, id string) (saved bool, err error) {
	k := key(kind, principal)

	// redis/go-redis/v9: SIsMember checks Set membership in O(1).
	member, err := s.rdb.SIsMember(ctx, k, id).Result()
	if err != nil {
		return false, err
	}
	if member {
		// redis/go-redis/v9: SRem removes the member; removing twice is a no-op.
		if err := s.rdb.SRem(ctx, k, id).Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	// redis/go-redis/v9: SAdd adds the member; Sets never hold duplicates.
	if err := s.rdb.SAdd(ctx, k, id).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all saved listing IDs for the principal and kind.
func (s *Store) List(ctx context.Context, kind model.Kind, principal string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, key(kind, principal)).Result()
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Merge moves a device's anonymous favorites into the user's set after
// login, then drops the device set.
func (s *Store) Merge(ctx context.Context, kind model.Kind, deviceID, userID string) error {
	ids, err := s.rdb.SMembers(ctx, key(kind, deviceID)).Result()
	if err != nil || len(ids) == 0 {
		return err
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.rdb.SAdd(ctx, key(kind, userID), members...).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, key(kind, deviceID)).Err()
}
