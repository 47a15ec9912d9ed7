package forms

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// dedupeTTL is the window within which an identical submission is treated
// as a duplicate. Long enough to absorb double-clicks and impatient
// retries, short enough that a genuine re-submission later goes through.
const dedupeTTL = 2 * time.Minute

// Deduper rejects duplicate form submissions. Two layers:
//   - singleflight collapses concurrent identical submissions in-process,
//     so a double-click races into one execution;
//   - a Redis fingerprint key with a short TTL rejects repeats across
//     requests and across replicas.
type Deduper struct {
	rdb    *redis.Client
	flight singleflight.Group
}

func NewDeduper(rdb *redis.Client) *Deduper {
	return &Deduper{rdb: rdb}
}

// Fingerprint derives the dedup key for a form kind and its raw payload.
func Fingerprint(kind string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Do runs fn exactly once per fingerprint within the dedup window.
// Concurrent callers with the same fingerprint share one execution and one
// result. A repeat inside the window returns (nil, false, nil) without
// running fn.
func (d *Deduper) Do(ctx context.Context, fingerprint string, fn func() (any, error)) (v any, fresh bool, err error) {
	type result struct {
		v     any
		fresh bool
	}

	res, err, _ := d.flight.Do(fingerprint, func() (any, error) {
		// redis/go-redis/v9: SetNX claims the fingerprint key only if it
		// does not exist. The TTL bounds the dedup window.
		ok, err := d.rdb.SetNX(ctx, "dedupe:"+fingerprint, 1, dedupeTTL).Result()
		if err != nil {
			// Redis down: accept rather than drop leads.
			ok = true
		}
		if !ok {
			return result{nil, false}, nil
		}
		v, err := fn()
		if err != nil {
			// Failed submissions release the claim so the user can retry
			// immediately with the same draft.
			d.rdb.Del(ctx, "dedupe:"+fingerprint)
			return nil, err
		}
		return result{v, true}, nil
	})
	if err != nil {
		return nil, false, err
	}
	r := res.(result)
	return r.v, r.fresh, nil
}
