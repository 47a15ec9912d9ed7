package sync

import (
	"context"
	"log"
	"os"
	"strconv"
	gosync "sync"
	"time"

	"holdco-backend/internal/catalog"
	"holdco-backend/internal/kstream"
	"holdco-backend/internal/model"
	"holdco-backend/internal/upstream"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func syncInterval() time.Duration {
	if v, err := strconv.Atoi(getenv("SYNC_INTERVAL_SECONDS", "300")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return 5 * time.Minute
}

// Run keeps the snapshot current: an immediate sync at boot, then one per
// interval until the context is cancelled. If the first fetch fails the
// seed fixtures (if any) remain in place.
func Run(ctx context.Context, client *upstream.Client, snap *catalog.Snapshot) {
	SyncAll(ctx, client, snap)

	ticker := time.NewTicker(syncInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			SyncAll(ctx, client, snap)
		}
	}
}

// SyncAll fetches every catalog kind in parallel, one worker per kind.
func SyncAll(ctx context.Context, client *upstream.Client, snap *catalog.Snapshot) {
	var wg gosync.WaitGroup
	for _, kind := range model.Kinds {
		wg.Add(1)
		go func(k model.Kind) {
			defer wg.Done()
			if err := syncKind(ctx, client, snap, k); err != nil {
				log.Printf("Sync: %s: %v", k, err)
			}
		}(kind)
	}
	wg.Wait()
}

// syncKind fetches one kind, keeps only valid listings, swaps the
// snapshot slice and emits one catalog.accepted event per listing.
func syncKind(ctx context.Context, client *upstream.Client, snap *catalog.Snapshot, kind model.Kind) error {
	items, err := client.Listings(ctx, kind)
	if err != nil {
		return err
	}

	valid := make([]model.Listing, 0, len(items))
	for _, it := range items {
		if reason := validateListing(it); reason != "" {
			log.Printf("Sync: rejected %s listing %q: %s", kind, it.ID, reason)
			continue
		}
		valid = append(valid, it)
	}

	snap.Replace(kind, valid)
	log.Printf("Sync: %s snapshot replaced with %d listings", kind, len(valid))

	ts := time.Now().UTC().Format(time.RFC3339Nano)
	for _, it := range valid {
		evt := model.CatalogAccepted{
			Kind:      kind,
			ListingID: it.ID,
			Category:  it.Category,
			Timestamp: ts,
		}
		if err := kstream.PublishCatalogAccepted(ctx, evt); err != nil {
			log.Printf("Sync: publish accepted for %s/%s: %v", kind, it.ID, err)
		}
	}
	return nil
}

// validateListing performs record-level validation; an invalid listing is
// dropped, the rest of the batch continues.
func validateListing(it model.Listing) (rejectReason string) {
	if it.ID == "" {
		return "listing.id missing"
	}
	if it.Title == "" {
		return "listing.title missing"
	}
	if it.Category == "" {
		return "listing.category missing"
	}
	if it.Price < 0 {
		return "listing.price negative"
	}
	return ""
}
