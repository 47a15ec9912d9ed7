package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"holdco-backend/internal/model"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadSeed reads JSONL listing fixtures (one listing per line) from the
// seed directory and installs them into the snapshot. Used for local
// development and whenever the content upstream is unreachable at boot.
// File layout: <dir>/<kind>.jsonl.
func LoadSeed(snap *Snapshot) error {
	dir := getenv("SEED_DIR", "./data/seed")

	loaded := 0
	for _, kind := range model.Kinds {
		fpath := filepath.Join(dir, fmt.Sprintf("%s.jsonl", kind))
		data, err := os.ReadFile(fpath)
		if err != nil {
			continue // kind has no seed file
		}

		items := []model.Listing{}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var it model.Listing
			if err := json.Unmarshal([]byte(line), &it); err != nil {
				continue // skip malformed lines, keep the rest
			}
			it.Kind = kind
			items = append(items, it)
		}
		snap.Replace(kind, items)
		loaded += len(items)
	}

	if loaded == 0 {
		return fmt.Errorf("no seed listings found under %s", dir)
	}
	return nil
}
