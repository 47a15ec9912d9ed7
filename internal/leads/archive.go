package leads

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holdco-backend/internal/model"
)

// ArchiveLead appends an accepted lead to the durable JSONL archive, one
// file per day. The archive is the replayable record behind the database:
// if Postgres is restored from backup, the archive fills the gap.
func ArchiveLead(evt model.LeadAccepted) error {
	dir := getenv("LEAD_ARCHIVE_DIR", "./data/leads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fpath := filepath.Join(dir, fmt.Sprintf("leads_%s.jsonl", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	record := map[string]any{
		"lead_id":     evt.LeadID,
		"kind":        evt.Kind,
		"name":        evt.Name,
		"email":       evt.Email,
		"payload":     json.RawMessage(evt.Payload),
		"archived_at": time.Now().UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
