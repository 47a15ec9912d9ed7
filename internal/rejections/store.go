package rejections

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holdco-backend/internal/forms"
)

// WriteRejection appends a rejected submission to the durable rejections
// log, one file per day. Rejections never reach Postgres or Kafka; the log
// exists so support can answer "my form didn't go through" questions.
func WriteRejection(formKind, remoteAddr string, fieldErrs []forms.FieldError) error {
	dir := getenv("REJECTIONS_DIR", "./data/rejections")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fpath := filepath.Join(dir, fmt.Sprintf("rejections_%s.jsonl", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	record := map[string]any{
		"form":        formKind,
		"remote_addr": remoteAddr,
		"errors":      fieldErrs,
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
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
