package model

import (
	"encoding/json"
	"time"
)

// HistoryRecord is one persisted generation. Records are append-only: the
// service never updates or deletes them once written.
type HistoryRecord struct {
	ID        string          `db:"id" json:"id"`
	OwnerID   int64           `db:"owner_id" json:"-"`
	Kind      string          `db:"kind" json:"kind"`
	Input     string          `db:"input_text" json:"input"`
	Output    json.RawMessage `db:"output_json" json:"output"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
