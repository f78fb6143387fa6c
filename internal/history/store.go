package history

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/emandor/studybuddy_service/internal/model"
	"github.com/emandor/studybuddy_service/internal/telemetry"
)

// DefaultLimit caps a history read when the caller does not say otherwise.
const DefaultLimit = 20

// Store is the append-only writer and newest-first reader of a user's past
// generations.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Append writes one record. Without an identity it silently does nothing:
// anonymous generations are never persisted.
func (s *Store) Append(ctx context.Context, ownerID int64, kind, input string, output any) (string, error) {
	if ownerID == 0 {
		return "", nil
	}
	raw, err := json.Marshal(output)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, owner_id, kind, input_text, output_json, created_at)
		VALUES (?, ?, ?, ?, ?, NOW(3))`,
		id, ownerID, kind, input, raw)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns up to limit of the owner's records, newest first. The primary
// path is the indexed ordered query; if that fails (index still
// provisioning), fall back to an unordered scan sorted here. Both paths must
// yield the same records.
func (s *Store) List(ctx context.Context, ownerID int64, limit int) ([]model.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var recs []model.HistoryRecord
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, owner_id, kind, input_text, output_json, created_at
		FROM history WHERE owner_id=?
		ORDER BY created_at DESC LIMIT ?`,
		ownerID, limit)
	if err == nil {
		return recs, nil
	}

	log := telemetry.L()
	log.Warn().Err(err).Int64("owner_id", ownerID).Msg("history_ordered_query_failed")

	recs = nil
	if err := s.db.SelectContext(ctx, &recs, `
		SELECT id, owner_id, kind, input_text, output_json, created_at
		FROM history WHERE owner_id=?`,
		ownerID); err != nil {
		return nil, err
	}
	return newestFirst(recs, limit), nil
}

func newestFirst(recs []model.HistoryRecord, limit int) []model.HistoryRecord {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
