package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/notetodo/internal/models"
)

// GetWeight returns the weight aggregate owned by ownerID.
func (s *Queries) GetWeight(ctx context.Context, ownerID string) (models.Weight, error) {
	var (
		w                models.Weight
		profile, records string
		created, updated time.Time
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT id, owner_id, profile, records, created_at, updated_at
		FROM weights WHERE owner_id = ?
	`, ownerID).Scan(&w.ID, &w.Owner, &profile, &records, &created, &updated)
	if err != nil {
		return models.Weight{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(profile), &w.Profile); err != nil {
		return models.Weight{}, fmt.Errorf("store: decode weight profile: %w", err)
	}
	if err := json.Unmarshal([]byte(records), &w.Records); err != nil {
		return models.Weight{}, fmt.Errorf("store: decode weight records: %w", err)
	}
	if w.Records == nil {
		w.Records = []models.WeightRecord{}
	}
	w.CreatedAt = created.UTC()
	w.UpdatedAt = updated.UTC()
	return w, nil
}

// SaveWeight inserts or replaces the aggregate for w.Owner as a single document write.
func (s *Queries) SaveWeight(ctx context.Context, w models.Weight) error {
	if w.Records == nil {
		w.Records = []models.WeightRecord{}
	}
	profile, err := json.Marshal(w.Profile)
	if err != nil {
		return fmt.Errorf("store: encode weight profile: %w", err)
	}
	records, err := json.Marshal(w.Records)
	if err != nil {
		return fmt.Errorf("store: encode weight records: %w", err)
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO weights (id, owner_id, profile, records, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			profile    = excluded.profile,
			records    = excluded.records,
			updated_at = excluded.updated_at
	`, w.ID, w.Owner, string(profile), string(records), w.CreatedAt.UTC(), w.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("store: save weight: %w", err)
	}
	return nil
}

// DeleteWeight removes the aggregate for ownerID. Missing aggregates are not an error.
func (s *Queries) DeleteWeight(ctx context.Context, ownerID string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM weights WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("store: delete weight: %w", err)
	}
	return nil
}
