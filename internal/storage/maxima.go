package storage

import (
	"context"
	"fmt"
	"time"
)

// LoadMaxima returns a user's estimated-maximum cache keyed by exercise id.
func (s *Storage) LoadMaxima(ctx context.Context, userID string) (map[string]float64, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT exercise_id, max FROM maxima WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query maxima: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var max float64
		if err := rows.Scan(&id, &max); err != nil {
			return nil, fmt.Errorf("failed to scan maximum: %w", err)
		}
		out[id] = max
	}
	return out, rows.Err()
}

// SaveMaxima upserts every entry of a user's cache in one transaction.
func (s *Storage) SaveMaxima(ctx context.Context, userID string, maxima map[string]float64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for id, max := range maxima {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO maxima (user_id, exercise_id, max, updated_at)
                VALUES (?, ?, ?, ?)
                ON CONFLICT(user_id, exercise_id) DO UPDATE SET
                    max = excluded.max,
                    updated_at = excluded.updated_at`,
			userID, id, max, now,
		)
		if err != nil {
			return fmt.Errorf("failed to save maximum for %q: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) SaveMaximum(ctx context.Context, userID, exerciseID string, max float64) error {
	return s.SaveMaxima(ctx, userID, map[string]float64{exerciseID: max})
}
