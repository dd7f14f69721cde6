package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/misterclayt0n/prescribe/internal/models"
)

// PutProfile validates and upserts a profile, stamping UpdatedAt.
func (s *Storage) PutProfile(ctx context.Context, p *models.StrengthProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id, data, updated_at)
            VALUES (?, ?, ?)
            ON CONFLICT(user_id) DO UPDATE SET
                data = excluded.data,
                updated_at = excluded.updated_at`,
		p.UserID,
		string(data),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.logger.Debug("profile saved", "user", p.UserID)
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.StrengthProfile, error) {
	var data string
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE user_id = ?`, userID,
	).Scan(&data)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("profile %q", userID))
	}

	var p models.StrengthProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %q: %w", userID, err)
	}
	return &p, nil
}
