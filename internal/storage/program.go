package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/misterclayt0n/prescribe/internal/models"
)

// SaveProgram upserts a personalized program. The whole program, including
// performed sets, is kept as one JSON document.
func (s *Storage) SaveProgram(ctx context.Context, p *models.PersonalizedProgram) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode program: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO programs (id, user_id, template_id, status, data, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                status = excluded.status,
                data = excluded.data,
                updated_at = excluded.updated_at`,
		p.ID,
		p.UserID,
		p.TemplateID,
		p.Status.String(),
		string(data),
		formatTime(p.CreatedAt),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save program: %w", err)
	}
	return nil
}

func (s *Storage) GetProgram(ctx context.Context, id string) (*models.PersonalizedProgram, error) {
	var data string
	err := s.DB.QueryRowContext(ctx, `SELECT data FROM programs WHERE id = ?`, id).Scan(&data)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("program %q", id))
	}
	return decodeProgram(data)
}

// GetActiveProgram returns the most recently created active program of a user.
func (s *Storage) GetActiveProgram(ctx context.Context, userID string) (*models.PersonalizedProgram, error) {
	var data string
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM programs
            WHERE user_id = ? AND status = ?
            ORDER BY created_at DESC LIMIT 1`,
		userID, models.StatusActive.String(),
	).Scan(&data)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("active program for %q", userID))
	}
	return decodeProgram(data)
}

func decodeProgram(data string) (*models.PersonalizedProgram, error) {
	var p models.PersonalizedProgram
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	return &p, nil
}

// ListPrograms returns a user's programs, newest first.
func (s *Storage) ListPrograms(ctx context.Context, userID string) ([]*models.PersonalizedProgram, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT data FROM programs WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var out []*models.PersonalizedProgram
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		p, err := decodeProgram(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
