package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/misterclayt0n/prescribe/internal/models"
)

// SaveTestResults appends a user's finished retests to the history table.
// Results already stored under the same id are left untouched.
func (s *Storage) SaveTestResults(ctx context.Context, userID string, results []models.ILBTestResult) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range results {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO ilb_results
                (id, user_id, exercise_id, exercise_name, test_weight, reps,
                 previous_max, new_max, change_absolute, change_percent, tested_at)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID,
			userID,
			r.ExerciseID,
			r.ExerciseName,
			r.TestWeight,
			r.Reps,
			nullFloat(r.PreviousMax),
			r.NewMax,
			nullFloat(r.ChangeAbsolute),
			nullFloat(r.ChangePercent),
			formatTime(r.TestedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to save result for %q: %w", r.ExerciseID, err)
		}
	}
	return tx.Commit()
}

// ListTestResults returns a user's results, newest first. An empty
// exerciseID lists every exercise; limit <= 0 means no limit.
func (s *Storage) ListTestResults(ctx context.Context, userID, exerciseID string, limit int) ([]models.ILBTestResult, error) {
	query := `SELECT id, exercise_id, exercise_name, test_weight, reps,
                previous_max, new_max, change_absolute, change_percent, tested_at
            FROM ilb_results WHERE user_id = ?`
	args := []any{userID}
	if exerciseID != "" {
		query += ` AND exercise_id = ?`
		args = append(args, exerciseID)
	}
	query += ` ORDER BY tested_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []models.ILBTestResult
	for rows.Next() {
		var (
			r                    models.ILBTestResult
			name                 sql.NullString
			prev, absChg, pctChg sql.NullFloat64
			testedAt             string
		)
		if err := rows.Scan(&r.ID, &r.ExerciseID, &name, &r.TestWeight, &r.Reps,
			&prev, &r.NewMax, &absChg, &pctChg, &testedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.ExerciseName = name.String
		r.PreviousMax = floatPtr(prev)
		r.ChangeAbsolute = floatPtr(absChg)
		r.ChangePercent = floatPtr(pctChg)
		r.TestedAt = parseTime(testedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
