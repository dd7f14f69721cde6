package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/misterclayt0n/prescribe/internal/models"
)

// ImportTemplate parses a TOML template and stores it. Re-importing a
// template with the same name replaces it and keeps its id.
func (s *Storage) ImportTemplate(ctx context.Context, tomlData []byte) (*models.ProgramTemplate, error) {
	var raw models.TemplateTOML
	if err := toml.Unmarshal(tomlData, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}

	id := uuid.New().String()
	var existing string
	err := s.DB.QueryRowContext(ctx, `SELECT id FROM templates WHERE name = ?`, raw.Name).Scan(&existing)
	switch {
	case err == nil:
		id = existing
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to look up template: %w", err)
	}

	tmpl, err := raw.ToTemplate(id)
	if err != nil {
		return nil, err
	}
	if err := s.PutTemplate(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *Storage) PutTemplate(ctx context.Context, tmpl *models.ProgramTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO templates (id, name, description, data, created_at)
            VALUES (?, ?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                name = excluded.name,
                description = excluded.description,
                data = excluded.data`,
		tmpl.ID,
		tmpl.Name,
		tmpl.Description,
		string(data),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	s.logger.Debug("template saved", "id", tmpl.ID, "name", tmpl.Name)
	return nil
}

// GetTemplate looks a template up by id first and by name second.
func (s *Storage) GetTemplate(ctx context.Context, idOrName string) (*models.ProgramTemplate, error) {
	var data string
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM templates WHERE id = ? OR name = ? ORDER BY id = ? DESC LIMIT 1`,
		idOrName, idOrName, idOrName,
	).Scan(&data)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("template %q", idOrName))
	}

	var tmpl models.ProgramTemplate
	if err := json.Unmarshal([]byte(data), &tmpl); err != nil {
		return nil, fmt.Errorf("failed to decode template %q: %w", idOrName, err)
	}
	return &tmpl, nil
}

type TemplateSummary struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

func (s *Storage) ListTemplates(ctx context.Context) ([]TemplateSummary, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var out []TemplateSummary
	for rows.Next() {
		var t TemplateSummary
		var desc sql.NullString
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &desc, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		t.Description = desc.String
		t.CreatedAt = parseTime(createdAt)
		out = append(out, t)
	}
	return out, rows.Err()
}
