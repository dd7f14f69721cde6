package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// dumpTables are the tables a TOML dump carries, in insert order.
var dumpTables = []string{"profiles", "maxima", "ilb_results", "templates", "programs"}

// Dump reads every non-empty engine table into rows of column name to value.
func (s *Storage) Dump(ctx context.Context) (map[string][]map[string]any, error) {
	dump := make(map[string][]map[string]any, len(dumpTables))

	for _, table := range dumpTables {
		rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s;", table))
		if err != nil {
			return nil, fmt.Errorf("querying table %s: %w", table, err)
		}

		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("getting columns for table %s: %w", table, err)
		}

		var tableData []map[string]any
		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning row in table %s: %w", table, err)
			}

			row := make(map[string]any, len(cols))
			for i, col := range cols {
				switch v := values[i].(type) {
				case nil:
					// TOML has no null; a missing key reads back as NULL.
				case []byte:
					row[col] = string(v)
				default:
					row[col] = v
				}
			}
			tableData = append(tableData, row)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating table %s: %w", table, err)
		}
		if len(tableData) > 0 {
			dump[table] = tableData
		}
	}
	return dump, nil
}

// ExportDBToTOML writes Dump to outputPath.
func (s *Storage) ExportDBToTOML(ctx context.Context, outputPath string) error {
	dump, err := s.Dump(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	s.logger.Info("database exported", "path", outputPath)
	return nil
}

// ImportDBFromTOML rebuilds the engine tables from a dump written by
// ExportDBToTOML. Unknown tables are rejected.
func (s *Storage) ImportDBFromTOML(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", filePath, err)
	}

	var dump map[string][]map[string]any
	if _, err := toml.Decode(string(data), &dump); err != nil {
		return fmt.Errorf("decoding TOML: %w", err)
	}
	return s.Restore(ctx, dump)
}

// Restore clears every engine table and inserts the rows of dump, in a single
// transaction.
func (s *Storage) Restore(ctx context.Context, dump map[string][]map[string]any) error {
	for table := range dump {
		if !slices.Contains(dumpTables, table) {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range dumpTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}

		for _, row := range dump[table] {
			columns := make([]string, 0, len(row))
			for col := range row {
				if !isIdent(col) {
					return fmt.Errorf("invalid column %q in table %s", col, table)
				}
				columns = append(columns, col)
			}
			slices.Sort(columns)

			placeholders := make([]string, len(columns))
			values := make([]any, len(columns))
			for i, col := range columns {
				placeholders[i] = "?"
				values[i] = row[col]
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
				table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				return fmt.Errorf("inserting into table %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	s.logger.Info("database rebuilt from dump", "tables", len(dump))
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
