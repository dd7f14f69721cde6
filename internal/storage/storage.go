package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

var ErrNotFound = errors.New("not found")

type Storage struct {
	DB     *sql.DB
	logger *slog.Logger
}

type Option func(*Storage)

func WithLogger(l *slog.Logger) Option {
	return func(s *Storage) { s.logger = l }
}

// NewStorage opens the database behind connString and makes sure the schema
// exists. Local "file:" and ":memory:" strings go through sqlite3, anything
// else (libsql://, https://, wss://) through the libsql client.
func NewStorage(connString string, opts ...Option) (*Storage, error) {
	if connString == "" {
		return nil, errors.New("database connection string is empty")
	}

	driver := driverFor(connString)
	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if driver == "sqlite3" {
		// One connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := InitializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	st := &Storage{DB: db, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(st)
	}
	st.logger.Debug("database ready", "driver", driver)
	return st, nil
}

func driverFor(connString string) string {
	if strings.HasPrefix(connString, "file:") || connString == ":memory:" {
		return "sqlite3"
	}
	return "libsql"
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// InitializeDB creates every table the engine persists to, one statement per
// Exec.
func InitializeDB(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id TEXT PRIMARY KEY,
            data TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS maxima (
            user_id TEXT NOT NULL,
            exercise_id TEXT NOT NULL,
            max REAL NOT NULL,
            updated_at TEXT NOT NULL,
            PRIMARY KEY (user_id, exercise_id)
        )`,
		`CREATE TABLE IF NOT EXISTS ilb_results (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            exercise_id TEXT NOT NULL,
            exercise_name TEXT,
            test_weight REAL NOT NULL,
            reps INTEGER NOT NULL,
            previous_max REAL,
            new_max REAL NOT NULL,
            change_absolute REAL,
            change_percent REAL,
            tested_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_ilb_results_exercise ON ilb_results (user_id, exercise_id, tested_at)`,
		`CREATE TABLE IF NOT EXISTS templates (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT,
            data TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS programs (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            template_id TEXT NOT NULL,
            status TEXT NOT NULL,
            data TEXT NOT NULL,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// nullFloat maps an optional value onto a nullable column.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
