package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/prescribe/internal/config"
	"github.com/misterclayt0n/prescribe/internal/models"
)

// SessionState is a max-test session between two CLI invocations.
type SessionState struct {
	UserID    string                 `toml:"user_id"`
	StartedAt time.Time              `toml:"started_at"`
	Results   []models.ILBTestResult `toml:"results"`
}

func getSessionPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "current_ilb.toml"), nil
}

func SaveSessionState(state *SessionState) error {
	path, err := getSessionPath()
	if err != nil {
		return err
	}
	return saveSessionState(path, state)
}

func LoadSessionState() (*SessionState, error) {
	path, err := getSessionPath()
	if err != nil {
		return nil, err
	}
	return loadSessionState(path)
}

func ClearSessionState() error {
	path, err := getSessionPath()
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func SessionExists() bool {
	path, err := getSessionPath()
	if err != nil {
		return false
	}
	return sessionExists(path)
}

func saveSessionState(path string, state *SessionState) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(state)
}

func loadSessionState(path string) (*SessionState, error) {
	var state SessionState
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func sessionExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
