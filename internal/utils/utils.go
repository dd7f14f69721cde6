package utils

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/prescribe/internal/models"
)

// ParseTemplateFromTOML reads a template file without storing it.
func ParseTemplateFromTOML(path string) (*models.ProgramTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw models.TemplateTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.ToTemplate("")
}

// ParseProfileFromTOML reads and validates a profile file.
func ParseProfileFromTOML(path string) (*models.StrengthProfile, error) {
	var p models.StrengthProfile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ExerciseID is the cache key for an exercise name: trimmed, lowercased and
// with inner whitespace collapsed.
func ExerciseID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
