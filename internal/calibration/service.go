// Package calibration runs max-effort retest (ILB) sessions and keeps the
// per-exercise maximum cache current.
package calibration

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
)

var (
	ErrSessionNotActive = errors.New("no active test session")
	ErrSessionActive    = errors.New("test session already active")
	ErrInvalidAttempt   = errors.New("invalid AMRAP attempt")
)

type State int

const (
	StateIdle State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Attempt is one AMRAP set performed at a test weight.
type Attempt struct {
	ExerciseID   string
	ExerciseName string
	Weight       float64
	Reps         int
}

// Service owns one test session and writes into a MaxStore. A Service is
// meant per athlete; all methods are safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	store   *MaxStore
	state   State
	results []models.ILBTestResult

	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store *MaxStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartSession clears previous results and opens a new session. Starting
// while a session is active discards its results.
func (s *Service) StartSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.state = StateActive
	s.logger.Debug("test session started")
}

// Resume reopens a session that was interrupted, e.g. between two CLI
// invocations, with the results it had already recorded.
func (s *Service) Resume(results []models.ILBTestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateActive {
		return ErrSessionActive
	}
	s.results = append([]models.ILBTestResult(nil), results...)
	s.state = StateActive
	s.logger.Debug("test session resumed", "results", len(results))
	return nil
}

// ProcessAMRAPResult estimates a new maximum from the attempt, compares it
// with the cached one and writes it back. Later reads, including later
// attempts in the same session, see the new value.
func (s *Service) ProcessAMRAPResult(a Attempt) (models.ILBTestResult, error) {
	if a.ExerciseID == "" || a.Weight <= 0 || a.Reps <= 0 {
		return models.ILBTestResult{}, fmt.Errorf("%w: exercise %q, %.1f kg x %d",
			ErrInvalidAttempt, a.ExerciseID, a.Weight, a.Reps)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return models.ILBTestResult{}, ErrSessionNotActive
	}

	result := models.ILBTestResult{
		ID:           s.newID(),
		ExerciseID:   a.ExerciseID,
		ExerciseName: a.ExerciseName,
		TestWeight:   a.Weight,
		Reps:         a.Reps,
		NewMax:       onerm.Estimate1RM(a.Weight, a.Reps),
		TestedAt:     s.now(),
	}

	if prev, ok := s.store.Swap(a.ExerciseID, result.NewMax); ok {
		abs := result.NewMax - prev
		pct := abs / prev * 100
		result.PreviousMax = &prev
		result.ChangeAbsolute = &abs
		result.ChangePercent = &pct
	}
	s.results = append(s.results, result)

	s.logger.Debug("amrap processed",
		"exercise", a.ExerciseID,
		"weight", a.Weight,
		"reps", a.Reps,
		"new_max", result.NewMax,
		"outcome", result.Outcome().String(),
	)
	return result, nil
}

// Results returns a copy of the results recorded so far.
func (s *Service) Results() []models.ILBTestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ILBTestResult(nil), s.results...)
}

// EndSession closes the session and hands back its results. A new session
// has to be started before more attempts are accepted.
func (s *Service) EndSession() ([]models.ILBTestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return nil, ErrSessionNotActive
	}
	results := s.results
	s.results = nil
	s.state = StateClosed
	s.logger.Debug("test session closed", "results", len(results))
	return results, nil
}

// SelectBestAMRAP returns the result with the highest estimated maximum, or
// nil for an empty list. Ties keep the earlier result.
func SelectBestAMRAP(results []models.ILBTestResult) *models.ILBTestResult {
	var best *models.ILBTestResult
	for i := range results {
		if best == nil || results[i].NewMax > best.NewMax {
			best = &results[i]
		}
	}
	return best
}
