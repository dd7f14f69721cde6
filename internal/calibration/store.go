package calibration

import "sync"

// MaxStore is the per-exercise maximum cache. It is the single place the
// latest estimated maximum lives; persistence is up to the host, which can
// Load it at startup and flush on every write. Only positive maxima are
// kept: storing zero or less removes the entry.
type MaxStore struct {
	mu     sync.RWMutex
	maxima map[string]float64
}

func NewMaxStore() *MaxStore {
	return &MaxStore{maxima: make(map[string]float64)}
}

// Get returns the cached maximum and whether one exists.
func (s *MaxStore) Get(exerciseID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.maxima[exerciseID]
	return v, ok
}

func (s *MaxStore) Set(exerciseID string, max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(exerciseID, max)
}

// Swap stores max and returns the value it replaced, in one step.
func (s *MaxStore) Swap(exerciseID string, max float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.maxima[exerciseID]
	s.put(exerciseID, max)
	return prev, ok
}

func (s *MaxStore) put(exerciseID string, max float64) {
	if max <= 0 {
		delete(s.maxima, exerciseID)
		return
	}
	s.maxima[exerciseID] = max
}

// Load merges values into the cache, overwriting existing keys.
func (s *MaxStore) Load(values map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.put(k, v)
	}
}

// Snapshot returns a copy of the cache.
func (s *MaxStore) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.maxima))
	for k, v := range s.maxima {
		out[k] = v
	}
	return out
}

func (s *MaxStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.maxima)
}
