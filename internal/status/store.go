// Package status holds the authoritative current-state record for every
// known proof job. It records current state only; there is no history.
package status

import (
	"errors"
	"sync"

	"github.com/naz3eh/zkp-service/internal/model"
)

// ErrNotFound is returned when a job id is unknown to the store.
var ErrNotFound = errors.New("proof job not found")

// ErrInvalidTransition is returned when a status transition is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// Stats holds aggregate counts of jobs by status.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Store defines the status operations for proof jobs. Implementations must
// be safe for concurrent use; readers observe the most recent write.
type Store interface {
	// Create registers a new job as pending. It must be called before the
	// job is made visible to any worker.
	Create(id string) error

	// Get returns the current status of a job, or ErrNotFound.
	Get(id string) (model.ProofStatus, error)

	// Set replaces the status of a job. Transitions must follow
	// pending → in_progress → completed/failed.
	Set(id string, st model.ProofStatus) error

	// Delete removes a job record. It exists only so that a submission
	// rejected at enqueue time can roll back its pending record.
	Delete(id string)

	// Stats returns aggregate counts by status.
	Stats() Stats
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store with an in-process map. Entries are
// independent and operations are O(1), so a single lock is sufficient.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]model.ProofStatus
}

// NewMemoryStore creates an empty in-memory status store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]model.ProofStatus),
	}
}

// Create registers id as pending. Registering an id twice is a programming
// error and is reported as an invalid transition.
func (s *MemoryStore) Create(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; ok {
		return ErrInvalidTransition
	}
	s.jobs[id] = model.ProofStatus{State: model.StatusPending}
	return nil
}

// Get returns the current status of a job.
func (s *MemoryStore) Get(id string) (model.ProofStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.jobs[id]
	if !ok {
		return model.ProofStatus{}, ErrNotFound
	}
	return st, nil
}

// Set replaces the status of a job, enforcing the transition table.
func (s *MemoryStore) Set(id string, st model.ProofStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if !model.ValidTransition(cur.State, st.State) {
		return ErrInvalidTransition
	}
	s.jobs[id] = st
	return nil
}

// Delete removes a job record.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// Stats returns aggregate counts by status.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Total:    len(s.jobs),
		ByStatus: make(map[string]int),
	}
	for _, j := range s.jobs {
		st.ByStatus[j.State]++
	}
	return st
}
