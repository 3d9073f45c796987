package generation

import (
	"sync"

	"github.com/ternarybob/qanda/internal/models"
)

// Session holds the current result for one UI session.
// At most one request is in flight; starting a request clears the previous
// result so stale data is never served while a new one is pending.
type Session struct {
	mu       sync.Mutex
	current  *models.GenerationResult
	inFlight bool
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Begin marks a request in flight and clears the current result.
// Returns models.ErrBusy if a request is already running.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return models.ErrBusy
	}
	s.inFlight = true
	s.current = nil
	return nil
}

// Complete stores a copy of result as current and ends the in-flight request
func (s *Session) Complete(result *models.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = cloneResult(result)
	s.inFlight = false
}

// Fail ends the in-flight request leaving the result cleared
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.inFlight = false
}

// Current returns a copy of the current result
func (s *Session) Current() (*models.GenerationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, false
	}
	return cloneResult(s.current), true
}

// InFlight reports whether a request is running
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Clear discards the current result
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func cloneResult(r *models.GenerationResult) *models.GenerationResult {
	c := *r
	c.QAList = make([]models.QAPair, len(r.QAList))
	copy(c.QAList, r.QAList)
	c.Sources = make([]models.Source, len(r.Sources))
	copy(c.Sources, r.Sources)
	return &c
}
