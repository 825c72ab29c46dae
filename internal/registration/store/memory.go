package store

import (
	"context"
	"sync"

	"regdesk/internal/registration/models"
	"regdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps registrants in process memory. Used by tests and as the
// development fallback when no database is configured.
type InMemoryStore struct {
	mu            sync.RWMutex
	byEmail       map[string]*models.Registrant
	byAdmissionNo map[string]*models.Registrant
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byEmail:       make(map[string]*models.Registrant),
		byAdmissionNo: make(map[string]*models.Registrant),
	}
}

func (s *InMemoryStore) FindByEmailOrAdmissionNo(_ context.Context, email, admissionNo string) (*models.Registrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.byEmail[email]; ok {
		return copied(r), nil
	}
	if r, ok := s.byAdmissionNo[admissionNo]; ok {
		return copied(r), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Create(_ context.Context, registrant *models.Registrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[registrant.Email]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byAdmissionNo[registrant.AdmissionNo]; exists {
		return sentinel.ErrConflict
	}

	stored := copied(registrant)
	s.byEmail[stored.Email] = stored
	s.byAdmissionNo[stored.AdmissionNo] = stored
	return nil
}

// Count reports the number of stored registrants. Test helper.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}

func copied(r *models.Registrant) *models.Registrant {
	c := *r
	return &c
}
