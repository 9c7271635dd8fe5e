package auth

import (
	"context"
	"sync"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// memoryUserStore is an in-memory UserStore for tests.
type memoryUserStore struct {
	mu      sync.Mutex
	records map[string]*Principal
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{records: make(map[string]*Principal)}
}

func (s *memoryUserStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.records {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *memoryUserStore) FindByFederatedID(ctx context.Context, federatedID string) (*Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.records {
		if p.FederatedID != "" && p.FederatedID == federatedID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *memoryUserStore) FindByID(ctx context.Context, id string) (*Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.records[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (s *memoryUserStore) Create(ctx context.Context, p *Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing.Email == p.Email {
			return shared.ErrDuplicateEmail
		}
	}
	clone := *p
	s.records[p.ID] = &clone
	return nil
}

func (s *memoryUserStore) LinkFederatedID(ctx context.Context, id, federatedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[id]
	if !ok || p.FederatedID != "" {
		return shared.ErrNotFound
	}
	p.FederatedID = federatedID
	return nil
}

func (s *memoryUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memoryUserStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

func (s *memoryUserStore) setRole(id string, role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.records[id]; ok {
		p.Role = role
	}
}

// memoryAdminStore is an in-memory AdminStore for tests. The resolver never
// writes to it, matching the out-of-band provisioning contract.
type memoryAdminStore struct {
	records map[string]*Principal
}

func newMemoryAdminStore() *memoryAdminStore {
	return &memoryAdminStore{records: make(map[string]*Principal)}
}

func (s *memoryAdminStore) add(p *Principal) {
	clone := *p
	clone.Origin = OriginAdmin
	s.records[p.ID] = &clone
}

func (s *memoryAdminStore) FindByIdentifier(ctx context.Context, identifier string) (*Principal, error) {
	for _, p := range s.records {
		if p.DisplayName == identifier || p.Email == identifier {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *memoryAdminStore) FindByID(ctx context.Context, id string) (*Principal, error) {
	if p, ok := s.records[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

var (
	_ UserStore  = (*memoryUserStore)(nil)
	_ AdminStore = (*memoryAdminStore)(nil)
)
