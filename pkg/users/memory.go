package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process user Store for tests and the demo.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, rows: make(map[int64]User)}
}

func (s *MemoryStore) Create(ctx context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrEmailTaken
		}
	}
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.nextID++
	s.rows[u.ID] = u
	return u, nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

var _ Store = (*MemoryStore)(nil)
