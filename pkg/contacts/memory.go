package contacts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and the demo. It applies
// the same user scoping and not-found semantics as the SQL-backed store.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Contact
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		rows:   make(map[int64]Contact),
		now:    time.Now,
	}
}

func (s *MemoryStore) List(ctx context.Context, userID int64) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contact, 0)
	for _, c := range s.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, userID int64, in Input) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	c := Contact{
		ID:        s.nextID,
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.rows[c.ID] = c
	return c, nil
}

func (s *MemoryStore) Update(ctx context.Context, userID, id int64, upd Updates) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok || c.UserID != userID {
		return Contact{}, ErrNotFound
	}
	if upd.FirstName != nil {
		c.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		c.LastName = *upd.LastName
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Notes != nil {
		c.Notes = *upd.Notes
	}
	c.UpdatedAt = s.now()
	s.rows[id] = c
	return c, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *MemoryStore) FindByName(ctx context.Context, userID int64, firstName, lastName string) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contact, 0)
	for _, c := range s.rows {
		if c.UserID != userID {
			continue
		}
		if !strings.EqualFold(c.FirstName, firstName) {
			continue
		}
		if lastName != "" && !strings.EqualFold(c.LastName, lastName) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
