package mailing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemStore struct {
	mu      sync.RWMutex
	byEmail map[string]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{byEmail: make(map[string]Entry)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Add(ctx context.Context, email string) (Entry, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return Entry{}, ErrDuplicateEmail
	}

	e := Entry{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	s.byEmail[email] = e
	return e, nil
}

func (s *MemStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byEmail[normalizeEmail(email)]
	return e, ok, nil
}
