package cartstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sangkips/licorera-api/internal/domain/cart"
	domainRepo "github.com/sangkips/licorera-api/internal/domain/repository"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	carts map[string]memoryEntry
	now   func() time.Time
}

// NewMemory returns an in-process cart store for single-instance deployments
// without redis. Carts are stored encoded so callers never share a value.
func NewMemory(ttl time.Duration) domainRepo.CartStore {
	return &memoryStore{ttl: ttl, carts: make(map[string]memoryEntry), now: time.Now}
}

func (s *memoryStore) Load(_ context.Context, key string) (*cart.Cart, error) {
	s.mu.Lock()
	entry, ok := s.carts[key]
	if ok && s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.carts, key)
		ok = false
	}
	s.mu.Unlock()

	c := cart.New()
	if !ok {
		return c, nil
	}
	if err := json.Unmarshal(entry.raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *memoryStore) Save(_ context.Context, key string, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[key] = memoryEntry{raw: raw, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}
