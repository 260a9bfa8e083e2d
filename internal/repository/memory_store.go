package repository

import (
	"context"
	"encoding/json"
	"sync"

	"storefront-service/internal/models"
)

// MemorySessionStore keeps session state in process memory. It is the
// degraded-mode fallback when Redis is not configured and the store used
// by tests. Values are held as serialized JSON so the contract matches
// the Redis store byte for byte.
type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: make(map[string][]byte)}
}

func (s *MemorySessionStore) load(sessionID, key string, dest interface{}) bool {
	s.mu.RLock()
	data, ok := s.data[sessionKey(sessionID, key)]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *MemorySessionStore) save(sessionID, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.data[sessionKey(sessionID, key)] = data
	s.mu.Unlock()
}

func (s *MemorySessionStore) take(sessionID, key string, dest interface{}) bool {
	k := sessionKey(sessionID, key)
	s.mu.Lock()
	data, ok := s.data[k]
	if ok {
		delete(s.data, k)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *MemorySessionStore) LoadCart(_ context.Context, sessionID string) []models.CartLine {
	var lines []models.CartLine
	if !s.load(sessionID, KeyCart, &lines) {
		return []models.CartLine{}
	}
	return lines
}

func (s *MemorySessionStore) SaveCart(_ context.Context, sessionID string, lines []models.CartLine) {
	s.save(sessionID, KeyCart, lines)
}

func (s *MemorySessionStore) LoadStaging(_ context.Context, sessionID string) []models.CheckoutItem {
	var items []models.CheckoutItem
	if !s.load(sessionID, KeyStaging, &items) {
		return []models.CheckoutItem{}
	}
	return items
}

func (s *MemorySessionStore) SaveStaging(_ context.Context, sessionID string, items []models.CheckoutItem) {
	s.save(sessionID, KeyStaging, items)
}

func (s *MemorySessionStore) PutDirectItem(_ context.Context, sessionID string, item models.CheckoutItem) {
	s.save(sessionID, KeyDirectItem, item)
}

func (s *MemorySessionStore) TakeDirectItem(_ context.Context, sessionID string) *models.CheckoutItem {
	var item models.CheckoutItem
	if !s.take(sessionID, KeyDirectItem, &item) {
		return nil
	}
	return &item
}

func (s *MemorySessionStore) PutCartTransfer(_ context.Context, sessionID string, lines []models.CartLine) {
	s.save(sessionID, KeyCartTransfer, lines)
}

func (s *MemorySessionStore) TakeCartTransfer(_ context.Context, sessionID string) []models.CartLine {
	var lines []models.CartLine
	if !s.take(sessionID, KeyCartTransfer, &lines) {
		return nil
	}
	return lines
}
