package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// Storage keys of the per-session key/value contract. Values are JSON
// serialized; the two slot keys are write-once, read-once-and-delete.
const (
	KeyCart         = "cart"
	KeyStaging      = "checkoutItems"
	KeyDirectItem   = "directCheckoutItem"
	KeyCartTransfer = "checkoutFromCart"
)

// SessionTTL bounds how long abandoned session state is kept around.
const SessionTTL = 30 * 24 * time.Hour

// SessionStore is the durable key/value contract backing the cart and
// checkout staging collections. Reads never fail from the caller's point
// of view: a missing key or corrupt value yields an empty collection.
// Write errors are logged and swallowed so the storefront degrades to
// session-only behavior instead of crashing.
type SessionStore interface {
	LoadCart(ctx context.Context, sessionID string) []models.CartLine
	SaveCart(ctx context.Context, sessionID string, lines []models.CartLine)

	LoadStaging(ctx context.Context, sessionID string) []models.CheckoutItem
	SaveStaging(ctx context.Context, sessionID string, items []models.CheckoutItem)

	// PutDirectItem stores the "buy now" slot; TakeDirectItem consumes it.
	// Take operations read and clear as one logical step, so a payload can
	// never be applied twice.
	PutDirectItem(ctx context.Context, sessionID string, item models.CheckoutItem)
	TakeDirectItem(ctx context.Context, sessionID string) *models.CheckoutItem

	PutCartTransfer(ctx context.Context, sessionID string, lines []models.CartLine)
	TakeCartTransfer(ctx context.Context, sessionID string) []models.CartLine
}

// NewSessionStore returns a Redis-backed store, or the in-memory
// fallback when no Redis client is available.
func NewSessionStore(client *redis.Client, logger *logrus.Logger) SessionStore {
	if logger == nil {
		logger = logrus.New()
	}
	entry := logger.WithField("component", "session-store")
	if client == nil {
		entry.Warn("Redis unavailable, session state is process-local only")
		return NewMemorySessionStore()
	}
	return &redisSessionStore{client: client, logger: entry}
}

type redisSessionStore struct {
	client *redis.Client
	logger *logrus.Entry
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("storefront:%s:%s", sessionID, key)
}

// load unmarshals the value at key into dest, treating absence and
// corruption as an empty read.
func (s *redisSessionStore) load(ctx context.Context, sessionID, key string, dest interface{}) bool {
	data, err := s.client.Get(ctx, sessionKey(sessionID, key)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to read session state")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Discarding corrupt session state")
		return false
	}
	return true
}

func (s *redisSessionStore) save(ctx context.Context, sessionID, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to serialize session state")
		return
	}
	if err := s.client.Set(ctx, sessionKey(sessionID, key), data, SessionTTL).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to persist session state")
	}
}

// take reads and deletes the value in one step (GETDEL).
func (s *redisSessionStore) take(ctx context.Context, sessionID, key string, dest interface{}) bool {
	data, err := s.client.GetDel(ctx, sessionKey(sessionID, key)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to consume session slot")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Discarding corrupt slot payload")
		return false
	}
	return true
}

func (s *redisSessionStore) LoadCart(ctx context.Context, sessionID string) []models.CartLine {
	var lines []models.CartLine
	if !s.load(ctx, sessionID, KeyCart, &lines) {
		return []models.CartLine{}
	}
	return lines
}

func (s *redisSessionStore) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) {
	s.save(ctx, sessionID, KeyCart, lines)
}

func (s *redisSessionStore) LoadStaging(ctx context.Context, sessionID string) []models.CheckoutItem {
	var items []models.CheckoutItem
	if !s.load(ctx, sessionID, KeyStaging, &items) {
		return []models.CheckoutItem{}
	}
	return items
}

func (s *redisSessionStore) SaveStaging(ctx context.Context, sessionID string, items []models.CheckoutItem) {
	s.save(ctx, sessionID, KeyStaging, items)
}

func (s *redisSessionStore) PutDirectItem(ctx context.Context, sessionID string, item models.CheckoutItem) {
	s.save(ctx, sessionID, KeyDirectItem, item)
}

func (s *redisSessionStore) TakeDirectItem(ctx context.Context, sessionID string) *models.CheckoutItem {
	var item models.CheckoutItem
	if !s.take(ctx, sessionID, KeyDirectItem, &item) {
		return nil
	}
	return &item
}

func (s *redisSessionStore) PutCartTransfer(ctx context.Context, sessionID string, lines []models.CartLine) {
	s.save(ctx, sessionID, KeyCartTransfer, lines)
}

func (s *redisSessionStore) TakeCartTransfer(ctx context.Context, sessionID string) []models.CartLine {
	var lines []models.CartLine
	if !s.take(ctx, sessionID, KeyCartTransfer, &lines) {
		return nil
	}
	return lines
}
