package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// CartService is the authoritative owner of the cart collection. Every
// mutation goes through it and is persisted synchronously before the
// updated collection is returned.
type CartService struct {
	store     repository.SessionStore
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewCartService creates a cart service. The publisher may be nil.
func NewCartService(store repository.SessionStore, publisher *events.Publisher, logger *logrus.Logger) *CartService {
	if logger == nil {
		logger = logrus.New()
	}
	return &CartService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithField("component", "cart-service"),
	}
}

// GetCart returns the current cart, hydrating from durable storage.
func (s *CartService) GetCart(ctx context.Context, sessionID string) []models.CartLine {
	return s.store.LoadCart(ctx, sessionID)
}

// AddToCart merges a product into the cart. A line with the same
// (product, size) identity gets its quantity incremented by one;
// otherwise a new line with quantity 1 is appended, snapshotting the
// product fields. No two lines ever share an identity key.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, item models.CartLine) []models.CartLine {
	lines := s.store.LoadCart(ctx, sessionID)

	found := false
	for i := range lines {
		if lines[i].Key() == item.Key() {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		lines = append(lines, item)
	}

	s.store.SaveCart(ctx, sessionID, lines)
	s.publisher.PublishCartUpdated(ctx, sessionID, lines)
	s.logger.WithFields(logrus.Fields{
		"sessionId": sessionID,
		"productId": item.ID,
		"lines":     len(lines),
	}).Debug("Cart item added")
	return lines
}

// UpdateQuantity sets a line's quantity to an absolute value. A value of
// zero or less removes the line entirely. When selectedSize is empty the
// match is by product ID alone, and every line sharing that ID is
// affected.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int, selectedSize string) []models.CartLine {
	lines := s.store.LoadCart(ctx, sessionID)

	if quantity <= 0 {
		lines = removeLines(lines, productID, selectedSize)
	} else {
		for i := range lines {
			if lines[i].ID == productID && (selectedSize == "" || lines[i].SelectedSize == selectedSize) {
				lines[i].Quantity = quantity
			}
		}
	}

	s.store.SaveCart(ctx, sessionID, lines)
	s.publisher.PublishCartUpdated(ctx, sessionID, lines)
	return lines
}

// RemoveFromCart drops matching lines; same matching rule as
// UpdateQuantity.
func (s *CartService) RemoveFromCart(ctx context.Context, sessionID string, productID int64, selectedSize string) []models.CartLine {
	lines := removeLines(s.store.LoadCart(ctx, sessionID), productID, selectedSize)
	s.store.SaveCart(ctx, sessionID, lines)
	s.publisher.PublishCartUpdated(ctx, sessionID, lines)
	return lines
}

// ClearCart empties the collection.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) {
	s.store.SaveCart(ctx, sessionID, []models.CartLine{})
	s.publisher.PublishCartCleared(ctx, sessionID)
	s.logger.WithField("sessionId", sessionID).Debug("Cart cleared")
}

func removeLines(lines []models.CartLine, productID int64, selectedSize string) []models.CartLine {
	kept := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ID == productID && (selectedSize == "" || l.SelectedSize == selectedSize) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}
