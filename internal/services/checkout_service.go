package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// Checkout summary constants: flat tax rate and shipping fee applied to
// a non-empty order.
const (
	TaxRate     = 0.10
	ShippingFee = 10.0
)

// ErrSizeRequired rejects a direct "buy now" without a selected size,
// before any state changes.
var ErrSizeRequired = errors.New("a size must be selected before checkout")

// ErrEmptyCheckout rejects submitting an empty staging list.
var ErrEmptyCheckout = errors.New("no items staged for checkout")

// CheckoutService reconciles the three independent sources of "what to
// buy" (previously staged items, a direct buy-now item, a cart transfer)
// into one staged list, and supports in-place quantity edits on it.
type CheckoutService struct {
	store     repository.SessionStore
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewCheckoutService creates a checkout staging service. The publisher
// may be nil.
func NewCheckoutService(store repository.SessionStore, publisher *events.Publisher, logger *logrus.Logger) *CheckoutService {
	if logger == nil {
		logger = logrus.New()
	}
	return &CheckoutService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithField("component", "checkout-service"),
	}
}

// StageDirectItem writes the one-shot "buy now" slot. The size guard
// runs first so a rejected request leaves no partial state behind.
func (s *CheckoutService) StageDirectItem(ctx context.Context, sessionID string, product models.Product, selectedSize string) error {
	if selectedSize == "" {
		return ErrSizeRequired
	}

	s.store.PutDirectItem(ctx, sessionID, models.CheckoutItem{
		CartLine: models.CartLine{
			Product:      product,
			SelectedSize: selectedSize,
			Quantity:     1,
		},
		IsDirectCheckout: true,
	})
	return nil
}

// StageCartTransfer snapshots the live cart into the one-shot transfer
// slot for the next checkout entry.
func (s *CheckoutService) StageCartTransfer(ctx context.Context, sessionID string) []models.CartLine {
	cart := s.store.LoadCart(ctx, sessionID)
	s.store.PutCartTransfer(ctx, sessionID, cart)
	return cart
}

// EnterCheckout runs the reconciliation pass for a checkout-session
// entry: previously staged items, then the direct item, then the cart
// transfer, deduplicated by identity key with the first occurrence
// winning. Both slots are consumed atomically with the pass, so a reload
// can never re-apply the same payload. The result is persisted and
// returned.
func (s *CheckoutService) EnterCheckout(ctx context.Context, sessionID string) []models.CheckoutItem {
	staged := s.store.LoadStaging(ctx, sessionID)

	merged := make([]models.CheckoutItem, 0, len(staged)+1)
	merged = append(merged, staged...)

	if direct := s.store.TakeDirectItem(ctx, sessionID); direct != nil {
		merged = append(merged, *direct)
	}
	for _, line := range s.store.TakeCartTransfer(ctx, sessionID) {
		merged = append(merged, models.CheckoutItem{CartLine: line})
	}

	reconciled := dedupFirstWins(merged)
	s.store.SaveStaging(ctx, sessionID, reconciled)
	s.publisher.PublishCheckoutStaged(ctx, sessionID, reconciled)
	s.logger.WithFields(logrus.Fields{
		"sessionId": sessionID,
		"staged":    len(staged),
		"total":     len(reconciled),
	}).Debug("Checkout staging reconciled")
	return reconciled
}

// Staging returns the current staged list without reconciling.
func (s *CheckoutService) Staging(ctx context.Context, sessionID string) []models.CheckoutItem {
	return s.store.LoadStaging(ctx, sessionID)
}

// AdjustQuantity applies a delta to the matching staged item; at zero or
// below the item is dropped from the list. The updated list is persisted
// on every call.
func (s *CheckoutService) AdjustQuantity(ctx context.Context, sessionID string, productID int64, selectedSize string, delta int) []models.CheckoutItem {
	items := s.store.LoadStaging(ctx, sessionID)

	updated := make([]models.CheckoutItem, 0, len(items))
	for _, it := range items {
		if it.ID == productID && it.SelectedSize == selectedSize {
			qty := it.Quantity
			if qty < 1 {
				qty = 1
			}
			qty += delta
			if qty <= 0 {
				continue
			}
			it.Quantity = qty
		}
		updated = append(updated, it)
	}

	s.store.SaveStaging(ctx, sessionID, updated)
	s.publisher.PublishCheckoutAdjusted(ctx, sessionID, updated)
	return updated
}

// MergeCartIntoStaging concatenates the current staging with the live
// cart and deduplicates with the same first-occurrence-wins rule, so a
// quantity the user already edited in the staging view is never reset by
// an incoming cart line.
func (s *CheckoutService) MergeCartIntoStaging(ctx context.Context, sessionID string) []models.CheckoutItem {
	staged := s.store.LoadStaging(ctx, sessionID)
	cart := s.store.LoadCart(ctx, sessionID)

	merged := make([]models.CheckoutItem, 0, len(staged)+len(cart))
	merged = append(merged, staged...)
	for _, line := range cart {
		merged = append(merged, models.CheckoutItem{CartLine: line})
	}

	reconciled := dedupFirstWins(merged)
	s.store.SaveStaging(ctx, sessionID, reconciled)
	s.publisher.PublishCheckoutStaged(ctx, sessionID, reconciled)
	return reconciled
}

// Summary holds the order totals for the staged list.
type Summary struct {
	ItemCount  int     `json:"itemCount"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

// Summarize computes the checkout totals: subtotal, 10% tax, and a flat
// shipping fee when anything is staged.
func (s *CheckoutService) Summarize(ctx context.Context, sessionID string) Summary {
	return summarize(s.store.LoadStaging(ctx, sessionID))
}

// Submit runs the submit guard over the staged list: an empty list is
// rejected before anything else happens. Order placement itself lives
// downstream; a successful submit returns the confirmed totals and
// leaves the staging list untouched.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (Summary, error) {
	items := s.store.LoadStaging(ctx, sessionID)
	if len(items) == 0 {
		return Summary{}, ErrEmptyCheckout
	}

	s.logger.WithFields(logrus.Fields{
		"sessionId": sessionID,
		"itemCount": models.CheckoutTotalItems(items),
	}).Info("Checkout submitted")
	s.publisher.PublishCheckoutSubmitted(ctx, sessionID, items)
	return summarize(items), nil
}

func summarize(items []models.CheckoutItem) Summary {
	subtotal := models.CheckoutTotalPrice(items)
	tax := subtotal * TaxRate
	shipping := 0.0
	if len(items) > 0 {
		shipping = ShippingFee
	}

	return Summary{
		ItemCount:  models.CheckoutTotalItems(items),
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal + tax + shipping,
	}
}

// dedupFirstWins removes duplicate identity keys, keeping the first
// occurrence in concatenation order.
func dedupFirstWins(items []models.CheckoutItem) []models.CheckoutItem {
	seen := make(map[models.LineKey]bool, len(items))
	unique := make([]models.CheckoutItem, 0, len(items))
	for _, it := range items {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		unique = append(unique, it)
	}
	return unique
}
