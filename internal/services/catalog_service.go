package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// Browse state is ephemeral: entries idle past the TTL are swept out so
// the session map does not grow with every session ID ever seen.
const (
	browseStateIdleTTL = 30 * time.Minute
	browseSweepEvery   = 5 * time.Minute
)

// CatalogSource is the slice of the upstream client the catalog service
// depends on.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]models.RawProduct, error)
	GetProduct(ctx context.Context, id int64) (*models.RawProduct, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CatalogPage is one rendered slice of the filtered catalog.
type CatalogPage struct {
	Products     []models.Product       `json:"products"`
	NextBatch    []models.Product       `json:"nextBatch"`
	Total        int                    `json:"total"`
	VisibleCount int                    `json:"visibleCount"`
	Selection    models.FilterSelection `json:"selection"`
}

// CatalogService fetches and normalizes the upstream catalog and owns
// the per-session browse state: the facet selection and its pagination
// window. Filter state is session-local and never persisted.
type CatalogService struct {
	source CatalogSource
	logger *logrus.Entry

	mu        sync.Mutex
	sessions  map[string]*browseState
	nextSweep time.Time
}

// browseState carries its own lock: two requests for the same session
// may race a browse against a show-more, and the window math is a
// read-modify-write.
type browseState struct {
	mu        sync.Mutex
	selection models.FilterSelection
	window    *Window
	lastSeen  time.Time
}

// NewCatalogService creates a catalog service.
func NewCatalogService(source CatalogSource, logger *logrus.Logger) *CatalogService {
	if logger == nil {
		logger = logrus.New()
	}
	return &CatalogService{
		source:   source,
		logger:   logger.WithField("component", "catalog-service"),
		sessions: make(map[string]*browseState),
	}
}

func (s *CatalogService) state(sessionID string) *browseState {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.After(s.nextSweep) {
		for id, st := range s.sessions {
			if now.Sub(st.lastSeen) > browseStateIdleTTL {
				delete(s.sessions, id)
			}
		}
		s.nextSweep = now.Add(browseSweepEvery)
	}

	st, ok := s.sessions[sessionID]
	if !ok {
		st = &browseState{selection: models.NewFilterSelection(), window: NewWindow()}
		s.sessions[sessionID] = st
	}
	st.lastSeen = now
	return st
}

// Browse applies a facet selection for the session and returns the
// visible window over the filtered catalog. Changing the result set or
// the search term snaps the window back to its default size.
func (s *CatalogService) Browse(ctx context.Context, sessionID string, sel models.FilterSelection) (*CatalogPage, error) {
	raw, err := s.source.ListProducts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load catalog from upstream")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	st := s.state(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.selection = sel

	filtered := FilterProducts(NormalizeProducts(raw), sel)
	visible, nextBatch := st.window.Apply(filtered, sel.SearchTerm)

	return &CatalogPage{
		Products:     visible,
		NextBatch:    nextBatch,
		Total:        len(filtered),
		VisibleCount: st.window.VisibleCount(),
		Selection:    sel,
	}, nil
}

// ShowMore grows the session's window by one batch and re-renders the
// page with the selection already in effect.
func (s *CatalogService) ShowMore(ctx context.Context, sessionID string) (*CatalogPage, error) {
	raw, err := s.source.ListProducts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load catalog from upstream")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	st := s.state(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	filtered := FilterProducts(NormalizeProducts(raw), st.selection)

	// Apply before growing so the window is sized against the current
	// result set, then grow and slice again.
	st.window.Apply(filtered, st.selection.SearchTerm)
	st.window.ShowMore()
	visible, nextBatch := st.window.Apply(filtered, st.selection.SearchTerm)

	return &CatalogPage{
		Products:     visible,
		NextBatch:    nextBatch,
		Total:        len(filtered),
		VisibleCount: st.window.VisibleCount(),
		Selection:    st.selection,
	}, nil
}

// GetProduct fetches and normalizes a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	raw, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	product := NormalizeProduct(*raw)
	return &product, nil
}

// Categories passes the upstream category list through.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}
