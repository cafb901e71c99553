package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

const defaultRecentLimit = 20

// CatalogService serves the product catalog and keeps per-user browse
// history. History writes are enqueued asynchronously so a slow history store
// never delays a product page.
type CatalogService struct {
	catalog  ports.CatalogAPI
	history  ports.HistoryRepository
	recorder ports.HistoryRecorder
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewCatalogService(catalog ports.CatalogAPI, history ports.HistoryRepository, recorder ports.HistoryRecorder, sessions ports.SessionStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, history: history, recorder: recorder, sessions: sessions, logger: logger}
}

// Products returns the catalog, optionally filtered to one category.
func (s *CatalogService) Products(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	if category != "" {
		return s.catalog.ProductsByCategory(ctx, category)
	}
	return s.catalog.Products(ctx)
}

// PopularProducts returns the curated popular list.
func (s *CatalogService) PopularProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.PopularProducts(ctx)
}

// Product returns one catalog item and, for logged-in users, records the view
// in the browse history.
func (s *CatalogService) Product(ctx context.Context, sessionID string, id int64) (*domain.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	if user := s.sessions.AuthUser(ctx, sessionID); user.IsLoggedIn && s.recorder != nil {
		s.recorder.Enqueue(domain.ProductView{
			UserID:      user.ID,
			ProductID:   p.ID,
			ProductName: p.ProductName,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			ViewedAt:    time.Now().UTC(),
		})
	}
	return p, nil
}

// GroupPurchases returns the campaigns running for one product.
func (s *CatalogService) GroupPurchases(ctx context.Context, productID int64) ([]domain.GroupPurchase, error) {
	return s.catalog.GroupPurchases(ctx, productID)
}

// RecentlyViewed returns the logged-in user's latest product views, newest
// first.
func (s *CatalogService) RecentlyViewed(ctx context.Context, sessionID string, limit int) ([]domain.ProductView, error) {
	user := s.sessions.AuthUser(ctx, sessionID)
	if !user.IsLoggedIn {
		return nil, domain.ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.history.Recent(ctx, user.ID, limit)
}
