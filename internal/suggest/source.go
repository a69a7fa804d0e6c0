package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	"menu-planner/internal/api"
	"menu-planner/internal/cache"
)

// DefaultCacheTTL bounds how old a cached product list may be before a
// network failure is surfaced instead of served from cache.
const DefaultCacheTTL = 7 * 24 * time.Hour

// ProductSource supplies the product list for an edit session: one fetch per
// session, refreshing the local cache on success and falling back to a
// non-stale cached copy when the network is down.
type ProductSource struct {
	client api.Client
	store  *cache.ProductStore
	ttl    time.Duration
}

// NewProductSource creates a ProductSource. store may be nil to disable the
// cache fallback.
func NewProductSource(client api.Client, store *cache.ProductStore, ttl time.Duration) *ProductSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ProductSource{client: client, store: store, ttl: ttl}
}

// Products returns the product list for a new edit session.
func (s *ProductSource) Products(ctx context.Context) ([]api.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err == nil {
		if s.store != nil {
			if cacheErr := s.store.Replace(ctx, products, time.Now()); cacheErr != nil {
				log.Printf("Warning: failed to refresh product cache: %v", cacheErr)
			}
		}
		return products, nil
	}

	if s.store == nil || !api.IsRetryable(err) {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	cached, refreshedAt, cacheErr := s.store.Load(ctx)
	if cacheErr != nil || len(cached) == 0 {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if time.Since(refreshedAt) > s.ttl {
		return nil, fmt.Errorf("failed to fetch products and cache is stale: %w", err)
	}

	log.Printf("Product fetch failed, serving %d cached products from %s", len(cached), refreshedAt.Format(time.RFC3339))
	return cached, nil
}
