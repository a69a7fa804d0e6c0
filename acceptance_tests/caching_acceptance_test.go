package acceptance_tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"menu-planner/internal/api"
	"menu-planner/internal/cache"
	"menu-planner/internal/metrics"
	"menu-planner/internal/suggest"
)

// TestOfflineProductFallback drives the real client, cache and metrics store
// together: a live fetch refreshes the cache, and once the server is gone the
// next session is served from the cached copy.
func TestOfflineProductFallback(t *testing.T) {
	ctx := context.Background()

	// 1. A server with a small product catalog.
	products := []api.Product{
		{ID: 1, Name: "Buckwheat", Unit: "g", Category: "grain"},
		{ID: 2, Name: "Kefir", Unit: "ml", Category: "dairy"},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(products)
	}))

	// 2. A real cache database in a scratch directory.
	db, err := cache.NewDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open cache database: %v", err)
	}
	defer db.Close()
	store := metrics.NewStore(db.SQL)
	client := api.NewClient(server.URL, api.WithObserver(store))

	// --- Step 1: online session refreshes the cache ---
	source := suggest.NewProductSource(client, cache.NewProductStore(db), suggest.DefaultCacheTTL)
	got, err := source.Products(ctx)
	if err != nil {
		t.Fatalf("Online fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(got))
	}

	// --- Step 2: the server disappears ---
	server.Close()

	got, err = source.Products(ctx)
	if err != nil {
		t.Fatalf("Expected the cached copy to serve an offline session, got %v", err)
	}
	if len(got) != 2 || got[0].Name != "Buckwheat" {
		t.Errorf("Expected the cached catalog, got %v", got)
	}

	// --- Step 3: both attempts were recorded ---
	sums, err := store.Summarize()
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(sums) != 1 || sums[0].Op != "list products" {
		t.Fatalf("Expected metrics for list products only, got %v", sums)
	}
	if sums[0].Count != 2 || sums[0].Failures != 1 {
		t.Errorf("Expected 2 requests with 1 failure, got count=%d failures=%d", sums[0].Count, sums[0].Failures)
	}
}

// TestStaleCacheIsNotServed pins the freshness rule: a cached copy older than
// the TTL surfaces the network failure instead.
func TestStaleCacheIsNotServed(t *testing.T) {
	ctx := context.Background()

	db, err := cache.NewDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open cache database: %v", err)
	}
	defer db.Close()

	productStore := cache.NewProductStore(db)
	stale := time.Now().Add(-8 * 24 * time.Hour)
	if err := productStore.Replace(ctx, []api.Product{{ID: 1, Name: "Kefir", Unit: "ml"}}, stale); err != nil {
		t.Fatalf("Failed to seed the cache: %v", err)
	}

	// A server that is already gone.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := api.NewClient(server.URL)

	source := suggest.NewProductSource(client, productStore, suggest.DefaultCacheTTL)
	if _, err := source.Products(ctx); err == nil {
		t.Fatal("Expected the stale cache to be refused")
	}
}
