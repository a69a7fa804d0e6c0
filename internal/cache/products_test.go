package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"menu-planner/internal/api"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open test cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProductStore(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyCache", func(t *testing.T) {
		store := NewProductStore(testDB(t))

		products, refreshedAt, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(products) != 0 {
			t.Errorf("Expected no products, got %d", len(products))
		}
		if !refreshedAt.IsZero() {
			t.Errorf("Expected a zero refresh time, got %v", refreshedAt)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := NewProductStore(testDB(t))
		stamp := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

		in := []api.Product{
			{ID: 1, Name: "Beetroot", Unit: "pcs", Category: api.CategoryLunch},
			{ID: 2, Name: "Milk", Unit: "ml", Category: api.CategoryBreakfast},
		}
		if err := store.Replace(ctx, in, stamp); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		products, refreshedAt, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("Expected 2 products, got %d", len(products))
		}
		// Load orders by name.
		if products[0].Name != "Beetroot" || products[1].Name != "Milk" {
			t.Errorf("Unexpected order: %v", products)
		}
		if products[1].Category != api.CategoryBreakfast || products[1].Unit != "ml" {
			t.Errorf("Unexpected product fields: %+v", products[1])
		}
		if !refreshedAt.Equal(stamp) {
			t.Errorf("Expected refresh stamp %v, got %v", stamp, refreshedAt)
		}
	})

	t.Run("ReplaceIsWholesale", func(t *testing.T) {
		store := NewProductStore(testDB(t))

		first := []api.Product{{ID: 1, Name: "Beetroot", Unit: "pcs", Category: api.CategoryLunch}}
		if err := store.Replace(ctx, first, time.Now()); err != nil {
			t.Fatalf("First replace failed: %v", err)
		}

		second := []api.Product{{ID: 5, Name: "Dill", Unit: "g", Category: api.CategoryDinner}}
		if err := store.Replace(ctx, second, time.Now()); err != nil {
			t.Fatalf("Second replace failed: %v", err)
		}

		products, _, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Dill" {
			t.Errorf("Expected only the second list, got %v", products)
		}
	})
}
