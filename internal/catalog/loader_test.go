package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"menu-planner/internal/api"
)

// fakeClient implements api.Client with a pluggable ListRecipes. Only the
// catalog surface is exercised here; the rest panic if reached.
type fakeClient struct {
	mu    sync.Mutex
	calls []listCall
	list  func(page int, filter api.RecipeFilter) ([]api.RecipeSummary, error)
}

type listCall struct {
	page   int
	filter api.RecipeFilter
}

func (f *fakeClient) ListRecipes(_ context.Context, page int, filter api.RecipeFilter) ([]api.RecipeSummary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, listCall{page: page, filter: filter})
	f.mu.Unlock()
	return f.list(page, filter)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeClient) GetRecipe(context.Context, int64) (*api.Recipe, error) {
	panic("not expected")
}
func (f *fakeClient) GenerateGroceryList(context.Context, []int64) ([]api.GroceryItem, error) {
	panic("not expected")
}
func (f *fakeClient) GetMenu(context.Context, string) (*api.Menu, error) { panic("not expected") }
func (f *fakeClient) CreateMenu(context.Context, api.MenuPayload) (*api.Menu, error) {
	panic("not expected")
}
func (f *fakeClient) UpdateMenu(context.Context, int64, api.MenuPayload) (*api.Menu, error) {
	panic("not expected")
}
func (f *fakeClient) ListProducts(context.Context) ([]api.Product, error) { panic("not expected") }

func summaries(ids ...int64) []api.RecipeSummary {
	out := make([]api.RecipeSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.RecipeSummary{ID: id})
	}
	return out
}

func TestLoadNextPage(t *testing.T) {
	t.Run("NoDuplicatePages", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		client := &fakeClient{
			list: func(page int, _ api.RecipeFilter) ([]api.RecipeSummary, error) {
				close(started)
				<-release
				return summaries(1), nil
			},
		}
		loader := NewLoader(client)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.LoadNextPage(context.Background())
		}()
		<-started

		// Rapid triggers while the first request is outstanding must all
		// collapse into no-ops.
		for i := 0; i < 5; i++ {
			loaded, err := loader.LoadNextPage(context.Background())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if loaded {
				t.Fatal("Expected concurrent LoadNextPage to be a no-op")
			}
		}

		close(release)
		wg.Wait()

		if got := client.callCount(); got != 1 {
			t.Errorf("Expected exactly 1 request, got %d", got)
		}
		if got := len(loader.Items()); got != 1 {
			t.Errorf("Expected 1 item, got %d", got)
		}
	})

	t.Run("PaginationScenario", func(t *testing.T) {
		client := &fakeClient{
			list: func(page int, filter api.RecipeFilter) ([]api.RecipeSummary, error) {
				if len(filter.Categories) != 1 || filter.Categories[0] != api.CategoryBreakfast {
					t.Errorf("Expected BREAKFAST filter on page %d, got %v", page, filter.Categories)
				}
				if page == 0 {
					out := make([]api.RecipeSummary, 20)
					for i := range out {
						out[i] = api.RecipeSummary{ID: int64(i + 1)}
					}
					return out, nil
				}
				return nil, nil
			},
		}
		loader := NewLoader(client)

		filter := api.RecipeFilter{Categories: []api.Category{api.CategoryBreakfast}}
		if err := loader.SetFilter(context.Background(), filter); err != nil {
			t.Fatalf("SetFilter failed: %v", err)
		}
		if got := len(loader.Items()); got != 20 {
			t.Fatalf("Expected 20 items after page 0, got %d", got)
		}
		if !loader.HasMore() {
			t.Fatal("Expected hasMore after a non-empty page")
		}

		// Scroll to the bottom: page 1 comes back empty.
		loaded, err := loader.LoadNextPage(context.Background())
		if err != nil || !loaded {
			t.Fatalf("Expected page 1 to load, got loaded=%v err=%v", loaded, err)
		}
		if loader.HasMore() {
			t.Fatal("Expected hasMore to be false after an empty page")
		}

		// Further scroll events issue no requests.
		before := client.callCount()
		for i := 0; i < 3; i++ {
			loader.LoadNextPage(context.Background())
		}
		if got := client.callCount(); got != before {
			t.Errorf("Expected no further requests after end of data, got %d extra", got-before)
		}
	})

	t.Run("FailedPageIsRetriedAtSameOffset", func(t *testing.T) {
		fail := true
		client := &fakeClient{
			list: func(page int, _ api.RecipeFilter) ([]api.RecipeSummary, error) {
				if fail {
					fail = false
					return nil, errors.New("connection reset")
				}
				return summaries(7), nil
			},
		}
		loader := NewLoader(client)

		if _, err := loader.LoadNextPage(context.Background()); err == nil {
			t.Fatal("Expected first load to fail")
		}
		if got := len(loader.Items()); got != 0 {
			t.Fatalf("Expected no items after failure, got %d", got)
		}

		loaded, err := loader.LoadNextPage(context.Background())
		if err != nil || !loaded {
			t.Fatalf("Expected retry to succeed, got loaded=%v err=%v", loaded, err)
		}
		if client.calls[0].page != 0 || client.calls[1].page != 0 {
			t.Errorf("Expected both requests for page 0, got %d then %d", client.calls[0].page, client.calls[1].page)
		}
	})
}

func TestSetFilter(t *testing.T) {
	t.Run("IdempotentReset", func(t *testing.T) {
		client := &fakeClient{
			list: func(int, api.RecipeFilter) ([]api.RecipeSummary, error) {
				return summaries(1, 2), nil
			},
		}
		loader := NewLoader(client)

		filter := api.RecipeFilter{Categories: []api.Category{api.CategoryLunch}, Calories: api.CaloriesLess100}
		if err := loader.SetFilter(context.Background(), filter); err != nil {
			t.Fatalf("SetFilter failed: %v", err)
		}
		if err := loader.SetFilter(context.Background(), filter); err != nil {
			t.Fatalf("Second SetFilter failed: %v", err)
		}

		if got := client.callCount(); got != 1 {
			t.Errorf("Expected exactly 1 reload for a repeated filter, got %d", got)
		}
		if got := len(loader.Items()); got != 2 {
			t.Errorf("Expected 2 items, got %d", got)
		}
	})

	t.Run("StaleResponseRejection", func(t *testing.T) {
		type pending struct {
			filter  api.RecipeFilter
			respond chan []api.RecipeSummary
		}
		requests := make(chan pending, 2)
		client := &fakeClient{
			list: func(_ int, filter api.RecipeFilter) ([]api.RecipeSummary, error) {
				p := pending{filter: filter, respond: make(chan []api.RecipeSummary)}
				requests <- p
				return <-p.respond, nil
			},
		}
		loader := NewLoader(client)

		filterA := api.RecipeFilter{Categories: []api.Category{api.CategoryBreakfast}}
		filterB := api.RecipeFilter{Categories: []api.Category{api.CategoryDinner}}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.SetFilter(context.Background(), filterA)
		}()
		reqA := <-requests

		// Filter B arrives while A's request is still in flight.
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.SetFilter(context.Background(), filterB)
		}()
		reqB := <-requests

		// A resolves late, then B.
		reqA.respond <- summaries(100)
		reqB.respond <- summaries(200)
		wg.Wait()

		items := loader.Items()
		if len(items) != 1 || items[0].ID != 200 {
			t.Fatalf("Expected only filter B's item, got %v", items)
		}
		if !loader.Filter().Equal(filterB) {
			t.Errorf("Expected filter B to be current, got %v", loader.Filter())
		}
	})

	t.Run("InvalidateDropsLateResponse", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		client := &fakeClient{
			list: func(int, api.RecipeFilter) ([]api.RecipeSummary, error) {
				close(started)
				<-release
				return summaries(1), nil
			},
		}
		loader := NewLoader(client)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.LoadNextPage(context.Background())
		}()
		<-started
		loader.Invalidate()
		close(release)
		wg.Wait()

		if got := len(loader.Items()); got != 0 {
			t.Errorf("Expected response after Invalidate to be dropped, got %d items", got)
		}
	})
}
