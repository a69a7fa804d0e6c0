// Package grocery wraps the server-side grocery aggregation endpoint.
package grocery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"menu-planner/internal/api"
)

// ErrEmptySelection is returned when Generate is called with no recipes.
// The degenerate request is rejected locally and never sent over the wire.
var ErrEmptySelection = errors.New("no recipes selected")

// Requester requests consolidated shopping lists for a set of recipes. The
// aggregation itself happens server-side; each response replaces the held
// list wholesale.
type Requester struct {
	client api.Client

	mu    sync.Mutex
	items []api.GroceryItem
}

// NewRequester creates a Requester.
func NewRequester(client api.Client) *Requester {
	return &Requester{client: client}
}

// Generate requests the consolidated list for recipeIDs and replaces the
// held list with the response.
func (r *Requester) Generate(ctx context.Context, recipeIDs []int64) ([]api.GroceryItem, error) {
	if len(recipeIDs) == 0 {
		return nil, ErrEmptySelection
	}

	items, err := r.client.GenerateGroceryList(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate grocery list: %w", err)
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return items, nil
}

// Items returns a copy of the most recently generated list.
func (r *Requester) Items() []api.GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]api.GroceryItem, len(r.items))
	copy(out, r.items)
	return out
}

// Clear drops the held list.
func (r *Requester) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
