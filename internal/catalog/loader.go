// Package catalog implements the incremental, filter-scoped recipe loader
// behind the catalog view and the recipe picker.
package catalog

import (
	"context"
	"sync"

	"menu-planner/internal/api"
)

// Loader accumulates catalog pages for the current filter into an ordered,
// append-only sequence. Changing the filter discards the sequence and starts
// over from page zero.
//
// Completions are tagged with the epoch they were issued under; a response
// that arrives after the filter changed is discarded instead of corrupting
// the item sequence.
type Loader struct {
	client api.Client

	mu      sync.Mutex
	filter  api.RecipeFilter
	epoch   uint64
	items   []api.RecipeSummary
	page    int
	loading bool
	hasMore bool
}

// NewLoader creates a Loader with an empty filter. Nothing is fetched until
// the first LoadNextPage call.
func NewLoader(client api.Client) *Loader {
	return &Loader{
		client:  client,
		hasMore: true,
	}
}

// SetFilter replaces the filter, discards loaded items and resets paging to
// zero, then loads the first page of the new filter scope. Setting the same
// filter again is a no-op, so repeated "apply" clicks do not reload.
//
// A filter change always wins over an in-flight load: the epoch is bumped
// immediately, so the stale response is dropped when it arrives.
func (l *Loader) SetFilter(ctx context.Context, filter api.RecipeFilter) error {
	l.mu.Lock()
	if l.filter.Equal(filter) {
		l.mu.Unlock()
		return nil
	}
	l.filter = filter
	l.epoch++
	l.items = nil
	l.page = 0
	l.hasMore = true
	// A load issued under the previous epoch no longer owns the flag.
	l.loading = false
	l.mu.Unlock()

	_, err := l.LoadNextPage(ctx)
	return err
}

// Invalidate drops any in-flight request without changing the filter. Called
// when the owning view unmounts so late responses are not applied.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	l.loading = false
}

// LoadNextPage fetches the next page and appends it to the item sequence.
// It is a no-op (false, nil) while a request is outstanding or after the
// server has signalled end of data, so rapid triggers collapse into a single
// request. A failed fetch leaves the page pointer unchanged; the same page is
// retried on the next trigger.
func (l *Loader) LoadNextPage(ctx context.Context) (bool, error) {
	l.mu.Lock()
	if l.loading || !l.hasMore {
		l.mu.Unlock()
		return false, nil
	}
	l.loading = true
	epoch := l.epoch
	page := l.page
	filter := l.filter
	l.mu.Unlock()

	recipes, err := l.client.ListRecipes(ctx, page, filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if epoch != l.epoch {
		// Superseded by a filter change or invalidation while in flight.
		return false, nil
	}
	l.loading = false
	if err != nil {
		return false, err
	}

	l.items = append(l.items, recipes...)
	l.hasMore = len(recipes) > 0
	l.page = page + 1
	return true, nil
}

// Items returns a copy of the accumulated recipe sequence.
func (l *Loader) Items() []api.RecipeSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.RecipeSummary, len(l.items))
	copy(out, l.items)
	return out
}

// Filter returns the current filter.
func (l *Loader) Filter() api.RecipeFilter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// HasMore reports whether the server may still have further pages.
func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Loading reports whether a page request is outstanding.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}
