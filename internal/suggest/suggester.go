// Package suggest implements the ingredient autocomplete used by the recipe
// editor: case-insensitive prefix matching over a static product list with
// pure-keyboard selection.
package suggest

import (
	"strings"
	"sync"
	"time"

	"menu-planner/internal/api"
)

// DefaultBlurGrace is how long the suggestion list stays open after the input
// loses focus. A click on a suggestion fires in that window; closing
// immediately on blur would swallow it.
const DefaultBlurGrace = 100 * time.Millisecond

// Suggester filters a fixed product list by prefix and tracks the
// keyboard-highlighted entry. The product list is supplied once by the
// caller; there is no network interaction here.
type Suggester struct {
	products []api.Product
	grace    time.Duration

	mu          sync.Mutex
	matches     []api.Product
	highlighted int
	open        bool
	blurTimer   *time.Timer
}

// New creates a Suggester over products with the default blur grace period.
func New(products []api.Product) *Suggester {
	return &Suggester{
		products:    products,
		grace:       DefaultBlurGrace,
		highlighted: -1,
	}
}

// NewWithGrace creates a Suggester with a custom blur grace period.
func NewWithGrace(products []api.Product, grace time.Duration) *Suggester {
	s := New(products)
	s.grace = grace
	return s
}

// Input reopens the list for the given field value. The highlight resets to
// -1 so no suggestion is pre-selected, and matches are recomputed.
func (s *Suggester) Input(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refilter(value)
}

// Focus recomputes matches from the current field value and opens the list.
// Behaves like Input; regaining focus also cancels a pending blur-close.
func (s *Suggester) Focus(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blurTimer != nil {
		s.blurTimer.Stop()
		s.blurTimer = nil
	}
	s.refilter(value)
}

// refilter recomputes matches for value. Caller holds s.mu.
func (s *Suggester) refilter(value string) {
	s.matches = s.matches[:0]
	prefix := strings.ToLower(value)
	if prefix == "" {
		s.highlighted = -1
		s.open = false
		return
	}
	for _, p := range s.products {
		if strings.HasPrefix(strings.ToLower(p.Name), prefix) {
			s.matches = append(s.matches, p)
		}
	}
	s.highlighted = -1
	s.open = len(s.matches) > 0
}

// MoveDown advances the highlight, wrapping from the last entry to the first.
func (s *Suggester) MoveDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || len(s.matches) == 0 {
		return
	}
	if s.highlighted == len(s.matches)-1 {
		s.highlighted = 0
	} else {
		s.highlighted++
	}
}

// MoveUp retreats the highlight, wrapping from the first entry to the last.
func (s *Suggester) MoveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || len(s.matches) == 0 {
		return
	}
	if s.highlighted <= 0 {
		s.highlighted = len(s.matches) - 1
	} else {
		s.highlighted--
	}
}

// Commit returns the highlighted product and closes the list. With no
// highlight (index -1) it reports false and leaves the list open.
func (s *Suggester) Commit() (api.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || s.highlighted < 0 || s.highlighted >= len(s.matches) {
		return api.Product{}, false
	}
	p := s.matches[s.highlighted]
	s.close()
	return p, true
}

// CommitAt commits the suggestion at index i, as a mouse click does. It
// behaves identically to an Enter commit on that entry.
func (s *Suggester) CommitAt(i int) (api.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || i < 0 || i >= len(s.matches) {
		return api.Product{}, false
	}
	p := s.matches[i]
	s.close()
	return p, true
}

// Blur schedules the list to close after the grace delay. focusInControl
// is consulted when the timer fires: if focus moved to a descendant of the
// suggestion control the list stays open. The delay gives a same-tick click
// commit time to run before the close.
func (s *Suggester) Blur(focusInControl func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blurTimer != nil {
		s.blurTimer.Stop()
	}
	s.blurTimer = time.AfterFunc(s.grace, func() {
		if focusInControl != nil && focusInControl() {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.close()
	})
}

// close resets the list state. Caller holds s.mu.
func (s *Suggester) close() {
	s.open = false
	s.matches = s.matches[:0]
	s.highlighted = -1
}

// Open reports whether the suggestion list is visible.
func (s *Suggester) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Highlighted returns the highlighted index, -1 when nothing is selected.
func (s *Suggester) Highlighted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// Matches returns a copy of the current suggestion list.
func (s *Suggester) Matches() []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Product, len(s.matches))
	copy(out, s.matches)
	return out
}
