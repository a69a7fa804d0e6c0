package catalog

import (
	"context"
	"sync"
	"time"
)

// DefaultScrollQuiet is the quiet period applied to scroll triggers. Scroll
// events fire at high frequency; only after this much silence does a trigger
// reach the loader. The loader's own guard still applies; debouncing alone
// cannot stop two triggers that both pass before the loading flag is set.
const DefaultScrollQuiet = 200 * time.Millisecond

// Debouncer collapses rapid successive calls into one, executed after the
// configured duration has elapsed without a new call.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn, cancelling any previously scheduled call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ScrollTrigger connects scroll-near-bottom events to a Loader through a
// debouncer. The done callback receives the outcome of each load that
// actually ran.
type ScrollTrigger struct {
	loader *Loader
	deb    *Debouncer
	done   func(loaded bool, err error)
}

// NewScrollTrigger creates a trigger for loader. done may be nil.
func NewScrollTrigger(loader *Loader, quiet time.Duration, done func(bool, error)) *ScrollTrigger {
	return &ScrollTrigger{
		loader: loader,
		deb:    NewDebouncer(quiet),
		done:   done,
	}
}

// NearBottom records one scroll-near-bottom event. Once the event stream
// quiets down, the loader is asked for the next page.
func (t *ScrollTrigger) NearBottom(ctx context.Context) {
	t.deb.Debounce(func() {
		loaded, err := t.loader.LoadNextPage(ctx)
		if t.done != nil {
			t.done(loaded, err)
		}
	})
}

// Stop cancels any pending trigger.
func (t *ScrollTrigger) Stop() {
	t.deb.Cancel()
}
