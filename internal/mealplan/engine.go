// Package mealplan maintains the menu for one selected date and persists
// slot assignments.
package mealplan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"menu-planner/internal/api"
)

// DateFormat is the plain calendar date crossing the API boundary: no
// time-of-day, no timezone.
const DateFormat = "2006-01-02"

// SlotCategories maps each meal slot to the recipe category the picker
// pre-filters to. Explicit so it can be tested and changed independently of
// slot naming.
var SlotCategories = map[api.MealSlot]api.Category{
	api.SlotBreakfast: api.CategoryBreakfast,
	api.SlotSnack:     api.CategorySnack,
	api.SlotLunch:     api.CategoryLunch,
	api.SlotDinner:    api.CategoryDinner,
}

// NormalizeDate truncates t to local midnight. The server key is a calendar
// date, not an instant; formatting without this correction shifts the day
// across timezone offsets.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Engine reconciles one day's menu against its four slots and decides
// between create and update on every persist.
//
// Persists are serialized: the create-vs-update decision reads the menu
// identifier current at the moment of the write, not a snapshot from when
// the picker opened, because the previous assignment may have just
// transitioned the menu from unidentified to identified.
type Engine struct {
	client api.Client

	// persistMu serializes AssignRecipe persists.
	persistMu sync.Mutex

	mu          sync.Mutex
	date        time.Time
	epoch       uint64
	menu        *api.Menu
	pendingSlot api.MealSlot
	hasPending  bool
}

// NewEngine creates an Engine. No date is selected until SelectDate.
func NewEngine(client api.Client) *Engine {
	return &Engine{client: client}
}

// SelectDate normalizes date to local midnight and loads that date's menu.
// A missing menu is a valid empty state: the engine holds an empty,
// unidentified menu for the date. Selecting a new date abandons any menu
// read still in flight for the previous one.
func (e *Engine) SelectDate(ctx context.Context, date time.Time) error {
	day := NormalizeDate(date)
	key := day.Format(DateFormat)

	e.mu.Lock()
	e.date = day
	e.epoch++
	epoch := e.epoch
	e.menu = nil
	e.hasPending = false
	e.mu.Unlock()

	menu, err := e.client.GetMenu(ctx, key)

	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch {
		// Another date was selected while this read was in flight.
		return nil
	}
	if err != nil {
		if api.IsNotFound(err) {
			e.menu = &api.Menu{Date: key}
			return nil
		}
		return fmt.Errorf("failed to load menu for %s: %w", key, err)
	}
	menu.Date = key
	e.menu = menu
	return nil
}

// Date returns the currently selected (normalized) date.
func (e *Engine) Date() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.date
}

// Menu returns a copy of the current menu, or nil when no date is loaded.
func (e *Engine) Menu() *api.Menu {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.menu == nil {
		return nil
	}
	m := *e.menu
	return &m
}

// OpenPicker marks slot as awaiting a recipe choice and returns the category
// the picker should pre-filter to.
func (e *Engine) OpenPicker(slot api.MealSlot) api.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingSlot = slot
	e.hasPending = true
	return SlotCategories[slot]
}

// ClosePicker abandons the pending slot without assigning.
func (e *Engine) ClosePicker() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasPending = false
}

// PendingSlot returns the slot awaiting a recipe, if any.
func (e *Engine) PendingSlot() (api.MealSlot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingSlot, e.hasPending
}

// AssignRecipe writes recipe into the pending slot, clears it, and persists
// the full four-slot payload: create when the menu carries no identifier yet,
// update otherwise. The local assignment stays in place when the persist
// fails; the caller surfaces the error to the user.
func (e *Engine) AssignRecipe(ctx context.Context, recipe api.RecipeSummary) error {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	if e.menu == nil || !e.hasPending {
		e.mu.Unlock()
		return fmt.Errorf("no slot awaiting a recipe")
	}
	slot := e.pendingSlot
	e.hasPending = false
	rec := recipe
	e.menu.SetSlot(slot, &rec)
	payload := buildPayload(e.menu)
	menuID := e.menu.ID
	epoch := e.epoch
	e.mu.Unlock()

	var persisted *api.Menu
	var err error
	if menuID == 0 {
		persisted, err = e.client.CreateMenu(ctx, payload)
	} else {
		persisted, err = e.client.UpdateMenu(ctx, menuID, payload)
	}
	if err != nil {
		return fmt.Errorf("failed to persist %s assignment: %w", slot, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch == e.epoch && e.menu != nil {
		e.menu.ID = persisted.ID
	}
	return nil
}

// TotalCalories sums the calories of all assigned slots; empty slots
// contribute zero.
func (e *Engine) TotalCalories() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.menu == nil {
		return 0
	}
	total := 0
	for _, slot := range api.Slots {
		if r := e.menu.Slot(slot); r != nil {
			total += r.Calories
		}
	}
	return total
}

// buildPayload serializes each slot as the referenced recipe id or null.
func buildPayload(m *api.Menu) api.MenuPayload {
	id := func(r *api.RecipeSummary) *int64 {
		if r == nil {
			return nil
		}
		v := r.ID
		return &v
	}
	return api.MenuPayload{
		Date:        m.Date,
		BreakfastID: id(m.Breakfast),
		SnackID:     id(m.Snack),
		LunchID:     id(m.Lunch),
		DinnerID:    id(m.Dinner),
	}
}
