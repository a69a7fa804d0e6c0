package api

// Category classifies a recipe. Slot pre-filtering in the picker maps each
// meal slot to one of these values.
type Category string

const (
	CategoryBreakfast Category = "BREAKFAST"
	CategorySnack     Category = "SNACK"
	CategoryLunch     Category = "LUNCH"
	CategoryDinner    Category = "DINNER"
)

// CaloriesBand is the coarse calorie filter used by the catalog.
type CaloriesBand string

const (
	CaloriesAll      CaloriesBand = "ALL"
	CaloriesLess100  CaloriesBand = "LESS_100"
	Calories100to200 CaloriesBand = "MORE_100_LESS_200"
	Calories200to300 CaloriesBand = "MORE_200_LESS_300"
	Calories300to400 CaloriesBand = "MORE_300_LESS_400"
	Calories400to500 CaloriesBand = "MORE_400_LESS_500"
	CaloriesMore500  CaloriesBand = "MORE_500"
)

// MealSlot is one of the four fixed positions in a daily menu.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotSnack     MealSlot = "snack"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
)

// Slots lists the four meal slots in display order.
var Slots = []MealSlot{SlotBreakfast, SlotSnack, SlotLunch, SlotDinner}

// Product is a catalog entry used as the autocomplete source for ingredients.
type Product struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}

// Ingredient ties a product to a quantity. Quantity 0 means "to taste",
// not a missing amount.
type Ingredient struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// RecipeSummary is the list-view projection of a recipe: no ingredients,
// no description.
type RecipeSummary struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Calories int      `json:"calories"`
	Portions int      `json:"portions"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Recipe is the full server representation, fetched on demand to hydrate
// a summary. Description is rich text (an HTML list of steps).
type Recipe struct {
	RecipeSummary
	Ingredients []Ingredient `json:"ingredients"`
	Description string       `json:"description"`
}

// Menu holds at most one recipe per slot for a single calendar date.
// ID is zero until the server has persisted the menu; a zero ID routes the
// next write through create rather than update.
type Menu struct {
	ID        int64          `json:"id,omitempty"`
	Date      string         `json:"date"`
	Breakfast *RecipeSummary `json:"breakfast,omitempty"`
	Snack     *RecipeSummary `json:"snack,omitempty"`
	Lunch     *RecipeSummary `json:"lunch,omitempty"`
	Dinner    *RecipeSummary `json:"dinner,omitempty"`
}

// Slot returns the recipe assigned to the given slot, or nil.
func (m *Menu) Slot(s MealSlot) *RecipeSummary {
	switch s {
	case SlotBreakfast:
		return m.Breakfast
	case SlotSnack:
		return m.Snack
	case SlotLunch:
		return m.Lunch
	case SlotDinner:
		return m.Dinner
	}
	return nil
}

// SetSlot assigns a recipe to the given slot.
func (m *Menu) SetSlot(s MealSlot, r *RecipeSummary) {
	switch s {
	case SlotBreakfast:
		m.Breakfast = r
	case SlotSnack:
		m.Snack = r
	case SlotLunch:
		m.Lunch = r
	case SlotDinner:
		m.Dinner = r
	}
}

// MenuPayload is the write shape for POST /menus and PUT /menus/{id}.
// Each slot carries the referenced recipe id, or null when unassigned.
type MenuPayload struct {
	Date        string `json:"date"`
	BreakfastID *int64 `json:"breakfastId"`
	SnackID     *int64 `json:"snackId"`
	LunchID     *int64 `json:"lunchId"`
	DinnerID    *int64 `json:"dinnerId"`
}

// GroceryItem is one aggregated line of a generated shopping list. The
// aggregation happens entirely server-side; the client only renders it.
type GroceryItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
