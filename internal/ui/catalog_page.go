package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"menu-planner/internal/api"
	"menu-planner/internal/catalog"
	"menu-planner/internal/grocery"
	"menu-planner/internal/recipe"
)

// loadResultMsg reports the outcome of a debounced catalog load.
type loadResultMsg struct {
	loaded bool
	err    error
}

// filterAppliedMsg reports the outcome of a filter reset.
type filterAppliedMsg struct{ err error }

// groceryListMsg carries a freshly generated grocery list.
type groceryListMsg struct {
	items []api.GroceryItem
	err   error
}

// previewMsg carries a hydrated recipe for the preview overlay.
type previewMsg struct {
	recipe *api.Recipe
	steps  []string
	err    error
}

// categoryCycle is the order the category filter cycles through. The empty
// entry means "all categories".
var categoryCycle = []api.Category{"", api.CategoryBreakfast, api.CategorySnack, api.CategoryLunch, api.CategoryDinner}

// bandCycle is the order the calorie band filter cycles through.
var bandCycle = []api.CaloriesBand{
	api.CaloriesAll, api.CaloriesLess100, api.Calories100to200, api.Calories200to300,
	api.Calories300to400, api.Calories400to500, api.CaloriesMore500,
}

// CatalogPageModel renders the recipe catalog: an infinitely scrolled,
// filterable list with checkbox selection feeding the grocery list.
type CatalogPageModel struct {
	client    api.Client
	loader    *catalog.Loader
	trigger   *catalog.ScrollTrigger
	requester *grocery.Requester
	loads     chan loadResultMsg
	styles    Styles

	cursor       int
	categoryIdx  int
	bandIdx      int
	selected     map[int64]bool
	groceryItems []api.GroceryItem
	preview      *api.Recipe
	previewSteps []string
	errMsg       string
	width        int
	height       int
}

// NewCatalogPageModel creates the catalog page. Scroll events are debounced
// before they reach the loader.
func NewCatalogPageModel(client api.Client, styles Styles) *CatalogPageModel {
	loader := catalog.NewLoader(client)
	loads := make(chan loadResultMsg, 8)
	trigger := catalog.NewScrollTrigger(loader, catalog.DefaultScrollQuiet, func(loaded bool, err error) {
		loads <- loadResultMsg{loaded: loaded, err: err}
	})
	return &CatalogPageModel{
		client:    client,
		loader:    loader,
		trigger:   trigger,
		requester: grocery.NewRequester(client),
		loads:     loads,
		styles:    styles,
		selected:  make(map[int64]bool),
	}
}

// Init loads the first page and starts listening for debounced load results.
func (m *CatalogPageModel) Init() tea.Cmd {
	return tea.Batch(m.loadNextCmd(), m.waitForLoad())
}

// Close abandons in-flight work when the page unmounts.
func (m *CatalogPageModel) Close() {
	m.trigger.Stop()
	m.loader.Invalidate()
}

// SetSize updates the page dimensions.
func (m *CatalogPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *CatalogPageModel) loadNextCmd() tea.Cmd {
	return func() tea.Msg {
		loaded, err := m.loader.LoadNextPage(context.Background())
		return loadResultMsg{loaded: loaded, err: err}
	}
}

// waitForLoad forwards debounced trigger results into the program.
func (m *CatalogPageModel) waitForLoad() tea.Cmd {
	return func() tea.Msg {
		return <-m.loads
	}
}

func (m *CatalogPageModel) applyFilterCmd() tea.Cmd {
	filter := api.RecipeFilter{Calories: bandCycle[m.bandIdx]}
	if cat := categoryCycle[m.categoryIdx]; cat != "" {
		filter.Categories = []api.Category{cat}
	}
	return func() tea.Msg {
		return filterAppliedMsg{err: m.loader.SetFilter(context.Background(), filter)}
	}
}

func (m *CatalogPageModel) generateCmd() tea.Cmd {
	ids := make([]int64, 0, len(m.selected))
	for _, item := range m.loader.Items() {
		if m.selected[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return func() tea.Msg {
		items, err := m.requester.Generate(context.Background(), ids)
		return groceryListMsg{items: items, err: err}
	}
}

func (m *CatalogPageModel) previewCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.client.GetRecipe(context.Background(), id)
		if err != nil {
			return previewMsg{err: err}
		}
		steps, err := recipe.ParseDescription(rec.Description)
		if err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{recipe: rec, steps: steps}
	}
}

// Update handles messages for the catalog page.
func (m *CatalogPageModel) Update(msg tea.Msg) (*CatalogPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loadResultMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Load failed (will retry on scroll): %v", msg.err)
		} else if msg.loaded {
			m.errMsg = ""
		}
		return m, m.waitForLoad()

	case filterAppliedMsg:
		m.cursor = 0
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Filter load failed: %v", msg.err)
		} else {
			m.errMsg = ""
		}
		return m, nil

	case groceryListMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Grocery list failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.groceryItems = msg.items
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Preview failed: %v", msg.err)
			return m, nil
		}
		m.preview = msg.recipe
		m.previewSteps = msg.steps
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *CatalogPageModel) handleKey(msg tea.KeyMsg) (*CatalogPageModel, tea.Cmd) {
	if m.preview != nil {
		// Any key dismisses the preview overlay.
		m.preview = nil
		m.previewSteps = nil
		return m, nil
	}

	items := m.loader.Items()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		if m.nearBottom(len(items)) {
			m.trigger.NearBottom(context.Background())
		}
	case " ":
		if m.cursor < len(items) {
			id := items[m.cursor].ID
			m.selected[id] = !m.selected[id]
		}
	case "enter":
		if m.cursor < len(items) {
			return m, m.previewCmd(items[m.cursor].ID)
		}
	case "f":
		m.categoryIdx = (m.categoryIdx + 1) % len(categoryCycle)
		return m, m.applyFilterCmd()
	case "c":
		m.bandIdx = (m.bandIdx + 1) % len(bandCycle)
		return m, m.applyFilterCmd()
	case "g":
		return m, m.generateCmd()
	case "x":
		m.groceryItems = nil
		m.requester.Clear()
	}
	return m, nil
}

// nearBottom reports whether the cursor is close enough to the end of the
// loaded sequence to ask for the next page.
func (m *CatalogPageModel) nearBottom(total int) bool {
	return m.loader.HasMore() && total-m.cursor <= 3
}

// View renders the catalog page.
func (m *CatalogPageModel) View() string {
	if m.preview != nil {
		return m.viewPreview()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Recipes"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("filter: %s  calories: %s",
		categoryLabel(categoryCycle[m.categoryIdx]), bandCycle[m.bandIdx])))
	sb.WriteString("\n\n")

	items := m.loader.Items()
	if len(items) == 0 {
		sb.WriteString(m.styles.Muted.Render("No recipes loaded."))
		sb.WriteString("\n")
	}

	top, bottom := m.visibleWindow(len(items))
	for i := top; i < bottom; i++ {
		item := items[i]
		check := "[ ]"
		if m.selected[item.ID] {
			check = m.styles.Checked.Render("[x]")
		}
		line := fmt.Sprintf("%s %-30s %-10s %4d kcal", check, item.Name, item.Category, item.Calories)
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.loader.Loading() {
		sb.WriteString(m.styles.Muted.Render("loading…"))
		sb.WriteString("\n")
	} else if !m.loader.HasMore() {
		sb.WriteString(m.styles.Muted.Render("— end of catalog —"))
		sb.WriteString("\n")
	}

	if len(m.groceryItems) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Title.Render("Grocery list"))
		sb.WriteString("\n")
		sb.WriteString(renderGroceryTable(m.groceryItems))
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("space select · enter preview · f category · c calories · g grocery list"))
	return sb.String()
}

// visibleWindow keeps the cursor inside the rendered slice.
func (m *CatalogPageModel) visibleWindow(total int) (int, int) {
	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	top := 0
	if m.cursor >= rows {
		top = m.cursor - rows + 1
	}
	bottom := top + rows
	if bottom > total {
		bottom = total
	}
	return top, bottom
}

func (m *CatalogPageModel) viewPreview() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.preview.Name))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %d kcal · %d portions",
		m.preview.Category, m.preview.Calories, m.preview.Portions)))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Header.Render("Ingredients"))
	sb.WriteString("\n")
	for _, ing := range m.preview.Ingredients {
		qty := fmt.Sprintf("%d %s", ing.Quantity, ing.Product.Unit)
		if ing.Quantity == 0 {
			qty = "to taste"
		}
		sb.WriteString(fmt.Sprintf("  %s — %s\n", ing.Product.Name, qty))
	}

	if len(m.previewSteps) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Header.Render("Steps"))
		sb.WriteString("\n")
		for i, step := range m.previewSteps {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("press any key to close"))
	return m.styles.Overlay.Render(sb.String())
}

func categoryLabel(c api.Category) string {
	if c == "" {
		return "ALL"
	}
	return string(c)
}

// renderGroceryTable renders the aggregated list exactly as the server
// returned it.
func renderGroceryTable(items []api.GroceryItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %-25s %10s %-6s\n", "Product", "Quantity", "Unit"))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  %-25s %10s %-6s\n", item.Name, trimFloat(item.Quantity), item.Unit))
	}
	return sb.String()
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
