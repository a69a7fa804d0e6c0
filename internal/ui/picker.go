package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"menu-planner/internal/api"
	"menu-planner/internal/catalog"
)

// pickerLoadedMsg reports the outcome of the picker's pre-filtered load.
type pickerLoadedMsg struct{ err error }

// PickerModel is the recipe picker overlay: an embedded catalog pre-filtered
// to the category of the slot being filled.
type PickerModel struct {
	loader *catalog.Loader
	styles Styles

	visible   bool
	dismissed bool
	slot      api.MealSlot
	cursor    int
	errMsg    string
	width     int
	height    int
}

// NewPickerModel creates a hidden picker.
func NewPickerModel(client api.Client, styles Styles) *PickerModel {
	return &PickerModel{
		loader: catalog.NewLoader(client),
		styles: styles,
	}
}

// Open shows the picker for slot, pre-filtered to category.
func (p *PickerModel) Open(slot api.MealSlot, category api.Category) tea.Cmd {
	p.visible = true
	p.dismissed = false
	p.slot = slot
	p.cursor = 0
	p.errMsg = ""
	filter := api.RecipeFilter{}
	if category != "" {
		filter.Categories = []api.Category{category}
	}
	return func() tea.Msg {
		return pickerLoadedMsg{err: p.loader.SetFilter(context.Background(), filter)}
	}
}

// Visible reports whether the overlay is shown.
func (p *PickerModel) Visible() bool {
	return p.visible
}

// Dismissed reports whether the last Update closed the picker without a
// choice.
func (p *PickerModel) Dismissed() bool {
	return p.dismissed
}

// SetSize updates the overlay dimensions.
func (p *PickerModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages while the picker is open. It reports a committed
// recipe choice through picked.
func (p *PickerModel) Update(msg tea.Msg) (picked bool, rec api.RecipeSummary, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case pickerLoadedMsg:
		if msg.err != nil {
			p.errMsg = fmt.Sprintf("Failed to load recipes: %v", msg.err)
		}
		return false, api.RecipeSummary{}, nil

	case tea.KeyMsg:
		items := p.loader.Items()
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(items)-1 {
				p.cursor++
			}
			if p.loader.HasMore() && len(items)-p.cursor <= 3 {
				return false, api.RecipeSummary{}, p.loadNextCmd()
			}
		case "enter":
			if p.cursor < len(items) {
				p.close()
				return true, items[p.cursor], nil
			}
		case "esc", "q":
			p.close()
			p.dismissed = true
			p.loader.Invalidate()
		}
	}
	return false, api.RecipeSummary{}, nil
}

func (p *PickerModel) loadNextCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := p.loader.LoadNextPage(context.Background())
		return pickerLoadedMsg{err: err}
	}
}

func (p *PickerModel) close() {
	p.visible = false
}

// View renders the picker overlay.
func (p *PickerModel) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(fmt.Sprintf("Pick a recipe for %s", slotLabel(p.slot))))
	sb.WriteString("\n\n")

	items := p.loader.Items()
	if len(items) == 0 {
		sb.WriteString(p.styles.Muted.Render("No recipes in this category."))
		sb.WriteString("\n")
	}
	for i, item := range items {
		line := fmt.Sprintf("%-30s %4d kcal", item.Name, item.Calories)
		if i == p.cursor {
			line = p.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if p.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(p.styles.Error.Render(p.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(p.styles.Muted.Render("enter assign · esc cancel"))
	return p.styles.Overlay.Render(sb.String())
}
