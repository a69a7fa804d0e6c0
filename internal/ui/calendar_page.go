package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"menu-planner/internal/api"
	"menu-planner/internal/mealplan"
)

// menuLoadedMsg reports the outcome of a date selection.
type menuLoadedMsg struct{ err error }

// assignedMsg reports the outcome of a slot assignment persist.
type assignedMsg struct{ err error }

// CalendarPageModel renders one day's menu: four slots, day navigation, and
// the recipe picker overlay for filling a slot.
type CalendarPageModel struct {
	engine *mealplan.Engine
	picker *PickerModel
	styles Styles

	slotIdx int
	errMsg  string
	width   int
	height  int
}

// NewCalendarPageModel creates the calendar page anchored on today.
func NewCalendarPageModel(client api.Client, styles Styles) *CalendarPageModel {
	return &CalendarPageModel{
		engine: mealplan.NewEngine(client),
		picker: NewPickerModel(client, styles),
		styles: styles,
	}
}

// Init loads today's menu.
func (m *CalendarPageModel) Init() tea.Cmd {
	return m.selectDateCmd(time.Now())
}

// SetSize updates the page dimensions.
func (m *CalendarPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.picker.SetSize(w, h)
}

func (m *CalendarPageModel) selectDateCmd(date time.Time) tea.Cmd {
	return func() tea.Msg {
		return menuLoadedMsg{err: m.engine.SelectDate(context.Background(), date)}
	}
}

func (m *CalendarPageModel) assignCmd(rec api.RecipeSummary) tea.Cmd {
	return func() tea.Msg {
		return assignedMsg{err: m.engine.AssignRecipe(context.Background(), rec)}
	}
}

// Update handles messages for the calendar page.
func (m *CalendarPageModel) Update(msg tea.Msg) (*CalendarPageModel, tea.Cmd) {
	if m.picker.Visible() {
		picked, rec, cmd := m.picker.Update(msg)
		if picked {
			return m, m.assignCmd(rec)
		}
		if m.picker.Dismissed() {
			m.engine.ClosePicker()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case menuLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Failed to load menu: %v", msg.err)
		} else {
			m.errMsg = ""
		}
		return m, nil

	case assignedMsg:
		if msg.err != nil {
			// The optimistic assignment stays visible; only the failure is
			// surfaced.
			m.errMsg = fmt.Sprintf("Saving failed: %v", msg.err)
		} else {
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *CalendarPageModel) handleKey(msg tea.KeyMsg) (*CalendarPageModel, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		return m, m.selectDateCmd(m.engine.Date().AddDate(0, 0, -1))
	case "right", "l":
		return m, m.selectDateCmd(m.engine.Date().AddDate(0, 0, 1))
	case "t":
		return m, m.selectDateCmd(time.Now())
	case "up", "k":
		if m.slotIdx > 0 {
			m.slotIdx--
		}
	case "down", "j":
		if m.slotIdx < len(api.Slots)-1 {
			m.slotIdx++
		}
	case "enter":
		slot := api.Slots[m.slotIdx]
		category := m.engine.OpenPicker(slot)
		return m, m.picker.Open(slot, category)
	}
	return m, nil
}

// View renders the calendar page.
func (m *CalendarPageModel) View() string {
	if m.picker.Visible() {
		return m.picker.View()
	}

	var sb strings.Builder
	date := m.engine.Date()
	sb.WriteString(m.styles.Header.Render("Menu"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render(date.Format("Monday, 2 January 2006")))
	sb.WriteString("\n\n")

	menu := m.engine.Menu()
	for i, slot := range api.Slots {
		name := "—"
		detail := ""
		if menu != nil {
			if rec := menu.Slot(slot); rec != nil {
				name = rec.Name
				detail = fmt.Sprintf(" (%d kcal)", rec.Calories)
			}
		}
		line := fmt.Sprintf("%-10s %s%s", slotLabel(slot), name, detail)
		if i == m.slotIdx {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total: %d kcal", m.engine.TotalCalories()))
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("←/→ change day · t today · enter pick recipe"))
	return sb.String()
}

func slotLabel(slot api.MealSlot) string {
	s := string(slot)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
