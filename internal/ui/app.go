package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"menu-planner/internal/api"
	"menu-planner/internal/suggest"
)

// page identifies the active top-level view.
type page int

const (
	pageCatalog page = iota
	pageCalendar
	pageEditor
)

// App is the root model: it owns the pages and routes messages to the one
// that is active.
type App struct {
	styles   Styles
	active   page
	catalog  *CatalogPageModel
	calendar *CalendarPageModel
	editor   *EditorPageModel
	width    int
	height   int
}

// NewApp wires the pages to their engines.
func NewApp(client api.Client, products *suggest.ProductSource) *App {
	styles := DefaultStyles()
	return &App{
		styles:   styles,
		catalog:  NewCatalogPageModel(client, styles),
		calendar: NewCalendarPageModel(client, styles),
		editor:   NewEditorPageModel(products, styles),
	}
}

// Init starts the catalog page.
func (a *App) Init() tea.Cmd {
	return a.catalog.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalog.SetSize(msg.Width, msg.Height)
		a.calendar.SetSize(msg.Width, msg.Height)
		a.editor.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.catalog.Close()
			return a, tea.Quit
		case "1":
			return a.switchTo(pageCatalog)
		case "2":
			return a.switchTo(pageCalendar)
		case "3":
			return a.switchTo(pageEditor)
		}
	}

	return a.route(msg)
}

// switchTo activates a page, initializing it on first entry. Leaving the
// catalog abandons its in-flight requests.
func (a *App) switchTo(p page) (tea.Model, tea.Cmd) {
	if p == a.active {
		return a, nil
	}
	if a.active == pageCatalog && p != pageCatalog {
		a.catalog.Close()
	}
	a.active = p
	switch p {
	case pageCatalog:
		return a, a.catalog.Init()
	case pageCalendar:
		return a, a.calendar.Init()
	case pageEditor:
		return a, a.editor.Init()
	}
	return a, nil
}

// route delivers msg to the active page. Load results are always delivered
// to the catalog, which owns the debounced trigger channel.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case pageCatalog:
		a.catalog, cmd = a.catalog.Update(msg)
	case pageCalendar:
		switch msg.(type) {
		case loadResultMsg:
			a.catalog, cmd = a.catalog.Update(msg)
		default:
			a.calendar, cmd = a.calendar.Update(msg)
		}
	case pageEditor:
		switch msg.(type) {
		case loadResultMsg:
			a.catalog, cmd = a.catalog.Update(msg)
		default:
			a.editor, cmd = a.editor.Update(msg)
		}
	}
	return a, cmd
}

// View renders the active page plus the tab bar.
func (a *App) View() string {
	var body string
	switch a.active {
	case pageCatalog:
		body = a.catalog.View()
	case pageCalendar:
		body = a.calendar.View()
	case pageEditor:
		body = a.editor.View()
	}
	tabs := a.styles.StatusBar.Render(" 1 Recipes  2 Calendar  3 Editor  ctrl+c quit ")
	return body + "\n" + tabs
}
