package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"menu-planner/internal/api"
	"menu-planner/internal/suggest"
)

// productsMsg carries the product list fetched for an edit session.
type productsMsg struct {
	products []api.Product
	err      error
}

// blurTickMsg re-renders after the suggestion blur grace delay has passed.
type blurTickMsg struct{}

// ingredientRow is one editable ingredient line.
type ingredientRow struct {
	product  api.Product
	quantity int
}

// EditorPageModel is the ingredient editor: free-text product input with the
// prefix-match suggestion dropdown and keyboard selection.
type EditorPageModel struct {
	source *suggest.ProductSource
	styles Styles

	suggester *suggest.Suggester
	input     textinput.Model
	rows      []ingredientRow
	activeRow int
	loaded    bool
	errMsg    string
	width     int
	height    int
}

// NewEditorPageModel creates the editor page. Products are fetched once per
// edit session when the page initializes.
func NewEditorPageModel(source *suggest.ProductSource, styles Styles) *EditorPageModel {
	input := textinput.New()
	input.Placeholder = "Ingredient"
	input.Focus()
	return &EditorPageModel{
		source:    source,
		styles:    styles,
		suggester: suggest.New(nil),
		input:     input,
		rows:      []ingredientRow{{}},
	}
}

// Init fetches the product list for this session.
func (m *EditorPageModel) Init() tea.Cmd {
	return func() tea.Msg {
		products, err := m.source.Products(context.Background())
		return productsMsg{products: products, err: err}
	}
}

// SetSize updates the page dimensions.
func (m *EditorPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages for the editor page.
func (m *EditorPageModel) Update(msg tea.Msg) (*EditorPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsMsg:
		if msg.err != nil {
			// A missing product list just means zero suggestions.
			m.errMsg = fmt.Sprintf("Products unavailable: %v", msg.err)
			return m, nil
		}
		m.loaded = true
		m.errMsg = ""
		m.suggester = suggest.New(msg.products)
		return m, nil

	case blurTickMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorPageModel) handleKey(msg tea.KeyMsg) (*EditorPageModel, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.suggester.MoveDown()
		return m, nil
	case "up":
		m.suggester.MoveUp()
		return m, nil
	case "enter":
		if p, ok := m.suggester.Commit(); ok {
			m.commitProduct(p)
		}
		return m, nil
	case "esc":
		// Blur: the dropdown closes only after the grace delay, so a commit
		// racing the blur still lands.
		m.suggester.Blur(func() bool { return false })
		return m, tea.Tick(suggest.DefaultBlurGrace+10*time.Millisecond, func(time.Time) tea.Msg {
			return blurTickMsg{}
		})
	case "ctrl+n":
		m.rows = append(m.rows, ingredientRow{})
		m.activeRow = len(m.rows) - 1
		m.input.SetValue("")
		m.suggester.Input("")
		return m, nil
	case "+":
		m.rows[m.activeRow].quantity++
		return m, nil
	case "-":
		if m.rows[m.activeRow].quantity > 0 {
			// Quantity 0 is the "to taste" sentinel, not an error.
			m.rows[m.activeRow].quantity--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggester.Input(m.input.Value())
	return m, cmd
}

// commitProduct copies the chosen product's name, unit and category into the
// active ingredient row, exactly as a click or Enter would.
func (m *EditorPageModel) commitProduct(p api.Product) {
	m.rows[m.activeRow].product = p
	m.input.SetValue(p.Name)
	m.input.CursorEnd()
}

// View renders the editor page.
func (m *EditorPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Ingredients"))
	sb.WriteString("\n")

	for i, row := range m.rows {
		marker := "  "
		if i == m.activeRow {
			marker = "> "
		}
		qty := fmt.Sprintf("%d %s", row.quantity, row.product.Unit)
		if row.quantity == 0 {
			qty = "to taste"
		}
		name := row.product.Name
		if i == m.activeRow {
			name = m.input.View()
		}
		sb.WriteString(fmt.Sprintf("%s%-40s %s\n", marker, name, m.styles.Muted.Render(qty)))

		if i == m.activeRow && m.suggester.Open() {
			for j, p := range m.suggester.Matches() {
				line := fmt.Sprintf("    %s (%s)", p.Name, p.Unit)
				if j == m.suggester.Highlighted() {
					line = m.styles.Highlight.Render(line)
				}
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("type to search · ↑/↓ navigate · enter pick · ctrl+n new row · +/- quantity"))
	return sb.String()
}
