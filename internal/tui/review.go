// Package tui implements the interactive detection review interface: it
// walks a plan's unresolved detections and lets the user assign a catalog
// product to each one before quotation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maminech/sanitary/internal/cli"
	"github.com/maminech/sanitary/internal/model"
)

// Assignment pairs a detection with the catalog product chosen for it.
type Assignment struct {
	DetectionID string
	ProductID   string
}

// ReviewModel is the bubbletea model for the detection review flow. One
// detection is shown at a time with the filterable catalog below it; enter
// assigns the highlighted product and advances to the next detection.
type ReviewModel struct {
	filter      textinput.Model
	keymap      KeyMap
	planName    string
	detections  []model.DetectedProduct
	products    []model.Product
	assignments []Assignment
	index       int
	cursor      int
	width       int
	height      int
	filtering   bool
	done        bool
}

// NewReviewModel creates a review model over the given unresolved detections
// and catalog.
func NewReviewModel(planName string, detections []model.DetectedProduct, products []model.Product) ReviewModel {
	filter := textinput.New()
	filter.Placeholder = "Filter by name or SKU..."
	filter.CharLimit = 50

	return ReviewModel{
		planName:   planName,
		detections: detections,
		products:   products,
		filter:     filter,
		keymap:     DefaultKeyMap(),
	}
}

// Assignments returns the detection/product pairs chosen during the review.
func (m ReviewModel) Assignments() []Assignment {
	return m.assignments
}

// Done reports whether the review ran through every detection.
func (m ReviewModel) Done() bool {
	return m.done
}

// Init initializes the model.
func (m ReviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keymap.Down):
			if m.cursor < len(m.visibleProducts())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keymap.Filter):
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keymap.Cancel):
			m.filter.SetValue("")
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keymap.Select):
			visible := m.visibleProducts()
			if len(visible) == 0 {
				return m, nil
			}
			m.assignments = append(m.assignments, Assignment{
				DetectionID: m.detections[m.index].ID,
				ProductID:   visible[m.cursor].ID,
			})
			return m.advance()

		case key.Matches(msg, m.keymap.Skip):
			return m.advance()
		}
	}

	return m, nil
}

func (m ReviewModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Select), key.Matches(msg, m.keymap.Cancel):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

// advance moves to the next unresolved detection, finishing the review when
// none remain.
func (m ReviewModel) advance() (tea.Model, tea.Cmd) {
	m.index++
	m.cursor = 0
	m.filter.SetValue("")
	if m.index >= len(m.detections) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// visibleProducts returns the catalog filtered by the current query, matched
// case-insensitively against product names and SKUs.
func (m ReviewModel) visibleProducts() []model.Product {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.products
	}

	var visible []model.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.SKU), query) {
			visible = append(visible, p)
		}
	}
	return visible
}

// View renders the current detection and the catalog picker.
func (m ReviewModel) View() string {
	if m.done || m.index >= len(m.detections) {
		return ""
	}

	det := m.detections[m.index]

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Reviewing %s (%d/%d)", m.planName, m.index+1, len(m.detections))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Object:     %s\n", det.Name))
	b.WriteString(fmt.Sprintf("Type:       %s\n", det.DetectedType))
	b.WriteString(fmt.Sprintf("Confidence: %.2f\n", det.Confidence))
	if det.Dimensions.Complete() {
		b.WriteString(fmt.Sprintf("Dimensions: %.2fx%.2fx%.2f m\n",
			det.Dimensions.Width, det.Dimensions.Height, det.Dimensions.Depth))
	}
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	visible := m.visibleProducts()
	if len(visible) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No catalog products match the filter."))
		b.WriteString("\n")
	}
	for i, p := range visible {
		line := fmt.Sprintf("%s  %s (%.2f %s)", p.SKU, p.Name, p.BasePrice, p.Currency)
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor).Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter assign · s skip · / filter · q quit"))
	b.WriteString("\n")
	return b.String()
}
