package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maminech/sanitary/internal/model"
)

func testDetections() []model.DetectedProduct {
	return []model.DetectedProduct{
		{ID: "det-1", PlanID: "plan-1", DetectedType: "TOILET", Name: "Toilet_01", Confidence: 0.9},
		{ID: "det-2", PlanID: "plan-1", DetectedType: "SINK", Name: "Sink_01", Confidence: 0.6},
	}
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "prod-toilet", SKU: "TOILET-001", Name: "Modern Wall-Mounted Toilet", BasePrice: 450, Currency: "EUR"},
		{ID: "prod-sink", SKU: "SINK-002", Name: "Pedestal Sink", BasePrice: 195, Currency: "EUR"},
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(m tea.Model, msg tea.Msg) tea.Model {
	next, _ := m.Update(msg)
	return next
}

func TestReviewAssignAndAdvance(t *testing.T) {
	var m tea.Model = NewReviewModel("bathroom", testDetections(), testProducts())

	// Assign the first product to the first detection.
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	review, ok := m.(ReviewModel)
	require.True(t, ok)
	require.Len(t, review.Assignments(), 1)
	assert.Equal(t, "det-1", review.Assignments()[0].DetectionID)
	assert.Equal(t, "prod-toilet", review.Assignments()[0].ProductID)
	assert.False(t, review.Done())

	// Move down and assign the second product to the second detection; the
	// review completes and quits.
	m = press(m, keyPress('j'))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	review, ok = next.(ReviewModel)
	require.True(t, ok)
	require.Len(t, review.Assignments(), 2)
	assert.Equal(t, "det-2", review.Assignments()[1].DetectionID)
	assert.Equal(t, "prod-sink", review.Assignments()[1].ProductID)
	assert.True(t, review.Done())
	require.NotNil(t, cmd)
}

func TestReviewSkipLeavesDetectionUnassigned(t *testing.T) {
	var m tea.Model = NewReviewModel("bathroom", testDetections(), testProducts())

	m = press(m, keyPress('s'))
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	review, ok := m.(ReviewModel)
	require.True(t, ok)
	require.Len(t, review.Assignments(), 1)
	assert.Equal(t, "det-2", review.Assignments()[0].DetectionID)
	assert.True(t, review.Done())
}

func TestReviewFilterNarrowsCatalog(t *testing.T) {
	var m tea.Model = NewReviewModel("bathroom", testDetections(), testProducts())

	// Enter filter mode, type "sink", confirm, then assign.
	m = press(m, keyPress('/'))
	for _, r := range "sink" {
		m = press(m, keyPress(r))
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	review, ok := m.(ReviewModel)
	require.True(t, ok)
	require.Len(t, review.Assignments(), 1)
	assert.Equal(t, "prod-sink", review.Assignments()[0].ProductID)
}

func TestReviewCursorStaysInBounds(t *testing.T) {
	var m tea.Model = NewReviewModel("bathroom", testDetections(), testProducts())

	// Moving past either end of the catalog must not panic or wrap.
	m = press(m, keyPress('k'))
	m = press(m, keyPress('j'))
	m = press(m, keyPress('j'))
	m = press(m, keyPress('j'))
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	review, ok := m.(ReviewModel)
	require.True(t, ok)
	require.Len(t, review.Assignments(), 1)
	assert.Equal(t, "prod-sink", review.Assignments()[0].ProductID)
}

func TestReviewViewShowsDetection(t *testing.T) {
	m := NewReviewModel("bathroom", testDetections(), testProducts())

	view := m.View()
	assert.Contains(t, view, "Toilet_01")
	assert.Contains(t, view, "TOILET-001")
	assert.Contains(t, view, "1/2")
}
