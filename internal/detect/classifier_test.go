package detect

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/maminech/sanitary/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Classify(t *testing.T) {
	detector := NewDetector(DefaultRules())
	ctx := context.Background()

	toiletDims := model.Dimensions{Width: 0.4, Height: 0.75, Depth: 0.6}

	tests := []struct {
		name           string
		candidate      Candidate
		wantType       FixtureType
		wantConfidence float64
		wantNil        bool
	}{
		{
			name: "name and dimensions both match",
			candidate: Candidate{
				Name:       "Modern Wall-Mounted Toilet",
				Position:   model.Vector3{X: 2.5, Z: 1.5},
				Dimensions: toiletDims,
			},
			wantType:       FixtureToilet,
			wantConfidence: 0.9,
		},
		{
			name: "name match only",
			candidate: Candidate{
				Name: "WC Compact",
			},
			wantType:       FixtureToilet,
			wantConfidence: 0.6,
		},
		{
			name: "dimension match only",
			candidate: Candidate{
				Name:       "Object_12",
				Dimensions: toiletDims,
			},
			wantType:       FixtureToilet,
			wantConfidence: 0.3,
		},
		{
			name: "keyword precedence pins enumeration order",
			candidate: Candidate{
				Name: "Toilet Sink Combo",
			},
			// TOILET is tested before SINK in the rule order.
			wantType:       FixtureToilet,
			wantConfidence: 0.6,
		},
		{
			name: "incomplete dimensions never dimension-match",
			candidate: Candidate{
				Name:       "Object_7",
				Dimensions: model.Dimensions{Width: 0.4, Height: 0.75},
			},
			wantNil: true,
		},
		{
			name:      "empty name is skipped before any matching",
			candidate: Candidate{Dimensions: toiletDims},
			wantNil:   true,
		},
		{
			name: "no keyword and no dimensions",
			candidate: Candidate{
				Name: "Structural Column",
			},
			wantNil: true,
		},
		{
			name: "french keyword",
			candidate: Candidate{
				Name: "Receveur 90x90",
			},
			wantType:       FixtureShowerTray,
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := detector.Classify(ctx, tt.candidate)
			if tt.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.wantType, result.Type)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			assert.Equal(t, tt.candidate.Name, result.Name)
			assert.Equal(t, tt.candidate.Position, result.Position)
		})
	}
}

func TestDetector_Classify_GeometryConfidence(t *testing.T) {
	detector := NewDetector(DefaultRules())
	ctx := context.Background()

	geometry := json.RawMessage(`{"boundingBox":{"min":{"x":0,"y":0,"z":0},"max":{"x":0.4,"y":0.75,"z":0.6}}}`)

	t.Run("name, dimensions and geometry cap at 1.0", func(t *testing.T) {
		result := detector.Classify(ctx, Candidate{
			Name:       "Modern Wall-Mounted Toilet",
			Dimensions: model.Dimensions{Width: 0.4, Height: 0.75, Depth: 0.6},
			Geometry:   geometry,
		})
		require.NotNil(t, result)
		assert.Equal(t, FixtureToilet, result.Type)
		assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	})

	t.Run("dimensions derived from bounding box", func(t *testing.T) {
		result := detector.Classify(ctx, Candidate{
			Name:     "Object_3",
			Geometry: geometry,
		})
		require.NotNil(t, result)
		assert.Equal(t, FixtureToilet, result.Type)
		require.NotNil(t, result.BoundingBox)
		assert.InDelta(t, 0.4, result.Dimensions.Width, 1e-9)
		assert.InDelta(t, 0.75, result.Dimensions.Height, 1e-9)
		assert.InDelta(t, 0.6, result.Dimensions.Depth, 1e-9)
		// dimension match + geometry, no name match
		assert.InDelta(t, 0.4, result.Confidence, 1e-9)
	})

	t.Run("explicit dimensions win over geometry", func(t *testing.T) {
		result := detector.Classify(ctx, Candidate{
			Name:       "Freestanding Bathtub",
			Dimensions: model.Dimensions{Width: 0.8, Height: 0.5, Depth: 1.6},
			Geometry:   geometry,
		})
		require.NotNil(t, result)
		assert.Equal(t, FixtureBathtub, result.Type)
		assert.InDelta(t, 0.8, result.Dimensions.Width, 1e-9)
	})

	t.Run("malformed geometry degrades silently", func(t *testing.T) {
		result := detector.Classify(ctx, Candidate{
			Name:     "Toilet_01",
			Geometry: json.RawMessage(`{"vertices":[1,2`),
		})
		require.NotNil(t, result)
		assert.Equal(t, FixtureToilet, result.Type)
		assert.Nil(t, result.BoundingBox)
		// Geometry was present even though it could not be interpreted.
		assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	})
}

func TestDetector_Classify_DimensionTieBreak(t *testing.T) {
	detector := NewDetector(DefaultRules())

	// These extents score 3 for both SINK and WASHBASIN; SINK comes first in
	// the rule order and must win.
	result := detector.Classify(context.Background(), Candidate{
		Name:       "Fixture_22",
		Dimensions: model.Dimensions{Width: 0.5, Height: 0.2, Depth: 0.5},
	})
	require.NotNil(t, result)
	assert.Equal(t, FixtureSink, result.Type)
}

func TestDetector_Classify_Deterministic(t *testing.T) {
	detector := NewDetector(DefaultRules())
	ctx := context.Background()

	candidate := Candidate{
		Name:       "Pedestal Sink",
		Dimensions: model.Dimensions{Width: 0.5, Height: 0.2, Depth: 0.45},
	}

	first := detector.Classify(ctx, candidate)
	second := detector.Classify(ctx, candidate)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.GreaterOrEqual(t, first.Confidence, 0.0)
	assert.LessOrEqual(t, first.Confidence, 1.0)
}

func TestDetector_ClassifyAll(t *testing.T) {
	detector := NewDetector(DefaultRules())
	ctx := context.Background()

	candidates := []Candidate{
		{Name: "Toilet_01", Dimensions: model.Dimensions{Width: 0.4, Height: 0.75, Depth: 0.6}},
		{Name: "Load Bearing Wall"},
		{Name: "Sink_Wall_Mount", Dimensions: model.Dimensions{Width: 0.5, Height: 0.2, Depth: 0.45}},
		{Name: ""},
		{Name: "Shower_Tray_90x90", Dimensions: model.Dimensions{Width: 0.9, Height: 0.1, Depth: 0.9}},
	}

	results, err := detector.ClassifyAll(ctx, candidates)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Input order is preserved among emitted results.
	assert.Equal(t, FixtureToilet, results[0].Type)
	assert.Equal(t, FixtureSink, results[1].Type)
	// "Shower_Tray_90x90" name-matches SHOWER first: the underscore defeats
	// the "shower tray" keyword and name matches take precedence over the
	// dimension match.
	assert.Equal(t, FixtureShower, results[2].Type)
}

func TestDetector_ClassifyAll_Cancellation(t *testing.T) {
	detector := NewDetector(DefaultRules())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := detector.ClassifyAll(ctx, []Candidate{{Name: "Toilet_01"}})
	assert.ErrorIs(t, err, context.Canceled)
}
