package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := `{
		"name": "bathroom-1",
		"objects": [
			{
				"name": "Modern Wall-Mounted Toilet",
				"position": {"x": 1.5, "y": 0, "z": 2.0},
				"dimensions": {"width": 40, "height": 45, "depth": 60}
			},
			{
				"name": "Pedestal Sink",
				"geometry": {"boundingBox": {"min": {"x": 0, "y": 0, "z": 0}, "max": {"x": 0.5, "y": 0.4, "z": 0.4}}}
			}
		]
	}`

	candidates, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Modern Wall-Mounted Toilet", candidates[0].Name)
	assert.Equal(t, 1.5, candidates[0].Position.X)
	assert.Equal(t, 40.0, candidates[0].Dimensions.Width)
	assert.Empty(t, candidates[0].Geometry)

	assert.Equal(t, "Pedestal Sink", candidates[1].Name)
	assert.NotEmpty(t, candidates[1].Geometry)
}

func TestParseChildrenKey(t *testing.T) {
	doc := `{"children": [{"name": "Shower Cabin"}]}`

	candidates, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Shower Cabin", candidates[0].Name)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"objects": [`))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	err := os.WriteFile(path, []byte(`{"objects": [{"name": "Bathtub_01"}]}`), 0o600)
	require.NoError(t, err)

	candidates, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Bathtub_01", candidates[0].Name)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
