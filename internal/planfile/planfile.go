// Package planfile reads building-plan scene files and extracts the objects
// that the classifier examines. Scene files are JSON documents listing named
// objects with optional position, dimension, and geometry payloads.
package planfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/maminech/sanitary/internal/detect"
)

// scene is the on-disk document shape. Objects may appear under either the
// "objects" or the "children" key since exporters differ on the name.
type scene struct {
	Name     string             `json:"name"`
	Objects  []detect.Candidate `json:"objects"`
	Children []detect.Candidate `json:"children"`
}

// Parse reads a scene document and returns its objects as detection
// candidates. Objects with no name are kept; the classifier skips them.
func Parse(r io.Reader) ([]detect.Candidate, error) {
	var doc scene
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	candidates := doc.Objects
	if len(candidates) == 0 {
		candidates = doc.Children
	}
	return candidates, nil
}

// ParseFile opens and parses a scene file from disk.
func ParseFile(path string) ([]detect.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan file: %w", err)
	}
	defer f.Close()

	candidates, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return candidates, nil
}
