package detect

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/maminech/sanitary/internal/model"
)

// Confidence weights. Name matches carry the most signal, dimension matches
// less, and the mere presence of parser geometry a little.
const (
	nameMatchWeight   = 0.6
	dimensionWeight   = 0.3
	geometryWeight    = 0.1
	minDimensionScore = 2
)

// Detector classifies plan objects against a fixed rule table. It is
// stateless after construction and safe for concurrent use.
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector with the given rules. Rule order is
// significant; see DefaultRules.
func NewDetector(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// Classify decides whether the candidate represents a known fixture type.
// It returns nil when the candidate has no name or matches no rule; a nil
// result is not an error. Malformed geometry degrades to "no bounding box"
// rather than failing the candidate.
func (d *Detector) Classify(_ context.Context, c Candidate) *Result {
	if c.Name == "" {
		return nil
	}

	nameType, nameMatched := d.matchName(c.Name)

	dims := c.Dimensions
	var bbox *model.BoundingBox
	if len(c.Geometry) > 0 {
		bbox = boundingBoxFromGeometry(c.Geometry)
		if bbox != nil && dims.Empty() {
			dims = dimensionsFromBoundingBox(*bbox)
		}
	}

	dimType, dimMatched := d.matchDimensions(dims)

	var fixtureType FixtureType
	switch {
	case nameMatched:
		fixtureType = nameType
	case dimMatched:
		fixtureType = dimType
	default:
		return nil
	}

	confidence := 0.0
	if nameMatched {
		confidence += nameMatchWeight
	}
	if dimMatched {
		confidence += dimensionWeight
	}
	if len(c.Geometry) > 0 {
		confidence += geometryWeight
	}
	confidence = math.Min(confidence, 1.0)

	return &Result{
		Type:        fixtureType,
		Name:        c.Name,
		Confidence:  confidence,
		Position:    c.Position,
		Dimensions:  dims,
		BoundingBox: bbox,
	}
}

// ClassifyAll classifies a batch of candidates, preserving input order among
// the emitted results. Candidates that match no rule are omitted.
func (d *Detector) ClassifyAll(ctx context.Context, candidates []Candidate) ([]Result, error) {
	results := make([]Result, 0, len(candidates))

	for _, c := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			if r := d.Classify(ctx, c); r != nil {
				results = append(results, *r)
			}
		}
	}

	return results, nil
}

// matchName returns the first rule with any keyword contained in the
// lowercased name.
func (d *Detector) matchName(name string) (FixtureType, bool) {
	lower := strings.ToLower(name)

	for _, rule := range d.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type, true
			}
		}
	}

	return "", false
}

// matchDimensions scores each rule by how many of the three dimensions fall
// within its ranges and returns the highest scorer at or above the minimum.
// Ties keep the earliest rule. An incomplete dimension triple never matches.
func (d *Detector) matchDimensions(dims model.Dimensions) (FixtureType, bool) {
	if !dims.Complete() {
		return "", false
	}

	var (
		bestType  FixtureType
		bestScore int
	)

	for _, rule := range d.rules {
		score := 0
		if rule.Width.Contains(dims.Width) {
			score++
		}
		if rule.Height.Contains(dims.Height) {
			score++
		}
		if rule.Depth.Contains(dims.Depth) {
			score++
		}

		if score >= minDimensionScore && score > bestScore {
			bestType = rule.Type
			bestScore = score
		}
	}

	return bestType, bestScore >= minDimensionScore
}

// geometryPayload is the subset of a parser geometry payload we understand.
type geometryPayload struct {
	BoundingBox *model.BoundingBox `json:"boundingBox"`
}

// boundingBoxFromGeometry extracts an axis-aligned bounding box from an
// opaque geometry payload. Returns nil if the payload cannot be interpreted.
func boundingBoxFromGeometry(raw json.RawMessage) *model.BoundingBox {
	var g geometryPayload
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil
	}
	return g.BoundingBox
}

// dimensionsFromBoundingBox derives extents as the absolute difference
// between the box corners on each axis.
func dimensionsFromBoundingBox(b model.BoundingBox) model.Dimensions {
	return model.Dimensions{
		Width:  math.Abs(b.Max.X - b.Min.X),
		Height: math.Abs(b.Max.Y - b.Min.Y),
		Depth:  math.Abs(b.Max.Z - b.Min.Z),
	}
}
