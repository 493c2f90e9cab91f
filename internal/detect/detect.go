// Package detect provides rule-based sanitary fixture detection for parsed
// building plans. Candidates extracted by a plan parser are matched against a
// fixed table of keyword and dimension rules; matches come back with a
// confidence score, non-matches are dropped.
package detect

import (
	"encoding/json"

	"github.com/maminech/sanitary/internal/model"
)

// FixtureType is the detector's fixture classification. It overlaps with the
// catalog's model.ProductType but is a separate enum: detection distinguishes
// shapes (WASHBASIN, SHOWER_TRAY, SHOWER_CABIN) the catalog folds into
// broader inventory types.
type FixtureType string

// Detectable fixture types, in resolution order. Keyword and dimension
// matching both walk this list front to back, and ties resolve to the
// earliest entry, so the order is part of the detector's contract.
const (
	FixtureToilet      FixtureType = "TOILET"
	FixtureSink        FixtureType = "SINK"
	FixtureFaucet      FixtureType = "FAUCET"
	FixtureShower      FixtureType = "SHOWER"
	FixtureBathtub     FixtureType = "BATHTUB"
	FixtureBidet       FixtureType = "BIDET"
	FixtureUrinal      FixtureType = "URINAL"
	FixtureWashbasin   FixtureType = "WASHBASIN"
	FixtureShowerTray  FixtureType = "SHOWER_TRAY"
	FixtureShowerCabin FixtureType = "SHOWER_CABIN"
	FixtureAccessories FixtureType = "ACCESSORIES"
	FixtureOther       FixtureType = "OTHER"
)

// Candidate is a raw object extracted from a building plan, prior to
// classification. Geometry is an opaque payload from the parser; it yields a
// bounding box if it can be interpreted, and is ignored otherwise.
type Candidate struct {
	Name       string           `json:"name"`
	Geometry   json.RawMessage  `json:"geometry,omitempty"`
	Position   model.Vector3    `json:"position"`
	Dimensions model.Dimensions `json:"dimensions,omitempty"`
}

// Result is one classified candidate. Confidence is in [0, 1].
type Result struct {
	Type        FixtureType
	Name        string
	BoundingBox *model.BoundingBox
	Position    model.Vector3
	Dimensions  model.Dimensions
	Confidence  float64
}
