// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ProductType identifies a catalog product category. This is the inventory
// enum; the detector keeps its own fixture-type list which overlaps but is
// not identical.
type ProductType string

// Catalog product types.
const (
	ProductToilet      ProductType = "TOILET"
	ProductSink        ProductType = "SINK"
	ProductBathtub     ProductType = "BATHTUB"
	ProductShower      ProductType = "SHOWER"
	ProductFaucet      ProductType = "FAUCET"
	ProductMirror      ProductType = "MIRROR"
	ProductCabinet     ProductType = "CABINET"
	ProductUrinal      ProductType = "URINAL"
	ProductBidet       ProductType = "BIDET"
	ProductShowerPanel ProductType = "SHOWER_PANEL"
	ProductTowelRack   ProductType = "TOWEL_RACK"
	ProductAccessory   ProductType = "ACCESSORY"
)

// MaterialType identifies a product material option.
type MaterialType string

// Material types offered by suppliers.
const (
	MaterialCeramic        MaterialType = "CERAMIC"
	MaterialPorcelain      MaterialType = "PORCELAIN"
	MaterialGlass          MaterialType = "GLASS"
	MaterialStainlessSteel MaterialType = "STAINLESS_STEEL"
	MaterialChrome         MaterialType = "CHROME"
	MaterialBronze         MaterialType = "BRONZE"
	MaterialBrass          MaterialType = "BRASS"
	MaterialComposite      MaterialType = "COMPOSITE"
	MaterialAcrylic        MaterialType = "ACRYLIC"
	MaterialWood           MaterialType = "WOOD"
)

// Material is one material/finish option on a catalog product. PriceModifier
// is an absolute adjustment on the base price.
type Material struct {
	Type          MaterialType `json:"type"`
	Finish        string       `json:"finish,omitempty"`
	Color         string       `json:"color,omitempty"`
	PriceModifier float64      `json:"priceModifier"`
}

// ProductDimensions holds catalog dimensions in centimeters.
type ProductDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// Product is a catalog entry supplied by a vendor.
type Product struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	SKU         string
	Name        string
	Description string
	Brand       string
	Currency    string
	Type        ProductType
	Dimensions  ProductDimensions
	Materials   []Material
	Tags        []string
	BasePrice   float64
	LeadTime    int
	InStock     bool
}

// Product validation errors.
var (
	ErrInvalidProduct = errors.New("invalid product")
)

// Validate checks the product's required fields.
func (p *Product) Validate() error {
	if p.SKU == "" {
		return fmt.Errorf("%w: missing SKU", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProduct)
	}
	if p.Type == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidProduct)
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidProduct)
	}
	if p.Currency == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidProduct)
	}
	return nil
}

// MaterialByType returns the material option of the given type, if present.
func (p *Product) MaterialByType(mt MaterialType) (Material, bool) {
	for _, m := range p.Materials {
		if m.Type == mt {
			return m, true
		}
	}
	return Material{}, false
}
