package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/maminech/sanitary/internal/cli"
	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a sample product catalog",
		Long:  `Insert a small demonstration catalog covering the common fixture types. Existing products with the same SKU are overwritten.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, p := range sampleCatalog() {
				existing, err := store.GetProductBySKU(ctx, p.SKU)
				if err == nil {
					p.ID = existing.ID
				}
				if err := store.SaveProduct(ctx, p); err != nil {
					return fmt.Errorf("failed to seed %s: %w", p.SKU, err)
				}
			}

			common.LogInfo("seeded catalog", common.Fields{"products": len(sampleCatalog())})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d products", len(sampleCatalog()))))
			return nil
		},
	}
}

func sampleCatalog() []*model.Product {
	return []*model.Product{
		{
			ID:          uuid.NewString(),
			SKU:         "TOILET-001",
			Name:        "Modern Wall-Mounted Toilet",
			Description: "Contemporary wall-mounted toilet with soft-close seat",
			Brand:       "AquaLux",
			Type:        model.ProductToilet,
			BasePrice:   450.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 54, Width: 36, Height: 40, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialCeramic, Finish: "Glossy White", Color: "White"},
				{Type: model.MaterialCeramic, Finish: "Matte Black", Color: "Black", PriceModifier: 50},
			},
			LeadTime: 14,
			InStock:  true,
			Tags:     []string{"modern", "wall-mounted", "water-saving"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "TOILET-002",
			Name:        "Classic Floor-Standing Toilet",
			Description: "Traditional two-piece toilet with dual-flush system",
			Brand:       "Heritage",
			Type:        model.ProductToilet,
			BasePrice:   320.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 66, Width: 38, Height: 78, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialPorcelain, Finish: "Glossy White", Color: "White"},
			},
			LeadTime: 7,
			InStock:  true,
			Tags:     []string{"classic", "dual-flush", "eco-friendly"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "SINK-001",
			Name:        "Undermount Basin",
			Description: "Elegant undermount sink for countertop installation",
			Brand:       "AquaLux",
			Type:        model.ProductSink,
			BasePrice:   280.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 56, Width: 42, Height: 18, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialCeramic, Finish: "Glossy White", Color: "White"},
				{Type: model.MaterialCeramic, Finish: "Glossy Beige", Color: "Beige", PriceModifier: 20},
			},
			LeadTime: 10,
			InStock:  true,
			Tags:     []string{"undermount", "modern", "ceramic"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "SINK-002",
			Name:        "Pedestal Sink",
			Description: "Classic pedestal sink with chrome overflow",
			Brand:       "Heritage",
			Type:        model.ProductSink,
			BasePrice:   195.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 50, Width: 40, Height: 85, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialPorcelain, Finish: "Glossy White", Color: "White"},
			},
			LeadTime: 7,
			InStock:  true,
			Tags:     []string{"pedestal", "classic", "space-saving"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "BATHTUB-001",
			Name:        "Freestanding Bathtub",
			Description: "Luxury freestanding bathtub with chrome drain",
			Brand:       "AquaLux",
			Type:        model.ProductBathtub,
			BasePrice:   1850.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 170, Width: 75, Height: 58, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialAcrylic, Finish: "Glossy White", Color: "White"},
				{Type: model.MaterialComposite, Finish: "Matte Stone", Color: "Grey", PriceModifier: 300},
			},
			LeadTime: 21,
			InStock:  true,
			Tags:     []string{"freestanding", "luxury", "modern"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "SHOWER-001",
			Name:        "Walk-In Shower Enclosure",
			Description: "Frameless glass walk-in shower with chrome fixtures",
			Brand:       "GlassWorks",
			Type:        model.ProductShower,
			BasePrice:   980.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 120, Width: 90, Height: 200, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialGlass, Finish: "Clear 8mm", Color: "Clear"},
				{Type: model.MaterialGlass, Finish: "Frosted 8mm", Color: "Frosted", PriceModifier: 80},
			},
			LeadTime: 14,
			InStock:  true,
			Tags:     []string{"walk-in", "frameless", "modern"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "FAUCET-001",
			Name:        "Single-Handle Faucet",
			Description: "Modern single-handle basin faucet with ceramic cartridge",
			Brand:       "TapMaster",
			Type:        model.ProductFaucet,
			BasePrice:   125.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 15, Width: 5, Height: 28, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialChrome, Finish: "Polished Chrome", Color: "Silver"},
				{Type: model.MaterialBrass, Finish: "Brushed Brass", Color: "Gold", PriceModifier: 35},
				{Type: model.MaterialBronze, Finish: "Oil-Rubbed Bronze", Color: "Bronze", PriceModifier: 40},
			},
			LeadTime: 5,
			InStock:  true,
			Tags:     []string{"single-handle", "modern", "water-efficient"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "MIRROR-001",
			Name:        "LED Bathroom Mirror",
			Description: "Rectangular LED-lit mirror with demister pad",
			Brand:       "Reflections",
			Type:        model.ProductMirror,
			BasePrice:   350.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 80, Width: 3, Height: 60, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialGlass, Finish: "Clear with LED", Color: "Clear"},
			},
			LeadTime: 10,
			InStock:  true,
			Tags:     []string{"led", "modern", "demister"},
		},
		{
			ID:          uuid.NewString(),
			SKU:         "CABINET-001",
			Name:        "Vanity Cabinet",
			Description: "Wall-mounted vanity cabinet with soft-close drawers",
			Brand:       "StoragePlus",
			Type:        model.ProductCabinet,
			BasePrice:   680.00,
			Currency:    "EUR",
			Dimensions:  model.ProductDimensions{Length: 100, Width: 46, Height: 50, Unit: "cm"},
			Materials: []model.Material{
				{Type: model.MaterialWood, Finish: "Oak Veneer", Color: "Natural Oak"},
				{Type: model.MaterialWood, Finish: "Walnut Veneer", Color: "Dark Walnut", PriceModifier: 60},
			},
			LeadTime: 14,
			InStock:  true,
			Tags:     []string{"vanity", "wall-mounted", "storage"},
		},
	}
}
