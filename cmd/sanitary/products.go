package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/maminech/sanitary/internal/cli"
	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
	"github.com/maminech/sanitary/internal/service"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalog",
		Long:  `List, add, and inspect the sanitary products available for quotation.`,
	}

	cmd.AddCommand(listProductsCmd())
	cmd.AddCommand(addProductCmd())
	cmd.AddCommand(showProductCmd())

	return cmd
}

func listProductsCmd() *cobra.Command {
	var (
		productType string
		inStockOnly bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			filter := service.ProductFilter{
				Type:  model.ProductType(strings.ToUpper(productType)),
				Limit: limit,
			}
			if inStockOnly {
				t := true
				filter.InStock = &t
			}

			products, err := store.GetProducts(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get products: %w", err)
			}

			if len(products) == 0 {
				fmt.Println(cli.InfoStyle.Render("No products found. Use 'sanitary seed' or 'sanitary products add' to create some."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("SKU"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Price"),
				cli.BoldStyle.Render("Stock"),
				cli.BoldStyle.Render("Lead"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 30),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 5),
				strings.Repeat("-", 5))

			for i := range products {
				p := &products[i]
				stock := cli.SuccessIcon
				if !p.InStock {
					stock = cli.ErrorIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f %s\t%s\t%dd\n",
					p.SKU, p.Name, p.Type, p.BasePrice, p.Currency, stock, p.LeadTime)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&productType, "type", "", "filter by product type (TOILET, SINK, ...)")
	cmd.Flags().BoolVar(&inStockOnly, "in-stock", false, "only show products in stock")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of products to list")

	return cmd
}

func addProductCmd() *cobra.Command {
	var (
		sku         string
		productType string
		description string
		brand       string
		price       float64
		currency    string
		leadTime    int
		inStock     bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if _, err := store.GetProductBySKU(ctx, sku); err == nil {
				return fmt.Errorf("%w: SKU %s", common.ErrDuplicateEntry, sku)
			}

			product := &model.Product{
				ID:          uuid.NewString(),
				SKU:         sku,
				Name:        args[0],
				Description: description,
				Brand:       brand,
				Type:        model.ProductType(strings.ToUpper(productType)),
				BasePrice:   price,
				Currency:    currency,
				LeadTime:    leadTime,
				InStock:     inStock,
			}

			if err := store.SaveProduct(ctx, product); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added product %s (%s)", product.Name, product.SKU)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sku, "sku", "", "stock keeping unit (required)")
	cmd.Flags().StringVar(&productType, "type", "", "product type (required)")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&brand, "brand", "", "manufacturer brand")
	cmd.Flags().Float64Var(&price, "price", 0, "base price (required)")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "price currency")
	cmd.Flags().IntVar(&leadTime, "lead-time", 0, "delivery lead time in days")
	cmd.Flags().BoolVar(&inStock, "in-stock", true, "product is in stock")
	_ = cmd.MarkFlagRequired("sku")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func showProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sku>",
		Short: "Show a product's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			product, err := store.GetProductBySKU(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(product.Name))
			fmt.Printf("SKU:        %s\n", product.SKU)
			fmt.Printf("Type:       %s\n", product.Type)
			if product.Brand != "" {
				fmt.Printf("Brand:      %s\n", product.Brand)
			}
			if product.Description != "" {
				fmt.Printf("About:      %s\n", product.Description)
			}
			fmt.Printf("Price:      %.2f %s\n", product.BasePrice, product.Currency)
			if d := product.Dimensions; d.Length != 0 || d.Width != 0 || d.Height != 0 {
				unit := d.Unit
				if unit == "" {
					unit = "cm"
				}
				fmt.Printf("Dimensions: %.0fx%.0fx%.0f %s\n", d.Length, d.Width, d.Height, unit)
			}
			for _, m := range product.Materials {
				fmt.Printf("Material:   %s (%+.2f)\n", m.Type, m.PriceModifier)
			}
			return nil
		},
	}
}
