package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/maminech/sanitary/internal/cli"
	"github.com/maminech/sanitary/internal/model"
	"github.com/maminech/sanitary/internal/quote"
	"github.com/maminech/sanitary/internal/service"
)

func quotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Manage quotations",
		Long:  `Create quotes, edit their line items and terms, move them through the approval workflow, and export them as PDF documents.`,
	}

	cmd.AddCommand(createQuoteCmd())
	cmd.AddCommand(quoteFromPlanCmd())
	cmd.AddCommand(listQuotesCmd())
	cmd.AddCommand(showQuoteCmd())
	cmd.AddCommand(addQuoteItemCmd())
	cmd.AddCommand(updateQuoteItemCmd())
	cmd.AddCommand(removeQuoteItemCmd())
	cmd.AddCommand(quoteTermsCmd())
	cmd.AddCommand(quoteStatusCmd())
	cmd.AddCommand(exportQuoteCmd())

	return cmd
}

// quoteByRef resolves a quote argument that may be either an ID or a
// QT-YYYYMM-NNNN reference.
func quoteByRef(ctx context.Context, store service.Storage, arg string) (*model.Quote, error) {
	if strings.HasPrefix(arg, "QT-") {
		return store.GetQuoteByReference(ctx, arg)
	}
	return store.GetQuote(ctx, arg)
}

func createQuoteCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty draft quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := quote.NewEngine(store, store)
			q, err := engine.Create(ctx, title)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created quote %s", q.Reference)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "quote title")

	return cmd
}

func quoteFromPlanCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "from-plan <plan-id>",
		Short: "Create a draft quote from a plan's detections",
		Long: `Build a quote from a processed plan: every detection that has been linked
to a catalog product becomes a line item at the product's current price.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := quote.NewEngine(store, store)
			q, err := engine.CreateFromPlan(ctx, args[0], title)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Created quote %s with %d items (total %.2f %s)",
				q.Reference, len(q.Items), q.Total, q.Currency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "quote title (default: derived from the plan name)")

	return cmd
}

func listQuotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quotes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			quotes, err := store.GetQuotes(ctx)
			if err != nil {
				return fmt.Errorf("failed to get quotes: %w", err)
			}

			if len(quotes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No quotes found. Use 'sanitary quotes create' to start one."))
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Reference"),
				cli.BoldStyle.Render("Status"),
				cli.BoldStyle.Render("Items"),
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render("Valid until"),
				cli.BoldStyle.Render("Title"))

			for i := range quotes {
				q := &quotes[i]
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f %s\t%s\t%s\n",
					q.Reference, q.DisplayStatus(now), len(q.Items), q.Total, q.Currency,
					q.ValidUntil.Format("2006-01-02"), q.Notes)
			}

			return nil
		},
	}
}

func showQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <quote>",
		Short: "Show a quote's items and totals",
		Long:  `Display a quote by ID or reference, with its line items, terms, and totals.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(q.Reference))
			if q.Notes != "" {
				fmt.Println(q.Notes)
			}
			fmt.Printf("Status:      %s\n", q.DisplayStatus(time.Now()))
			fmt.Printf("Valid until: %s\n", q.ValidUntil.Format("2006-01-02"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "\n%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("#"),
				cli.BoldStyle.Render("Item"),
				cli.BoldStyle.Render("Qty"),
				cli.BoldStyle.Render("Unit"),
				cli.BoldStyle.Render("Disc"),
				cli.BoldStyle.Render("Total"))
			for i := range q.Items {
				item := &q.Items[i]
				fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.0f%%\t%.2f\n",
					i, item.Name, item.Quantity, item.UnitPrice, item.Discount, item.Total)
			}
			_ = w.Flush()

			fmt.Printf("\nSubtotal: %12.2f %s\n", q.Subtotal, q.Currency)
			if q.GlobalDiscount > 0 {
				fmt.Printf("Discount: %12.2f %s (%.0f%%)\n", q.DiscountAmount, q.Currency, q.GlobalDiscount)
			}
			fmt.Printf("Tax:      %12.2f %s (%.0f%%)\n", q.TaxAmount, q.Currency, q.TaxRate)
			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Total:    %12.2f %s", q.Total, q.Currency)))
			return nil
		},
	}
}

func addQuoteItemCmd() *cobra.Command {
	var (
		material string
		quantity int
		discount float64
	)

	cmd := &cobra.Command{
		Use:   "add-item <quote> <product-sku>",
		Short: "Add a product to a quote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}
			product, err := store.GetProductBySKU(ctx, args[1])
			if err != nil {
				return err
			}

			engine := quote.NewEngine(store, store)
			q, err = engine.AddItem(ctx, q.ID, quote.AddItemInput{
				ProductID:        product.ID,
				SelectedMaterial: material,
				Quantity:         quantity,
				Discount:         discount,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added %s to %s (total now %.2f %s)", product.Name, q.Reference, q.Total, q.Currency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&material, "material", "", "selected material option")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "item quantity")
	cmd.Flags().Float64Var(&discount, "discount", 0, "item discount percentage (0-100)")

	return cmd
}

func updateQuoteItemCmd() *cobra.Command {
	var (
		sku      string
		material string
		quantity int
		discount float64
	)

	cmd := &cobra.Command{
		Use:   "update-item <quote> <index>",
		Short: "Update a quote line item",
		Long: `Change a line item addressed by its zero-based position. Only the flags
you pass are applied; switching the product re-reads price and description
from the catalog.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			var patch quote.ItemPatch
			if cmd.Flags().Changed("product") {
				product, err := store.GetProductBySKU(ctx, sku)
				if err != nil {
					return err
				}
				patch.ProductID = &product.ID
			}
			if cmd.Flags().Changed("material") {
				patch.SelectedMaterial = &material
			}
			if cmd.Flags().Changed("quantity") {
				patch.Quantity = &quantity
			}
			if cmd.Flags().Changed("discount") {
				patch.Discount = &discount
			}

			engine := quote.NewEngine(store, store)
			q, err = engine.UpdateItem(ctx, q.ID, index, patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Updated item %d of %s (total now %.2f %s)", index, q.Reference, q.Total, q.Currency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sku, "product", "", "replace the item's product by SKU")
	cmd.Flags().StringVar(&material, "material", "", "selected material option")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "item quantity")
	cmd.Flags().Float64Var(&discount, "discount", 0, "item discount percentage (0-100)")

	return cmd
}

func removeQuoteItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <quote> <index>",
		Short: "Remove a quote line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			engine := quote.NewEngine(store, store)
			q, err = engine.RemoveItem(ctx, q.ID, index)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Removed item %d from %s (total now %.2f %s)", index, q.Reference, q.Total, q.Currency)))
			return nil
		},
	}
}

func quoteTermsCmd() *cobra.Command {
	var (
		taxRate  float64
		discount float64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "terms <quote>",
		Short: "Update a quote's tax rate, global discount, or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			var taxArg, discountArg *float64
			var notesArg *string
			if cmd.Flags().Changed("tax-rate") {
				taxArg = &taxRate
			}
			if cmd.Flags().Changed("discount") {
				discountArg = &discount
			}
			if cmd.Flags().Changed("notes") {
				notesArg = &notes
			}

			engine := quote.NewEngine(store, store)
			q, err = engine.UpdateTerms(ctx, q.ID, taxArg, discountArg, notesArg)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Updated terms of %s (total now %.2f %s)", q.Reference, q.Total, q.Currency)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "tax rate percentage (0-100)")
	cmd.Flags().Float64Var(&discount, "discount", 0, "global discount percentage (0-100)")
	cmd.Flags().StringVar(&notes, "notes", "", "quote notes")

	return cmd
}

func quoteStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <quote> <status>",
		Short: "Move a quote through its workflow",
		Long: `Transition a quote's status. Valid transitions: DRAFT to PENDING, and
PENDING to APPROVED, REJECTED, or EXPIRED.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			next := model.QuoteStatus(strings.ToUpper(args[1]))
			engine := quote.NewEngine(store, store)
			q, err = engine.UpdateStatus(ctx, q.ID, next)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Quote %s is now %s", q.Reference, q.Status)))
			return nil
		},
	}
}

func exportQuoteCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <quote>",
		Short: "Export a quote as a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			q, err := quoteByRef(ctx, store, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = q.Reference + ".pdf"
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := quote.WritePDF(q, f); err != nil {
				return fmt.Errorf("failed to render PDF: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %s to %s", q.Reference, output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <reference>.pdf)")

	return cmd
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid item index %q", arg)
	}
	return index, nil
}
