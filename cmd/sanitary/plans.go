package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/maminech/sanitary/internal/cli"
	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/detect"
	"github.com/maminech/sanitary/internal/model"
	"github.com/maminech/sanitary/internal/planfile"
	"github.com/maminech/sanitary/internal/tui"
)

func plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage building plans",
		Long:  `Import plan files, run fixture detection on them, and inspect the results.`,
	}

	cmd.AddCommand(importPlanCmd())
	cmd.AddCommand(listPlansCmd())
	cmd.AddCommand(detectPlanCmd())
	cmd.AddCommand(showPlanCmd())
	cmd.AddCommand(reviewPlanCmd())
	cmd.AddCommand(resolveDetectionCmd())

	return cmd
}

func importPlanCmd() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Register a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat plan file: %w", err)
			}

			fileType, err := model.FileTypeFromPath(path)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			plan := &model.Plan{
				ID:          uuid.NewString(),
				Name:        name,
				Description: description,
				FilePath:    path,
				FileType:    fileType,
				FileSize:    info.Size(),
				Status:      model.PlanUploaded,
			}

			if err := store.SavePlan(ctx, plan); err != nil {
				return fmt.Errorf("failed to save plan: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported plan %s (%s)", plan.Name, plan.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "plan name (default: file name)")
	cmd.Flags().StringVar(&description, "description", "", "plan description")

	return cmd
}

func listPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plans, err := store.GetPlans(ctx)
			if err != nil {
				return fmt.Errorf("failed to get plans: %w", err)
			}

			if len(plans) == 0 {
				fmt.Println(cli.InfoStyle.Render("No plans found. Use 'sanitary plans import' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Status"),
				cli.BoldStyle.Render("Imported"))

			for i := range plans {
				p := &plans[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, p.FileType, p.Status, p.CreatedAt.Format("2006-01-02"))
			}

			return nil
		},
	}
}

func detectPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <plan-id>",
		Short: "Run fixture detection on a plan",
		Long: `Parse the plan's scene file, classify each object against the fixture
rules, and store the detections for later quotation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plan, err := store.GetPlan(ctx, args[0])
			if err != nil {
				return err
			}

			candidates, err := planfile.ParseFile(plan.FilePath)
			if err != nil {
				common.LogError(err, "plan detection failed", common.Fields{"plan": plan.ID})
				if statusErr := store.UpdatePlanStatus(ctx, plan.ID, model.PlanFailed); statusErr != nil {
					return fmt.Errorf("failed to mark plan failed: %w", statusErr)
				}
				return common.NewUserError(fmt.Sprintf("could not read plan file %s", plan.FilePath), err)
			}

			if err := store.UpdatePlanStatus(ctx, plan.ID, model.PlanProcessing); err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(candidates),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Classifying objects..."),
			)

			detector := detect.NewDetector(detect.DefaultRules())
			var detections []model.DetectedProduct
			for _, candidate := range candidates {
				result := detector.Classify(ctx, candidate)
				_ = bar.Add(1)
				if result == nil {
					continue
				}
				detections = append(detections, model.DetectedProduct{
					ID:           uuid.NewString(),
					PlanID:       plan.ID,
					DetectedType: string(result.Type),
					Name:         result.Name,
					Confidence:   result.Confidence,
					Position:     result.Position,
					Dimensions:   result.Dimensions,
					BoundingBox:  result.BoundingBox,
				})
			}
			_ = bar.Finish()

			if err := store.SaveDetectedProducts(ctx, plan.ID, detections); err != nil {
				return fmt.Errorf("failed to save detections: %w", err)
			}
			if err := store.UpdatePlanStatus(ctx, plan.ID, model.PlanProcessed); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Detected %d fixtures in %d objects", len(detections), len(candidates))))
			return nil
		},
	}
}

func reviewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <plan-id>",
		Short: "Interactively review unresolved detections",
		Long: `Step through the plan's detections that have no catalog product yet and
pick one for each from the catalog. Assignments are saved when the session
ends; use 'sanitary plans resolve' for scripted, single-detection linking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return tui.RunReview(ctx, tui.ReviewConfig{
				Storage: store,
				PlanID:  args[0],
			})
		},
	}
}

func resolveDetectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <detection-id> <product-sku>",
		Short: "Link a detection to a catalog product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			product, err := store.GetProductBySKU(ctx, args[1])
			if err != nil {
				return err
			}

			if err := store.ResolveDetectedProduct(ctx, args[0], product.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Linked detection %s to %s", args[0], product.Name)))
			return nil
		},
	}
}

func showPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a plan and its detections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plan, err := store.GetPlan(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(plan.Name))
			fmt.Printf("File:   %s (%s, %d bytes)\n", plan.FilePath, plan.FileType, plan.FileSize)
			fmt.Printf("Status: %s\n", plan.Status)
			if plan.Description != "" {
				fmt.Printf("About:  %s\n", plan.Description)
			}

			detections, err := store.GetDetectedProducts(ctx, plan.ID)
			if err != nil {
				return fmt.Errorf("failed to get detections: %w", err)
			}
			if len(detections) == 0 {
				fmt.Println(cli.InfoStyle.Render("No detections. Run 'sanitary plans detect' first."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "\n%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Object"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Confidence"),
				cli.BoldStyle.Render("Product"))

			for i := range detections {
				det := &detections[i]
				product := cli.SubtleStyle.Render("(unresolved)")
				if det.Resolved() {
					product = det.ProductID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
					det.ID, det.Name, det.DetectedType, det.Confidence, product)
			}

			return nil
		},
	}
}
