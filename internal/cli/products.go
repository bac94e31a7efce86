package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/transport"
	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/logging"
)

func (a *app) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the catalog",
	}
	cmd.AddCommand(a.productsListCommand(), a.productsAddCommand(), a.productsDeleteCommand())
	return cmd
}

func (a *app) productsListCommand() *cobra.Command {
	var filter service.ProductFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filter.Category != "" && !slices.Contains(models.Categories, filter.Category) {
				return fmt.Errorf("unknown category %q, expected one of %s", filter.Category, strings.Join(models.Categories, ", "))
			}
			products, err := a.catalog.Products(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("could not load products: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(a.out, "No products found")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tRATING\tSTOCK")
			for _, p := range products {
				card := views.NewProductCard(p)
				price := "$" + card.Price
				if card.DiscountBadge != "" {
					price += " (" + card.DiscountBadge + ")"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.Name, p.Brand, p.Category, price, card.RatingText, p.Available)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only list this category")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "free text search")
	return cmd
}

func (a *app) productsAddCommand() *cobra.Command {
	form := transport.DefaultAddProductForm()
	var imagePath string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			l := logging.FromContext(ctx)
			sess, err := a.session()
			if err != nil {
				return err
			}

			var image *apiclient.FilePart
			if imagePath != "" {
				f, err := os.Open(imagePath)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()
				image = &apiclient.FilePart{Field: "image", Filename: filepath.Base(imagePath), Content: f}
			}

			p, err := a.catalog.AddProduct(ctx, sess, form, image)
			if err != nil {
				return fmt.Errorf("failed to add product: %w", a.rejected(l, err))
			}
			fmt.Fprintf(a.out, "Product added successfully! id=%s\n", p.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "product name")
	f.StringVar(&form.Brand, "brand", "", "brand")
	f.StringVar(&form.Model, "model", "", "model")
	f.StringVar(&form.Price, "price", "", "price, e.g. 199.99")
	f.StringVar(&form.Category, "category", form.Category, strings.Join(models.Categories, "|"))
	f.StringVar(&form.Connectivity, "connectivity", form.Connectivity, strings.Join(models.Connectivity, "|"))
	f.StringVar(&form.Description, "description", "", "description")
	f.StringVar(&form.Available, "available", form.Available, "units in stock")
	f.StringVar(&imagePath, "image", "", "optional image file")
	return cmd
}

func (a *app) productsDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := logging.FromContext(ctx)
			sess, err := a.session()
			if err != nil {
				return err
			}

			if !yes {
				answer, err := a.prompt(views.DeleteConfirmText + " [y/N]: ")
				if err != nil {
					return err
				}
				if ans := strings.ToLower(answer); ans != "y" && ans != "yes" {
					fmt.Fprintln(a.out, "Cancelled")
					return nil
				}
			}

			if err := a.catalog.DeleteProduct(ctx, sess, args[0]); err != nil {
				l.Debug("product_delete_error", "product_id", args[0], "error", err)
				return fmt.Errorf("failed to delete product: %w", a.rejected(l, err))
			}
			fmt.Fprintln(a.out, "Product deleted!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
