package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/logging"
)

func (a *app) ordersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sess, err := a.session()
			if err != nil {
				return err
			}

			orders, err := a.orders.Orders(ctx, sess)
			if err != nil {
				return fmt.Errorf("could not load orders: %w", a.rejected(logging.FromContext(ctx), err))
			}
			if len(orders) == 0 {
				fmt.Fprintln(a.out, "No orders yet")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, o := range orders {
				fmt.Fprintf(tw, "Order %s\t%s\t$%s\n", o.ID, o.Status, views.Money(o.TotalAmount))
				for _, it := range o.Items {
					fmt.Fprintf(tw, "  %s\tx%d\t\n", it.Name, it.Quantity)
				}
			}
			return tw.Flush()
		},
	}
}
