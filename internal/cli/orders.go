package cli

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/query"
)

var (
	orderProductID string
	orderQuantity  int
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Work with orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		d := query.ListQuery(a.orders, url.Values{}, a.cfg.Cache.StaleTime)
		orders, err := query.Run(cmd.Context(), a.cache, d)
		if err != nil {
			return err
		}
		return printJSON(orders)
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an order by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		d := query.GetQuery(a.orders, args[0], a.cfg.Cache.StaleTime)
		order, err := query.Run(cmd.Context(), a.cache, d)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an order",
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := uuid.Parse(orderProductID)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		m := query.CreateMutation(a.cache, a.orders)
		order, err := m.Execute(cmd.Context(), domain.OrderInput{
			ProductID: productID,
			Quantity:  orderQuantity,
		})
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

func init() {
	ordersCreateCmd.Flags().StringVar(&orderProductID, "product-id", "", "product id")
	ordersCreateCmd.Flags().IntVar(&orderQuantity, "quantity", 1, "quantity")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)
	ordersCmd.AddCommand(ordersCreateCmd)
}
