package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/query"
)

var (
	productQ     string
	productName  string
	productSKU   string
	productPrice int64
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Work with products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		filter := url.Values{}
		if productQ != "" {
			filter.Set("q", productQ)
		}

		d := query.ListQuery(a.products, filter, a.cfg.Cache.StaleTime)
		products, err := query.Run(cmd.Context(), a.cache, d)
		if err != nil {
			return err
		}
		return printJSON(products)
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a product by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		d := query.GetQuery(a.products, args[0], a.cfg.Cache.StaleTime)
		product, err := query.Run(cmd.Context(), a.cache, d)
		if err != nil {
			return err
		}
		return printJSON(product)
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		m := query.CreateMutation(a.cache, a.products)
		product, err := m.Execute(cmd.Context(), domain.ProductInput{
			Name:       productName,
			SKU:        productSKU,
			PriceCents: productPrice,
		})
		if err != nil {
			return err
		}
		return printJSON(product)
	},
}

func init() {
	productsListCmd.Flags().StringVar(&productQ, "q", "", "filter by name substring")
	productsCreateCmd.Flags().StringVar(&productName, "name", "", "product name")
	productsCreateCmd.Flags().StringVar(&productSKU, "sku", "", "product SKU")
	productsCreateCmd.Flags().Int64Var(&productPrice, "price-cents", 0, "price in cents")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
}
