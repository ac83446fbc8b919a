package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"restaurant-storefront/internal/app"
	"restaurant-storefront/internal/logging"
	"restaurant-storefront/internal/seed"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo orders through the checkout and counter flows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		orders, _ := cmd.Flags().GetInt("orders")
		customers, _ := cmd.Flags().GetInt("customers")
		saleEvery, _ := cmd.Flags().GetInt("sale-every")

		// keep the progress bar readable: warn and above unless debugging
		level := cfg.LogLevel
		if level != "debug" {
			level = "warn"
		}
		logger := logging.NewWithWriter(os.Stderr, level)
		slog.SetDefault(logger)

		ctx := context.Background()
		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		gen := &seed.Generator{
			Menu:      a.Menu,
			Cart:      a.Cart,
			POSCart:   a.POSCart,
			Checkout:  a.Checkout,
			Fake:      faker.New(),
			Customers: customers,
			SaleEvery: saleEvery,
		}

		bar := progressbar.Default(int64(orders), "placing orders")
		res, err := gen.Run(ctx, orders, func() { bar.Add(1) })
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d checkouts, %d counter sales\n", res.Checkouts, res.Sales)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("orders", 50, "number of orders to place")
	seedCmd.Flags().Int("customers", 15, "size of the customer pool")
	seedCmd.Flags().Int("sale-every", 3, "make every n-th order a counter sale (0 disables)")
}
