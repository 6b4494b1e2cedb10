package cmd

import (
	"fmt"
	"os"

	"catalog-exporter/core/config"
	"catalog-exporter/core/logger"
	"catalog-exporter/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var productsFilter string

// productsCmd lists the products an export run would pick up.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List eligible products",
	Long:  `Lists the Production products visible through the catalog API, optionally narrowed by a substring filter.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logg.Sync()

		client := catalog.NewClient(cfg.Catalog, logg)
		products, err := client.ListProducts(cmd.Context())
		if err != nil {
			logg.Fatal("Failed to list products", zap.Error(err))
		}

		eligible := catalog.FilterBySubstring(catalog.FilterProduction(products), productsFilter)
		if len(eligible) == 0 {
			fmt.Println("No eligible products.")
			return
		}

		fmt.Printf("%-24s %s\n", "CODE", "NAME")
		for _, p := range eligible {
			fmt.Printf("%-24s %s\n", p.Code, p.Name)
		}
		fmt.Printf("\n%d product(s)\n", len(eligible))
	},
}

func init() {
	productsCmd.Flags().StringVar(&productsFilter, "filter", "", "Narrow the list by case-insensitive substring")
	RootCmd.AddCommand(productsCmd)
}
