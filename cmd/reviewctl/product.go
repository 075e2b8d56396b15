package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
	"github.com/fr0stylo/shopreviews/internal/config"
	"github.com/fr0stylo/shopreviews/internal/shopify"
)

func productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Query the Shopify Admin API",
	}
	cmd.AddCommand(productGetCmd())
	return cmd
}

func productGetCmd() *cobra.Command {
	var shop, token string
	cmd := &cobra.Command{
		Use:   "get [product-id]",
		Short: "Fetch one product by its numeric id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadForTool()
			if err != nil {
				return err
			}
			client := shopify.NewClient(shopify.Config{
				APIVersion: cfg.Shopify.APIVersion,
				Timeout:    cfg.ShopifyTimeout(),
				RateLimit:  cfg.Shopify.RateLimit,
			})
			session := domain.ShopSession{Shop: shop, AccessToken: token}
			product, err := appservices.NewProductLookupService(client).LookupProduct(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(product)
		},
	}
	cmd.Flags().StringVar(&shop, "shop", "", "shop domain, e.g. demo.myshopify.com")
	cmd.Flags().StringVar(&token, "token", "", "Admin API access token")
	return cmd
}
