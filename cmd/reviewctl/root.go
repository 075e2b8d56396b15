package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/shopreviews/internal/adapters/storefactory"
	"github.com/fr0stylo/shopreviews/internal/config"
)

type rootOptions struct {
	driver string
	path   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Inspect and maintain the product review store",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "store driver (json, sqlite); defaults to REVIEWS_STORE_DRIVER")
	rootCmd.PersistentFlags().StringVar(&opts.path, "store", "", "store location; defaults to REVIEWS_STORE_PATH")

	rootCmd.AddCommand(reviewsCmd(opts))
	rootCmd.AddCommand(productCmd())
	rootCmd.AddCommand(migrateCmd(opts))
	return rootCmd
}

// storeConfig resolves the store from config with flag overrides applied.
func (o *rootOptions) storeConfig() (config.Config, error) {
	cfg, err := config.LoadForTool()
	if err != nil {
		return config.Config{}, err
	}
	if driver := strings.ToLower(strings.TrimSpace(o.driver)); driver != "" {
		cfg.Store.Driver = driver
	}
	if path := strings.TrimSpace(o.path); path != "" {
		cfg.Store.Path = path
	}
	return cfg, nil
}

func (o *rootOptions) openStore() (storefactory.Store, error) {
	cfg, err := o.storeConfig()
	if err != nil {
		return nil, err
	}
	return storefactory.Open(cfg.Store)
}
