package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/shopreviews/internal/adapters/jsonfile"
	"github.com/fr0stylo/shopreviews/internal/config"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	var (
		from   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy a JSON review collection into the configured store",
		Long: `Copy every review of a JSON collection file into the configured store.

Reviews keep their id and creation time and are copied in collection order.
The command stops at the first review the target rejects, for example one
whose id already exists.

Examples:
  reviewctl migrate --from data/reviews.json --driver sqlite --store data/reviews
  reviewctl migrate --from backup.json --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return errors.New("--from is required")
			}
			cfg, err := opts.storeConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.StoreDriverJSON && samePath(from, cfg.Store.Path) {
				return errors.New("source and target are the same collection")
			}

			source, err := jsonfile.NewStore(from, jsonfile.Options{Strict: true})
			if err != nil {
				return err
			}
			reviews, err := source.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("read %s: %w", from, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "found %d reviews in %s\n", len(reviews), from)
			if dryRun {
				return nil
			}

			target, err := opts.openStore()
			if err != nil {
				return err
			}
			defer target.Close()

			for i, review := range reviews {
				if err := target.Import(cmd.Context(), review); err != nil {
					return fmt.Errorf("import review %d (%s): %w", i+1, review.ID, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d reviews into %s store at %s\n", len(reviews), cfg.Store.Driver, cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "JSON collection file to copy from")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be migrated")
	return cmd
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
