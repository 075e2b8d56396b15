package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
)

func reviewsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List or add stored reviews",
	}
	cmd.AddCommand(reviewsListCmd(opts))
	cmd.AddCommand(reviewsAddCmd(opts))
	return cmd
}

func reviewsListCmd(opts *rootOptions) *cobra.Command {
	var (
		productID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored reviews in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := appservices.NewReviewIngestService(store)
			var reviews []domain.Review
			if productID != "" {
				reviews, err = svc.ListProductReviews(cmd.Context(), productID)
			} else {
				reviews, err = svc.ListReviews(cmd.Context())
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reviews)
			}
			return printReviews(cmd, reviews)
		},
	}
	cmd.Flags().StringVarP(&productID, "product", "p", "", "only reviews of this product id")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func reviewsAddCmd(opts *rootOptions) *cobra.Command {
	var productID, rating, comment string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and store a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			submission := appservices.ReviewSubmission{}
			if cmd.Flags().Changed("product") {
				submission.ProductID = &productID
			}
			if cmd.Flags().Changed("rating") {
				submission.Rating = &rating
			}
			if cmd.Flags().Changed("comment") {
				submission.Comment = &comment
			}

			review, err := appservices.NewReviewIngestService(store).SubmitReview(cmd.Context(), submission)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved review %s\n", review.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&productID, "product", "p", "", "product id")
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "star rating, 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "review text")
	return cmd
}

func printReviews(cmd *cobra.Command, reviews []domain.Review) error {
	if len(reviews) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no reviews")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tRATING\tCREATED\tCOMMENT")
	for _, review := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			review.ID,
			review.ProductID,
			review.Rating,
			review.CreatedAt.Format(time.RFC3339),
			review.Comment,
		)
	}
	return w.Flush()
}
