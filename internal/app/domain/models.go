package domain

import "time"

// Product is the normalized upstream catalog record returned by a lookup.
type Product struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Review is one stored shopper review.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShopSession is the credential pair supplied by the authenticated request.
type ShopSession struct {
	Shop        string
	AccessToken string
}

// Complete reports whether both the shop and the access token are set.
func (s ShopSession) Complete() bool {
	return s.Shop != "" && s.AccessToken != ""
}

const (
	// MinRating is the lowest accepted star rating.
	MinRating = 1
	// MaxRating is the highest accepted star rating.
	MaxRating = 5
)
