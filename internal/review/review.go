package review

import "time"

// Review is one customer product review. Reviews go live immediately and
// can be taken down by moderation.
type Review struct {
	ID           int       `json:"reviewId"`
	ProductID    int       `json:"productId"`
	UserID       int       `json:"userId"`
	UserName     string    `json:"userName"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Comment      string    `json:"comment"`
	IsApproved   bool      `json:"isApproved"`
	HelpfulCount int       `json:"helpfulCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary aggregates the approved reviews of one product.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
