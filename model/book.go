// model/book.go
package model

type Book struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Availability string  `json:"availability"`
	Rating       string  `json:"rating"`
	Category     string  `json:"category"`
}

// OverviewStats aggregates the whole catalog.
type OverviewStats struct {
	TotalBooks         int64            `json:"total_books"`
	AveragePrice       float64          `json:"average_price"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

// CategoryStats aggregates one category.
type CategoryStats struct {
	Category     string  `json:"category"`
	TotalBooks   int64   `json:"total_books"`
	AveragePrice float64 `json:"average_price"`
}
