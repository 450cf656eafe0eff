package product

import "time"

// Product is one catalog entry. Stock is the authoritative count the
// inventory operations decrement and restore.
type Product struct {
	ID          int       `json:"productId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"image"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Sizes       []string  `json:"sizes"`
	Bestseller  bool      `json:"bestseller"`
	Stock       int       `json:"stock"`
	Date        time.Time `json:"date"`
}
