// Package book defines the canonical Book record and how raw Google Books
// volumes are normalized into it.
package book

import "fmt"

// Defaults used when a volume is missing a field.
const (
	UnknownAuthor      = "Unknown Author"
	NoDescription      = "No description available"
	Uncategorized      = "Uncategorized"
	UnknownYear        = "Unknown"
	PlaceholderCover   = "https://via.placeholder.com/128x192?text=No+Cover"
	NoISBN             = "N/A"
	UnknownPublisher   = "Unknown Publisher"
	UnknownLanguage    = "Unknown"
	MaxRating          = 5.0
	priceNotAvailable  = "Price not available"
	ratingNotAvailable = "No rating"
)

// Book is an immutable, fully defaulted search result.
type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Genre       string  `json:"genre"`
	Year        string  `json:"year"`
	ImageURL    string  `json:"imageUrl"`
	ISBN        string  `json:"isbn"`
	Publisher   string  `json:"publisher"`
	Language    string  `json:"language"`
	Pages       int     `json:"pages"`
	Price       float64 `json:"price"`
}

// PriceLabel renders the price, or "Price not available" for 0.
func (b Book) PriceLabel() string {
	if b.Price <= 0 {
		return priceNotAvailable
	}
	return fmt.Sprintf("$%.2f", b.Price)
}

// RatingLabel renders the rating badge text; books without ratings get "No rating".
func (b Book) RatingLabel() string {
	if b.Rating <= 0 {
		return ratingNotAvailable
	}
	return fmt.Sprintf("★ %.1f", b.Rating)
}
