package book

import (
	"math"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/googlebooks"
)

// FromVolume maps a raw volume into a Book, applying the default for every missing field.
func FromVolume(v googlebooks.Volume) Book {
	info := v.VolumeInfo

	return Book{
		ID:          v.ID,
		Title:       info.Title,
		Author:      joinAuthors(info.Authors),
		Description: orDefault(info.Description, NoDescription),
		Rating:      clamp(info.AverageRating, 0, MaxRating),
		Genre:       firstOr(info.Categories, Uncategorized),
		Year:        yearOf(info.PublishedDate),
		ImageURL:    coverURL(info.ImageLinks),
		ISBN:        isbnOf(info.IndustryIdentifiers),
		Publisher:   orDefault(info.Publisher, UnknownPublisher),
		Language:    orDefault(info.Language, UnknownLanguage),
		Pages:       max(info.PageCount, 0),
		Price:       listPrice(info.SaleInfo, v.SaleInfo),
	}
}

// FromVolumes normalizes a slice, keeping API order. The result is never nil.
func FromVolumes(volumes []googlebooks.Volume) []Book {
	books := make([]Book, 0, len(volumes))
	for _, v := range volumes {
		books = append(books, FromVolume(v))
	}
	return books
}

func joinAuthors(authors []string) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return UnknownAuthor
	}
	return strings.Join(names, ", ")
}

// yearOf keeps the part of publishedDate before the first '-' ("2004-09-15" -> "2004").
func yearOf(publishedDate string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(publishedDate), "-")
	if year == "" {
		return UnknownYear
	}
	return year
}

func coverURL(links *googlebooks.ImageLinks) string {
	if links == nil || links.Thumbnail == "" {
		return PlaceholderCover
	}
	return links.Thumbnail
}

func isbnOf(ids []googlebooks.IndustryIdentifier) string {
	if len(ids) == 0 || ids[0].Identifier == "" {
		return NoISBN
	}
	return ids[0].Identifier
}

// listPrice prefers saleInfo nested in volumeInfo and falls back to the item-level one.
func listPrice(candidates ...*googlebooks.SaleInfo) float64 {
	for _, s := range candidates {
		if s != nil && s.ListPrice != nil && s.ListPrice.Amount > 0 {
			return s.ListPrice.Amount
		}
	}
	return 0
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return orDefault(values[0], fallback)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
