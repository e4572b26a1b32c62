package search

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Sentinel facet values meaning "no filter on this dimension".
const (
	AllGenres  = "All Genres"
	AllYears   = "All Years"
	AllRatings = "All Ratings"
)

// RatingBuckets are the fixed rating facets, strongest first.
var RatingBuckets = []string{AllRatings, "4.5+", "4.0+", "3.5+", "3.0+"}

// Facets are the filter choices available for a result set.
type Facets struct {
	Genres  []string
	Years   []string
	Ratings []string
}

// DeriveFacets collects distinct genres and years in first-seen order,
// each list led by its "All" sentinel.
func DeriveFacets(books []book.Book) Facets {
	genres := []string{AllGenres}
	years := []string{AllYears}
	seenGenre := make(map[string]struct{}, len(books))
	seenYear := make(map[string]struct{}, len(books))

	for _, b := range books {
		if _, ok := seenGenre[b.Genre]; !ok {
			seenGenre[b.Genre] = struct{}{}
			genres = append(genres, b.Genre)
		}
		if _, ok := seenYear[b.Year]; !ok {
			seenYear[b.Year] = struct{}{}
			years = append(years, b.Year)
		}
	}

	return Facets{Genres: genres, Years: years, Ratings: slices.Clone(RatingBuckets)}
}

// Filter selects one value per facet. Empty fields and "All" sentinels match everything.
type Filter struct {
	Genre  string
	Year   string
	Rating string
}

// IsZero reports whether f filters nothing.
func (f Filter) IsZero() bool {
	return isAll(f.Genre, AllGenres) && isAll(f.Year, AllYears) && isAll(f.Rating, AllRatings)
}

// Match applies genre AND year AND rating. Rating buckets are inclusive:
// "4.0+" keeps books rated exactly 4.0.
func (f Filter) Match(b book.Book) bool {
	if !isAll(f.Genre, AllGenres) && b.Genre != f.Genre {
		return false
	}
	if !isAll(f.Year, AllYears) && b.Year != f.Year {
		return false
	}
	if threshold, ok := RatingThreshold(f.Rating); ok && b.Rating < threshold {
		return false
	}
	return true
}

// Apply returns the books matching f, keeping order.
func (f Filter) Apply(books []book.Book) []book.Book {
	if f.IsZero() {
		return books
	}
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// RatingThreshold parses a bucket like "3.5+". The "All" bucket and
// unknown values report ok=false.
func RatingThreshold(bucket string) (float64, bool) {
	if isAll(bucket, AllRatings) || !slices.Contains(RatingBuckets, bucket) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(bucket, "+"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isAll(value, sentinel string) bool {
	return value == "" || value == sentinel
}
