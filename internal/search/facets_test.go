package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lepinkainen/bookfinder/internal/book"
)

var facetBooks = []book.Book{
	{Title: "A", Genre: "Fiction", Year: "2004", Rating: 4.5},
	{Title: "B", Genre: "History", Year: "1999", Rating: 4.0},
	{Title: "C", Genre: "Fiction", Year: "1999", Rating: 3.9},
	{Title: "D", Genre: "Uncategorized", Year: "Unknown", Rating: 0},
}

func TestDeriveFacetsCollapsesDuplicatesInFirstSeenOrder(t *testing.T) {
	f := DeriveFacets(facetBooks)

	assert.Equal(t, []string{AllGenres, "Fiction", "History", "Uncategorized"}, f.Genres)
	assert.Equal(t, []string{AllYears, "2004", "1999", "Unknown"}, f.Years)
	assert.Equal(t, RatingBuckets, f.Ratings)
}

func TestDeriveFacetsEmpty(t *testing.T) {
	f := DeriveFacets(nil)

	assert.Equal(t, []string{AllGenres}, f.Genres)
	assert.Equal(t, []string{AllYears}, f.Years)
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"zero value keeps all", Filter{}, []string{"A", "B", "C", "D"}},
		{"all sentinels keep all", Filter{Genre: AllGenres, Year: AllYears, Rating: AllRatings}, []string{"A", "B", "C", "D"}},
		{"genre", Filter{Genre: "Fiction"}, []string{"A", "C"}},
		{"year", Filter{Year: "1999"}, []string{"B", "C"}},
		{"rating threshold is inclusive", Filter{Rating: "4.0+"}, []string{"A", "B"}},
		{"rating 4.5+", Filter{Rating: "4.5+"}, []string{"A"}},
		{"dimensions compose with AND", Filter{Genre: "Fiction", Year: "1999"}, []string{"C"}},
		{"AND with rating", Filter{Year: "1999", Rating: "4.0+"}, []string{"B"}},
		{"no match", Filter{Genre: "History", Rating: "4.5+"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titles(tt.filter.Apply(facetBooks)))
		})
	}
}

func TestRatingThreshold(t *testing.T) {
	v, ok := RatingThreshold("3.5+")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)

	_, ok = RatingThreshold(AllRatings)
	assert.False(t, ok)

	_, ok = RatingThreshold("")
	assert.False(t, ok)

	_, ok = RatingThreshold("2.0+")
	assert.False(t, ok)
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.True(t, Filter{Genre: AllGenres}.IsZero())
	assert.False(t, Filter{Year: "2004"}.IsZero())
}
