package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lepinkainen/bookfinder/internal/book"
)

func TestFavoritesToggleRoundTrip(t *testing.T) {
	f := NewFavorites()
	b := book.Book{ID: "1", Title: "Dune"}

	assert.False(t, f.Contains(b))
	assert.True(t, f.Toggle(b))
	assert.True(t, f.Contains(b))
	assert.False(t, f.Toggle(b))
	assert.False(t, f.Contains(b))
	assert.Equal(t, 0, f.Len())
}

func TestFavoritesTitleCollision(t *testing.T) {
	f := NewFavorites()
	hardcover := book.Book{ID: "1", Title: "Dune", Publisher: "Chilton"}
	paperback := book.Book{ID: "2", Title: "Dune", Publisher: "Ace"}

	assert.True(t, f.Toggle(hardcover))
	assert.True(t, f.Contains(paperback))

	// Toggling the other edition removes the first one.
	assert.False(t, f.Toggle(paperback))
	assert.Equal(t, 0, f.Len())
}

func TestFavoritesListKeepsInsertionOrder(t *testing.T) {
	f := NewFavorites()
	for _, title := range []string{"C", "A", "B"} {
		f.Toggle(book.Book{Title: title})
	}
	f.Toggle(book.Book{Title: "A"})

	list := f.List()
	assert.Equal(t, []string{"C", "B"}, titles(list))

	list[0].Title = "mutated"
	assert.Equal(t, []string{"C", "B"}, titles(f.List()))
}
