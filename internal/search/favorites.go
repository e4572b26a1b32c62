package search

import (
	"slices"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Favorites is a session-scoped set of books keyed by title. Two different
// books sharing a title count as the same favorite.
type Favorites struct {
	items []book.Book
}

// NewFavorites returns an empty set.
func NewFavorites() *Favorites {
	return &Favorites{}
}

// Toggle adds b when no favorite has its title and returns true; otherwise
// it removes that favorite and returns false.
func (f *Favorites) Toggle(b book.Book) bool {
	if i := f.indexOf(b.Title); i >= 0 {
		f.items = slices.Delete(f.items, i, i+1)
		return false
	}
	f.items = append(f.items, b)
	return true
}

// Contains reports whether a favorite has b's title.
func (f *Favorites) Contains(b book.Book) bool {
	return f.indexOf(b.Title) >= 0
}

// List returns the favorites in the order they were added.
func (f *Favorites) List() []book.Book {
	return slices.Clone(f.items)
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	return len(f.items)
}

func (f *Favorites) indexOf(title string) int {
	return slices.IndexFunc(f.items, func(b book.Book) bool {
		return b.Title == title
	})
}
