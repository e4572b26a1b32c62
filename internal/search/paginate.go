package search

import "github.com/lepinkainen/bookfinder/internal/book"

// PageSize is the number of books shown per page.
const PageSize = 6

// Page is one slice of a result list.
type Page struct {
	Items      []book.Book
	Page       int
	TotalPages int
}

// Paginate slices items into pages of size. TotalPages is never below 1
// and the requested page is clamped into [1, TotalPages].
func Paginate(items []book.Book, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}

	totalPages := max(1, (len(items)+size-1)/size)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * size
	end := min(start+size, len(items))

	return Page{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}
