package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateThirteenItems(t *testing.T) {
	items := makeBooks(13)

	tests := []struct {
		page         int
		expectedPage int
		expectedLen  int
	}{
		{1, 1, 6},
		{2, 2, 6},
		{3, 3, 1},
		{5, 3, 1},
		{0, 1, 6},
		{-2, 1, 6},
	}

	for _, tt := range tests {
		p := Paginate(items, tt.page, PageSize)

		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, tt.expectedPage, p.Page, "page %d", tt.page)
		assert.Len(t, p.Items, tt.expectedLen, "page %d", tt.page)
	}
}

func TestPaginateSlicesInOrder(t *testing.T) {
	items := makeBooks(13)

	assert.Equal(t, []string{"G", "H", "I", "J", "K", "L"}, titles(Paginate(items, 2, PageSize).Items))
	assert.Equal(t, []string{"M"}, titles(Paginate(items, 3, PageSize).Items))
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, PageSize)

	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Empty(t, p.Items)
}

func TestPaginateExactMultipleAndDefaultSize(t *testing.T) {
	p := Paginate(makeBooks(12), 2, 0)

	assert.Equal(t, 2, p.TotalPages)
	assert.Len(t, p.Items, 6)
}
