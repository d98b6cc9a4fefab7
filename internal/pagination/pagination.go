// Package pagination computes page windows over a counted result set.
package pagination

import "strconv"

// DirectoryPageSize is the number of profiles shown per directory page.
const DirectoryPageSize = 3

const (
	rangeBefore = 4
	rangeAfter  = 5
)

// Page describes one page of a result set and the page links to render.
type Page struct {
	Number      int   `json:"number"`
	Size        int   `json:"size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
	Range       []int `json:"pages_range"`
}

// ParsePage reads a page query parameter. Anything that is not a positive
// integer means the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// New builds the page for the requested number. Requests past the last page
// land on the last page.
func New(total int64, page, size int) Page {
	if size < 1 {
		size = DirectoryPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	left := page - rangeBefore
	if left < 1 {
		left = 1
	}
	right := page + rangeAfter
	if right > totalPages+1 {
		right = totalPages + 1
	}

	pages := make([]int, 0, rangeBefore+rangeAfter)
	for n := left; n < right; n++ {
		pages = append(pages, n)
	}

	return Page{
		Number:      page,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
		Range:       pages,
	}
}

// Offset is the number of rows to skip to reach this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
