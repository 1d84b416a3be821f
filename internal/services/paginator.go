package services

import (
	"strconv"
	"strings"
)

// PostsPerPage is the page size of every post listing.
const PostsPerPage = 10

// Page is one window of an ordered listing.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) PreviousNumber() int {
	if p.Number > 1 {
		return p.Number - 1
	}
	return 1
}

func (p *Page[T]) NextNumber() int {
	if p.Number < p.NumPages {
		return p.Number + 1
	}
	return p.NumPages
}

// Len is the number of items on this page.
func (p *Page[T]) Len() int { return len(p.Items) }

// PageRange lists 1..NumPages for the page links.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// ParsePageNumber reads the ?page= value; anything that is not an integer
// selects the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NumPages returns how many pages count items fill. An empty listing still
// has one (empty) page.
func NumPages(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// ClampPage maps a requested number onto 1..numPages.
func ClampPage(number, numPages int) int {
	if number < 1 {
		return 1
	}
	if number > numPages {
		return numPages
	}
	return number
}

// Paginate slices items into the requested page, clamping out-of-range numbers.
func Paginate[T any](items []T, number, perPage int) *Page[T] {
	count := int64(len(items))
	numPages := NumPages(count, perPage)
	number = ClampPage(number, numPages)

	start := (number - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return &Page[T]{
		Items:    items[start:end],
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}
}
