package helpers

import (
	"strconv"
)

const (
	DefaultPageSize = 10
	DefaultPage     = 0 // Roster pages are 0-based
)

// PageSizeOptions are the page sizes the roster offers, in display order
var PageSizeOptions = []int{10, 25, 100}

// IsPageSize reports whether size is one of PageSizeOptions
func IsPageSize(size int) bool {
	for _, opt := range PageSizeOptions {
		if opt == size {
			return true
		}
	}
	return false
}

// PageCount returns floor((total-1)/size)+1, and 1 for an empty list so an
// empty table still renders a single page.
func PageCount(totalItems, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalItems <= 0 {
		return 1
	}
	return (totalItems-1)/size + 1
}

// ClampPage keeps a 0-based page index inside [0, PageCount-1]
func ClampPage(page, size, totalItems int) int {
	if page < 0 {
		return DefaultPage
	}
	if last := PageCount(totalItems, size) - 1; page > last {
		return last
	}
	return page
}

// CalculateSliceIndices returns [start, end) of a 0-based page over totalItems
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = DefaultPage
	}

	start = page * size
	end = start + size

	if start >= totalItems {
		return totalItems, totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// ParsePageParam parses a 0-based page query value; ok is false when absent or invalid
func ParsePageParam(raw string) (page int, ok bool) {
	if raw == "" {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}

// ParseSizeParam parses a page size query value; ok is false unless it is a known option
func ParseSizeParam(raw string) (size int, ok bool) {
	if raw == "" {
		return 0, false
	}
	size, err := strconv.Atoi(raw)
	if err != nil || !IsPageSize(size) {
		return 0, false
	}
	return size, true
}
