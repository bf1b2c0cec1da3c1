package question

import "strconv"

// Paginate returns the 1-based page of items, PageSize items at most.
// Pages past the end, and pages below 1, are empty.
func Paginate[T any](page int, items []T) []T {
	if page < 1 || page-1 > len(items)/PageSize {
		return []T{}
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// ParsePage reads the page query parameter. Absent or non-integer values select page 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
