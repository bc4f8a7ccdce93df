// Package pagination provides the shared paging and text filtering
// helpers used by every list endpoint.
package pagination

import "strings"

// Page holds one page of a larger list together with its paging metadata
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate slices items into the requested 1-indexed page. A page number
// outside the valid range is clamped into it rather than rejected, so a
// stale page reference after deletions still returns data. An empty list
// yields a single empty page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Filter returns the items whose extracted text contains the query,
// case-insensitively. An empty or whitespace-only query matches
// everything. Input order is preserved and items is never mutated.
func Filter[T any](items []T, query string, text func(T) string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(text(item)), query) {
			matched = append(matched, item)
		}
	}
	return matched
}

// ClampPage bounds a 1-indexed page number into the valid range for a
// list of total items, so a stale page reference after deletions still
// resolves to the last page instead of an empty one.
func ClampPage(page, pageSize int, total int64) int {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ClampPageSize bounds a requested page size into [1, max], applying
// def when the request did not specify one.
func ClampPageSize(pageSize, def, max int) int {
	if pageSize < 1 {
		return def
	}
	if pageSize > max {
		return max
	}
	return pageSize
}
