package pagination

// Package pagination implements the page/limit paging semantics used by the
// ledger query layer: 1-based pages, a bounded limit, and total-count
// reporting for UI paging.

const (
	// DefaultLimit is applied when the caller does not specify a page size.
	DefaultLimit = 10
	// MaxLimit caps the page size to keep result sets bounded.
	MaxLimit = 100
)

// Normalize clamps page and limit to usable values.
func Normalize(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset converts 1-based page/limit to a SQL offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages computes the page count for a total row count. Zero rows yield
// zero pages.
func TotalPages(totalCount int64, limit int) int {
	if totalCount <= 0 || limit <= 0 {
		return 0
	}
	pages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
