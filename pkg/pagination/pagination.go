package pagination

import "fmt"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page number to one-based indexing.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts page/limit into the row offset for a query.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// Links returns the next/previous page hints the dashboard expects, nil when
// the respective page does not exist.
func Links(page, limit, total int) (next, prev *string) {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)
	if page*limit < total {
		n := fmt.Sprintf("?page=%d", page+1)
		next = &n
	}
	if page > 1 {
		p := fmt.Sprintf("?page=%d", page-1)
		prev = &p
	}
	return next, prev
}
