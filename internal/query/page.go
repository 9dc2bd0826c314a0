package query

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// maxPage keeps (page-1)*limit well inside int64.
	maxPage = math.MaxInt32
)

// Page is an offset window over a result set.
type Page struct {
	Number int
	Limit  int
}

// NewPage normalises page and limit, falling back to the defaults for
// non-positive values and clamping limit to MaxLimit.
func NewPage(page, limit int) Page {
	if page <= 0 {
		page = DefaultPage
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// Skip is the number of records preceding the window.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// NumPages returns ceil(total/limit). Zero matches yield zero pages.
func (p Page) NumPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// SortField is a single ordering key.
type SortField struct {
	Field      string
	Descending bool
}

// NewestFirst orders listings by creation time, newest first. Ties fall back
// to the store identifier so windows stay stable.
var NewestFirst = []SortField{{Field: FieldCreatedAt, Descending: true}, {Field: "_id", Descending: true}}
