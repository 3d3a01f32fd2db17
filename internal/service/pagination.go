package service

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is the raw, unclamped paging request from the caller.
type Pagination struct {
	Page  int
	Limit int
}

// clamp normalizes the paging request: page at least 1, limit within
// [1,100], zero values replaced by the defaults.
func (p Pagination) clamp() (page, limit int) {
	page = p.Page
	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Page is one page of results plus paging metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// newPage assembles the paging envelope, computing the page count as
// ceil(total/limit).
func newPage[T any](items []T, total int64, page, limit int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
