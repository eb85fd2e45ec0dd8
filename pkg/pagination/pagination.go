// Package pagination implements the offset/limit page envelope shared by
// every list endpoint: fixed page size, 1-indexed pages, has_next/has_prev
// derived from the total count.
package pagination

// Page carries one page of results plus navigation state.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
	NextPage int   `json:"next_page,omitempty"`
	PrevPage int   `json:"prev_page,omitempty"`
}

// Clamp normalizes a requested page/size pair. Non-positive pages become
// page 1; non-positive sizes fall back to def.
func Clamp(page, size, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = def
	}
	return page, size
}

// Offset converts a 1-indexed page to the storage offset.
func Offset(page, size int) int {
	return (page - 1) * size
}

// New assembles the envelope. items may be shorter than size on the last
// page, or empty when page points past the data.
func New[T any](items []T, page, size int, total int64) Page[T] {
	p := Page[T]{
		Items:    items,
		Page:     page,
		PageSize: size,
		Total:    total,
		HasNext:  int64(page)*int64(size) < total,
		HasPrev:  page > 1,
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p
}
