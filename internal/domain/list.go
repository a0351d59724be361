package domain

// ListResult holds one page of a backend list response together with the
// paging facts needed to render pagination controls.
//
// List endpoints return either a paginated envelope {results, count} or a
// bare array. When the count is absent the result is treated as a single
// page, whatever its length.
type ListResult[T any] struct {
	Items    []T
	Count    int  // Backend-reported total, valid only when Counted
	Counted  bool // False when the backend returned a bare array
	Page     int  // 1-indexed page this result represents
	PageSize int
}

// TotalPages returns the page count derived from the backend total,
// or 1 when the backend did not report one.
func (r *ListResult[T]) TotalPages() int {
	if !r.Counted || r.PageSize <= 0 {
		return 1
	}
	pages := r.Count / r.PageSize
	if r.Count%r.PageSize > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// HasPrevious returns true if there is a page before this one.
func (r *ListResult[T]) HasPrevious() bool {
	return r.Page > 1
}

// HasNext returns true if there are more results after this page.
func (r *ListResult[T]) HasNext() bool {
	return r.Page < r.TotalPages()
}
