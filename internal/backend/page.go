package backend

// Page is the pagination envelope every list endpoint of the backend returns.
// Pages are 1-indexed. NextPage/PreviousPage are null at the boundaries.
// The backend accepts out-of-range pages and answers with empty results and
// correct metadata; nothing is clamped on this side.
type Page[T any] struct {
	Count        int  `json:"count"`
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
	PageSize     int  `json:"page_size"`
	Results      []T  `json:"results"`
}

func (p Page[T]) HasNext() bool { return p.NextPage != nil }
func (p Page[T]) HasPrev() bool { return p.PreviousPage != nil }

// Next returns the next page number, or 0 at the last page.
func (p Page[T]) Next() int {
	if p.NextPage == nil {
		return 0
	}
	return *p.NextPage
}

// Prev returns the previous page number, or 0 at the first page.
func (p Page[T]) Prev() int {
	if p.PreviousPage == nil {
		return 0
	}
	return *p.PreviousPage
}
