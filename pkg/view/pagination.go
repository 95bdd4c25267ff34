package view

// Pagination is the previous/next control block under a table. Prev/Next are
// 0 when the corresponding boundary is reached and the control is hidden.
type Pagination struct {
	Page       int
	TotalPages int
	Count      int
	Prev       int
	Next       int
}

func (p Pagination) HasPrev() bool { return p.Prev > 0 }
func (p Pagination) HasNext() bool { return p.Next > 0 }
