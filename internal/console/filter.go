package console

import (
	"primini.ma/app/internal/backend"
)

// Selection is the current filter/sort state of the console's product list.
// The zero value means "no filters, page 1".
//
// Invariant: changing any field other than Page resets Page to 1, so a
// narrowed result set is never entered in the middle.
type Selection struct {
	Status   string
	Search   string
	Ordering string
	Page     int
}

func (s Selection) WithStatus(status string) Selection {
	if status != s.Status {
		s.Status = status
		s.Page = 1
	}
	return s
}

func (s Selection) WithSearch(search string) Selection {
	if search != s.Search {
		s.Search = search
		s.Page = 1
	}
	return s
}

func (s Selection) WithOrdering(ordering string) Selection {
	if ordering != s.Ordering {
		s.Ordering = ordering
		s.Page = 1
	}
	return s
}

func (s Selection) WithPage(page int) Selection {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// Params maps the selection onto backend query parameters. Unset fields are
// omitted entirely rather than sent as empty strings.
func (s Selection) Params() backend.ListParams {
	return backend.ListParams{
		Page:     s.Page,
		Search:   s.Search,
		Status:   s.Status,
		Ordering: s.Ordering,
	}
}
