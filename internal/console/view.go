package console

import (
	"primini.ma/app/internal/backend"
)

// View is an immutable snapshot of the console for rendering. Row states are
// copied by value so the renderer can never race a later event.
type View struct {
	Tab       Tab
	Selection Selection

	Products       backend.Page[backend.Product]
	ProductsLoaded bool

	Offers       backend.Page[backend.PriceOffer]
	OffersLoaded bool
	OffersErr    string

	Rows map[string]RowState

	Banner      string
	AuthExpired bool
}

// PendingBadge is the Pending tab's count badge: the sum of both sections'
// totals.
func (v View) PendingBadge() int {
	return v.Products.Count + v.Offers.Count
}

func (v View) Row(key string) RowState {
	return v.Rows[key]
}

func (c *Console) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make(map[string]RowState, len(c.rows))
	for k, st := range c.rows {
		rows[k] = *st
	}

	return View{
		Tab:            c.tab,
		Selection:      c.sel,
		Products:       c.products,
		ProductsLoaded: c.productsLoaded,
		Offers:         c.offers,
		OffersLoaded:   c.offersLoaded,
		OffersErr:      c.offersErr,
		Rows:           rows,
		Banner:         c.banner,
		AuthExpired:    c.authExpired,
	}
}
