package backend

import "context"

// Authed binds a bearer token to the shared client so that per-session code
// (the admin console, the moderation service) never carries the token
// around itself.
type Authed struct {
	c     *Client
	token string
}

func (c *Client) WithToken(token string) *Authed {
	return &Authed{c: c, token: token}
}

func (a *Authed) PendingProducts(ctx context.Context, page int) (Page[Product], error) {
	return a.c.PendingProducts(ctx, a.token, page)
}

func (a *Authed) PendingOffers(ctx context.Context, page int) (Page[PriceOffer], error) {
	return a.c.PendingOffers(ctx, a.token, page)
}

// AllProducts is the moderator's view of the catalog: same endpoint as the
// public listing, but the token unlocks non-approved statuses.
func (a *Authed) AllProducts(ctx context.Context, p ListParams) (Page[Product], error) {
	var page Page[Product]
	err := a.c.getJSON(ctx, "/products/", p.Values(), a.token, &page)
	return page, err
}

func (a *Authed) MyProducts(ctx context.Context, p ListParams) (Page[Product], error) {
	return a.c.MyProducts(ctx, a.token, p)
}

func (a *Authed) ApproveProduct(ctx context.Context, slug string) error {
	return a.c.ApproveProduct(ctx, a.token, slug)
}

func (a *Authed) RejectProduct(ctx context.Context, slug, reason string) error {
	return a.c.RejectProduct(ctx, a.token, slug, reason)
}

func (a *Authed) ApproveOffer(ctx context.Context, id int64) error {
	return a.c.ApproveOffer(ctx, a.token, id)
}

func (a *Authed) RejectOffer(ctx context.Context, id int64, reason string) error {
	return a.c.RejectOffer(ctx, a.token, id, reason)
}
