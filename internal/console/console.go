package console

import (
	"context"
	"sync"
	"time"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/modules/moderation"
	"primini.ma/app/internal/shared/apperr"
)

const searchDebounce = 500 * time.Millisecond

// Fetcher is the token-bound slice of the backend client the console reads
// from. *backend.Authed satisfies it.
type Fetcher interface {
	PendingProducts(ctx context.Context, page int) (backend.Page[backend.Product], error)
	PendingOffers(ctx context.Context, page int) (backend.Page[backend.PriceOffer], error)
	AllProducts(ctx context.Context, p backend.ListParams) (backend.Page[backend.Product], error)
	MyProducts(ctx context.Context, p backend.ListParams) (backend.Page[backend.Product], error)
}

// Moderator performs the four moderation actions. *moderation.Service
// satisfies it.
type Moderator interface {
	Approve(ctx context.Context, t moderation.Target) error
	Reject(ctx context.Context, t moderation.Target, reason string) error
}

// Console is the moderation screen's state: active tab, filter selection,
// the two result sections with their pagination metadata, and per-row
// transient state. One instance lives per admin session.
//
// Displayed lists are mutated only by fetch completions; user actions mutate
// backend state and then trigger a re-fetch. Every fetch carries a
// generation number so a response that was superseded by a newer fetch, or
// that lands after Close, is discarded without touching visible state.
type Console struct {
	fetcher  Fetcher
	mod      Moderator
	debounce *Debouncer

	mu     sync.Mutex
	closed bool

	tab Tab
	sel Selection

	products       backend.Page[backend.Product]
	productsGen    uint64
	productsLoaded bool

	offers       backend.Page[backend.PriceOffer]
	offersGen    uint64
	offersLoaded bool
	offersPage   int
	offersErr    string

	rows map[string]*RowState

	banner      string
	authExpired bool
}

type Option func(*Console)

// WithDebounceDelay overrides the search quiet period (tests).
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Console) { c.debounce = NewDebouncer(d) }
}

func New(fetcher Fetcher, mod Moderator, opts ...Option) *Console {
	c := &Console{
		fetcher:    fetcher,
		mod:        mod,
		debounce:   NewDebouncer(searchDebounce),
		tab:        TabPending,
		sel:        Selection{Page: 1},
		offersPage: 1,
		rows:       map[string]*RowState{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Close tears the console down: pending debounce timers are canceled and any
// in-flight fetch or action completion is discarded.
func (c *Console) Close() {
	c.debounce.Stop()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// SelectTab activates a tab and loads its data. Entering Pending issues two
// parallel requests (pending products and pending offers); All/Mine issue
// one. Switching to a different tab resets the filter selection and drops
// all transient row state.
func (c *Console) SelectTab(ctx context.Context, tab Tab) {
	c.debounce.Stop()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if tab != c.tab {
		c.tab = tab
		c.sel = Selection{Page: 1}
		c.offersPage = 1
		c.rows = map[string]*RowState{}
		c.banner = ""
		c.offersErr = ""
		c.productsLoaded = false
		c.offersLoaded = false
	}
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Refresh re-fetches the active tab's data.
func (c *Console) Refresh(ctx context.Context) {
	c.mu.Lock()
	tab := c.tab
	c.mu.Unlock()

	if tab == TabPending {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.fetchProducts(ctx)
		}()
		go func() {
			defer wg.Done()
			c.fetchOffers(ctx)
		}()
		wg.Wait()
		return
	}
	c.fetchProducts(ctx)
}

// SetStatus narrows the product list immediately (no debounce) and resets to
// page 1.
func (c *Console) SetStatus(ctx context.Context, status string) {
	c.debounce.Stop()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sel = c.sel.WithStatus(status)
	c.mu.Unlock()
	c.fetchProducts(ctx)
}

// SetOrdering re-sorts the product list immediately.
func (c *Console) SetOrdering(ctx context.Context, ordering string) {
	c.debounce.Stop()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sel = c.sel.WithOrdering(ordering)
	c.mu.Unlock()
	c.fetchProducts(ctx)
}

// SetSearch records the new search text and schedules a fetch after the
// quiet period. Further edits within the period replace the pending fetch,
// so a burst of keystrokes yields one request carrying the final text.
func (c *Console) SetSearch(search string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sel = c.sel.WithSearch(search)
	c.mu.Unlock()

	c.debounce.Trigger(func() {
		c.fetchProducts(context.Background())
	})
}

// SearchNow applies search text immediately: an explicit submit ends the
// typing burst, so the pending debounced fetch is superseded.
func (c *Console) SearchNow(ctx context.Context, search string) {
	c.debounce.Stop()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sel = c.sel.WithSearch(search)
	c.mu.Unlock()
	c.fetchProducts(ctx)
}

// GoToProductsPage moves the products section to the given page. Other
// filter fields are left untouched.
func (c *Console) GoToProductsPage(ctx context.Context, page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.sel = c.sel.WithPage(page)
	c.mu.Unlock()
	c.fetchProducts(ctx)
}

// GoToOffersPage moves the pending-offers section to the given page. The two
// Pending sections paginate independently.
func (c *Console) GoToOffersPage(ctx context.Context, page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}
	c.offersPage = page
	c.mu.Unlock()
	c.fetchOffers(ctx)
}

// OpenReject puts a row into confirm-rejection mode.
func (c *Console) OpenReject(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	st := c.row(key)
	if st.InFlight {
		return
	}
	st.FormOpen = true
	st.Err = ""
}

// SetRejectDraft stores the reason text typed so far.
func (c *Console) SetRejectDraft(key, draft string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	st := c.row(key)
	if st.InFlight {
		return
	}
	st.RejectDraft = draft
}

// CancelReject closes the confirmation form and clears the row's transient
// state. Ignored while the row's action is in flight.
func (c *Console) CancelReject(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if st, ok := c.rows[key]; ok && !st.InFlight {
		delete(c.rows, key)
	}
}

// Approve submits an approval for one entity. Duplicate submits for a row
// already in flight are ignored; other rows stay actionable. On success the
// owning section is re-fetched exactly once and the row state is cleared.
func (c *Console) Approve(ctx context.Context, t moderation.Target) error {
	key := t.Key()
	if !c.beginAction(key) {
		return nil
	}

	err := c.mod.Approve(ctx, t)
	return c.finishAction(ctx, t, key, err)
}

// Reject submits a rejection with the given reason. A blank reason fails
// locally (inline error, no network call, form stays open).
func (c *Console) Reject(ctx context.Context, t moderation.Target, reason string) error {
	key := t.Key()
	if !c.beginAction(key) {
		return nil
	}

	c.mu.Lock()
	if st, ok := c.rows[key]; ok {
		st.RejectDraft = reason
	}
	c.mu.Unlock()

	err := c.mod.Reject(ctx, t, reason)
	return c.finishAction(ctx, t, key, err)
}

// DismissBanner clears the page-level error banner.
func (c *Console) DismissBanner() {
	c.mu.Lock()
	c.banner = ""
	c.mu.Unlock()
}

// beginAction marks the row in flight, refusing when another action for the
// same entity is already running.
func (c *Console) beginAction(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	st := c.row(key)
	if st.InFlight {
		return false
	}
	st.InFlight = true
	st.Err = ""
	return true
}

// finishAction applies an action result: the re-fetch only happens after the
// mutation's response has been observed, never speculatively.
func (c *Console) finishAction(ctx context.Context, t moderation.Target, key string, err error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	st := c.row(key)
	st.InFlight = false

	if err != nil {
		switch {
		case apperr.IsKind(err, apperr.Validation):
			st.Err = apperr.PublicMessage(err)
			st.FormOpen = true
		case apperr.IsAuth(err):
			c.authExpired = true
			c.mu.Unlock()
			return err
		default:
			c.banner = apperr.PublicMessage(err)
		}
		c.mu.Unlock()
		return nil
	}

	delete(c.rows, key)
	c.mu.Unlock()

	if t.Kind == moderation.KindOffer {
		c.fetchOffers(ctx)
	} else {
		c.fetchProducts(ctx)
	}
	return nil
}

func (c *Console) fetchProducts(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.productsGen++
	gen := c.productsGen
	tab := c.tab
	sel := c.sel
	c.mu.Unlock()

	var page backend.Page[backend.Product]
	var err error
	switch tab {
	case TabAll:
		page, err = c.fetcher.AllProducts(ctx, sel.Params())
	case TabMine:
		page, err = c.fetcher.MyProducts(ctx, sel.Params())
	default:
		page, err = c.fetcher.PendingProducts(ctx, sel.Page)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A newer fetch, a tab switch or Close supersedes this response.
	if c.closed || gen != c.productsGen || tab != c.tab {
		return
	}
	if err != nil {
		if apperr.IsAuth(err) {
			c.authExpired = true
			return
		}
		// Keep the stale list; just surface the failure.
		c.banner = apperr.PublicMessage(err)
		return
	}
	c.products = page
	c.productsLoaded = true
}

func (c *Console) fetchOffers(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.tab != TabPending {
		c.mu.Unlock()
		return
	}
	c.offersGen++
	gen := c.offersGen
	pageNum := c.offersPage
	c.mu.Unlock()

	page, err := c.fetcher.PendingOffers(ctx, pageNum)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.offersGen || c.tab != TabPending {
		return
	}
	if err != nil {
		if apperr.IsAuth(err) {
			c.authExpired = true
			return
		}
		// The offers section degrades on its own; the rest of the screen
		// stays usable.
		c.offersErr = apperr.PublicMessage(err)
		return
	}
	c.offers = page
	c.offersLoaded = true
	c.offersErr = ""
}
