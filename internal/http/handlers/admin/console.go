package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/console"
	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/render"
	"primini.ma/app/internal/http/session"
	"primini.ma/app/internal/modules/moderation"
	"primini.ma/app/pkg/view"
)

// ConsoleHandler is the moderation console: three tabs over the pending/all/
// mine product sources plus the pending offers section, with inline
// approve/reject actions. All screen state lives in the per-session
// console.Console; handlers translate HTTP events and render snapshots.
type ConsoleHandler struct {
	Registry *Registry
	Client   *backend.Client
	Flash    *flash.Codec
	Sessions *session.Codec
}

func NewConsoleHandler(reg *Registry, client *backend.Client, f *flash.Codec, codec *session.Codec) *ConsoleHandler {
	return &ConsoleHandler{Registry: reg, Client: client, Flash: f, Sessions: codec}
}

// Show renders the console, first reconciling the URL's tab/filter/page
// parameters against the console state. Filter and ordering changes fetch
// immediately; search arriving here is an explicit submit (the keystroke
// path is LiveSearch).
func (h *ConsoleHandler) Show(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	con := h.Registry.Get(s)
	ctx := c.Request.Context()

	snap := con.Snapshot()
	if tabQ := c.Query("tab"); tabQ != "" {
		if tab := console.ParseTab(tabQ); tab != snap.Tab {
			con.SelectTab(ctx, tab)
		} else if !snap.ProductsLoaded {
			con.Refresh(ctx)
		}
	} else if !snap.ProductsLoaded {
		con.Refresh(ctx)
	}

	snap = con.Snapshot()
	if q, ok := c.GetQuery("q"); ok && q != snap.Selection.Search {
		con.SearchNow(ctx, q)
	}
	if st, ok := c.GetQuery("status"); ok && st != snap.Selection.Status {
		con.SetStatus(ctx, st)
	}
	if ord, ok := c.GetQuery("ordering"); ok && ord != snap.Selection.Ordering {
		con.SetOrdering(ctx, ord)
	}
	if pg := parsePage(c.Query("page")); pg > 0 && pg != snap.Selection.Page {
		con.GoToProductsPage(ctx, pg)
	}
	if og := parsePage(c.Query("opage")); og > 0 && og != snap.Offers.CurrentPage {
		con.GoToOffersPage(ctx, og)
	}

	snap = con.Snapshot()
	if snap.AuthExpired {
		h.expireSession(c, s)
		return
	}

	vm := h.buildVM(snap)
	render.HTML(c, http.StatusOK, "admin_console.tmpl", "Modération", vm)
}

// LiveSearch receives keystroke events from the search box. The console
// debounces them; the page re-renders after the quiet period.
func (h *ConsoleHandler) LiveSearch(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	con := h.Registry.Get(s)
	con.SetSearch(strings.TrimSpace(c.PostForm("q")))
	c.Status(http.StatusAccepted)
}

func (h *ConsoleHandler) DismissBanner(c *gin.Context) {
	if s, ok := middleware.CurrentSession(c); ok {
		h.Registry.Get(s).DismissBanner()
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *ConsoleHandler) expireSession(c *gin.Context, s *session.Session) {
	h.Registry.Drop(s.ID)
	middleware.ClearSessionCookie(c, h.Sessions)
	middleware.SetFlashCookie(c, h.Flash, view.Flash{
		Kind:    view.FlashWarning,
		Message: "Votre session a expiré. Veuillez vous reconnecter.",
	})
	c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape("/admin"))
}

func (h *ConsoleHandler) buildVM(snap console.View) view.AdminConsolePage {
	vm := view.AdminConsolePage{
		Tab:      string(snap.Tab),
		Search:   snap.Selection.Search,
		Status:   snap.Selection.Status,
		Ordering: snap.Selection.Ordering,
		Banner:   snap.Banner,
		ProductsPagination: view.Pagination{
			Page:       snap.Products.CurrentPage,
			TotalPages: snap.Products.TotalPages,
			Count:      snap.Products.Count,
			Prev:       snap.Products.Prev(),
			Next:       snap.Products.Next(),
		},
	}

	base := h.Client.BaseURL()
	for _, p := range snap.Products.Results {
		row := view.AdminProductRow{
			Slug:      p.Slug,
			Name:      p.Name,
			Brand:     p.Brand,
			ImageURL:  p.ImageURL(base),
			Status:    view.StatusLabel(p.ApprovalStatus),
			CreatedBy: p.CreatedByEmail,
			CreatedAt: p.CreatedAt,
		}
		st := snap.Row(moderation.ProductTarget(p.Slug).Key())
		row.RejectOpen = st.FormOpen
		row.RejectDraft = st.RejectDraft
		row.InFlight = st.InFlight
		row.RowError = st.Err
		vm.Products = append(vm.Products, row)
	}

	if snap.Tab == console.TabPending {
		vm.PendingBadge = snap.PendingBadge()
		vm.OffersError = snap.OffersErr
		vm.OffersPagination = view.Pagination{
			Page:       snap.Offers.CurrentPage,
			TotalPages: snap.Offers.TotalPages,
			Count:      snap.Offers.Count,
			Prev:       snap.Offers.Prev(),
			Next:       snap.Offers.Next(),
		}
		for _, o := range snap.Offers.Results {
			row := view.AdminOfferRow{
				ID:        o.ID,
				Product:   o.ProductName(),
				Merchant:  o.MerchantName(),
				Price:     view.Money(o.Price.String(), o.Currency),
				Stock:     view.StockLabel(o.StockStatus),
				CreatedBy: o.CreatedByEmail,
				UpdatedAt: o.DateUpdated,
			}
			st := snap.Row(moderation.OfferTarget(o.ID).Key())
			row.RejectOpen = st.FormOpen
			row.RejectDraft = st.RejectDraft
			row.InFlight = st.InFlight
			row.RowError = st.Err
			vm.Offers = append(vm.Offers, row)
		}
	}

	return vm
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
