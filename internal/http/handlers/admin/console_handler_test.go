package admin

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/session"
)

// fakeAPI mimics the backend's moderation endpoints and records every
// request it sees.
type fakeAPI struct {
	mu       sync.Mutex
	requests []*url.URL
	approved []string
	rejected map[string]string
}

func (a *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, r.URL)
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/approve/"):
			a.mu.Lock()
			a.approved = append(a.approved, path)
			a.mu.Unlock()
			io.WriteString(w, `{}`)
		case strings.HasSuffix(path, "/reject/"):
			var body struct {
				Reason string `json:"reason"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			a.mu.Lock()
			if a.rejected == nil {
				a.rejected = map[string]string{}
			}
			a.rejected[path] = body.Reason
			a.mu.Unlock()
			io.WriteString(w, `{}`)
		case strings.Contains(path, "/offers/"):
			writePage(w, backend.Page[backend.PriceOffer]{
				Count: 1, TotalPages: 1, CurrentPage: 1,
				Results: []backend.PriceOffer{{ID: 7, Price: "999.00", Currency: "MAD", StockStatus: "in_stock"}},
			})
		default:
			writePage(w, backend.Page[backend.Product]{
				Count: 2, TotalPages: 1, CurrentPage: 1,
				Results: []backend.Product{
					{Slug: "iphone-15", Name: "iPhone 15", Brand: "Apple", ApprovalStatus: "pending"},
					{Slug: "galaxy-s24", Name: "Galaxy S24", Brand: "Samsung", ApprovalStatus: "pending"},
				},
			})
		}
	})
}

func writePage[T any](w http.ResponseWriter, p backend.Page[T]) {
	if p.Results == nil {
		p.Results = []T{}
	}
	_ = json.NewEncoder(w).Encode(p)
}

func (a *fakeAPI) lastListRequest(pathPart string) *url.URL {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.requests) - 1; i >= 0; i-- {
		u := a.requests[i]
		if strings.Contains(u.Path, pathPart) && !strings.Contains(u.Path, "approve") && !strings.Contains(u.Path, "reject") {
			return u
		}
	}
	return nil
}

type consoleApp struct {
	router  *gin.Engine
	api     *fakeAPI
	cookie  *http.Cookie
	handler *ConsoleHandler
}

func newConsoleApp(t *testing.T) *consoleApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.NewClient(srv.URL, logger)

	secret := []byte("test-secret")
	flashCodec := flash.NewCodec(secret, "primini_flash", false)
	sessionCodec := session.NewCodec(secret, "primini_session", false, time.Hour)
	registry := NewRegistry(client)
	h := NewConsoleHandler(registry, client, flashCodec, sessionCodec)

	r := gin.New()
	r.SetFuncMap(template.FuncMap{
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				if k, ok := pairs[i].(string); ok {
					m[k] = pairs[i+1]
				}
			}
			return m
		},
	})
	r.LoadHTMLGlob("../../../../templates/*.tmpl")
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.SessionMiddleware(sessionCodec))

	r.GET("/admin", h.Show)
	r.POST("/admin/search", h.LiveSearch)
	r.POST("/admin/products/:slug/approve", h.ApproveProduct)
	r.POST("/admin/products/:slug/reject", h.RejectProduct)
	r.POST("/admin/products/:slug/reject/open", h.OpenRejectProduct)
	r.POST("/admin/offers/:id/approve", h.ApproveOffer)

	s := session.New("tok", "admin@primini.ma", "Admin", true, time.Hour)
	v, err := sessionCodec.Encode(s)
	require.NoError(t, err)

	return &consoleApp{
		router:  r,
		api:     api,
		cookie:  &http.Cookie{Name: "primini_session", Value: v},
		handler: h,
	}
}

func (a *consoleApp) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(a.cookie)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestShow_RendersPendingTab(t *testing.T) {
	app := newConsoleApp(t)

	w := app.do(t, http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "iPhone 15")
	assert.Contains(t, body, "Offres en attente")
	assert.Contains(t, body, "999,00 DH")
	// Badge: 2 pending products + 1 pending offer.
	assert.Contains(t, body, `<span class="badge">3</span>`)
}

func TestShow_QueryParamsReachBackend(t *testing.T) {
	app := newConsoleApp(t)

	w := app.do(t, http.MethodGet, "/admin?tab=all&q=tv&status=approved", nil)
	require.Equal(t, http.StatusOK, w.Code)

	u := app.api.lastListRequest("/api/products/")
	require.NotNil(t, u)
	q := u.Query()
	assert.Equal(t, "tv", q.Get("search"))
	assert.Equal(t, "approved", q.Get("status"))
	assert.Equal(t, "1", q.Get("page"), "filter changes land on page 1")
}

func TestShow_SelectionSurvivesReload(t *testing.T) {
	app := newConsoleApp(t)

	app.do(t, http.MethodGet, "/admin?tab=all&q=tv", nil)
	w := app.do(t, http.MethodGet, "/admin?tab=all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="tv"`, "search box re-renders the held selection")
}

func TestApproveProduct_PostRedirectGet(t *testing.T) {
	app := newConsoleApp(t)
	app.do(t, http.MethodGet, "/admin", nil)

	w := app.do(t, http.MethodPost, "/admin/products/iphone-15/approve", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	app.api.mu.Lock()
	defer app.api.mu.Unlock()
	require.Len(t, app.api.approved, 1)
	assert.Equal(t, "/api/products/iphone-15/approve/", app.api.approved[0])
}

func TestRejectProduct_BlankReason_ShowsInlineError(t *testing.T) {
	app := newConsoleApp(t)
	app.do(t, http.MethodGet, "/admin", nil)

	app.do(t, http.MethodPost, "/admin/products/iphone-15/reject/open", url.Values{})
	w := app.do(t, http.MethodPost, "/admin/products/iphone-15/reject", url.Values{"reason": {"   "}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	app.api.mu.Lock()
	assert.Empty(t, app.api.rejected, "blank reason never reaches the backend")
	app.api.mu.Unlock()

	page := app.do(t, http.MethodGet, "/admin", nil)
	assert.Contains(t, page.Body.String(), "Le motif de rejet est obligatoire.")
}

func TestRejectProduct_ReasonForwarded(t *testing.T) {
	app := newConsoleApp(t)
	app.do(t, http.MethodGet, "/admin", nil)

	w := app.do(t, http.MethodPost, "/admin/products/iphone-15/reject", url.Values{"reason": {"photo floue"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	app.api.mu.Lock()
	defer app.api.mu.Unlock()
	assert.Equal(t, "photo floue", app.api.rejected["/api/products/iphone-15/reject/"])
}

func TestLiveSearch_AcceptedWithoutRender(t *testing.T) {
	app := newConsoleApp(t)
	app.do(t, http.MethodGet, "/admin?tab=all", nil)

	w := app.do(t, http.MethodPost, "/admin/search", url.Values{"q": {"iph"}})
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestShow_WithoutSessionRedirectsToLogin(t *testing.T) {
	app := newConsoleApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
