package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/handlers"
	adminh "primini.ma/app/internal/http/handlers/admin"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/session"
)

// NewRouter wires the gin engine: middleware chain, templates and routes.
func NewRouter(logger *slog.Logger, client *backend.Client, flashCodec *flash.Codec, sessionCodec *session.Codec, registry *adminh.Registry) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.SessionMiddleware(sessionCodec))
	r.Use(middleware.PendingBadge(client))
	r.Use(middleware.ErrorHandler(logger))

	r.SetFuncMap(template.FuncMap{
		// dict packs arguments for sub-templates (pagination controls).
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
	r.LoadHTMLGlob("templates/*.tmpl")
	r.Static("/static", "./static")

	products := handlers.NewProductsHandler(client)
	auth := handlers.NewAuthHandler(client, flashCodec, sessionCodec)
	auth.OnLogout = registry.Drop
	console := adminh.NewConsoleHandler(registry, client, flashCodec, sessionCodec)

	r.GET("/", products.List)
	r.GET("/products", func(c *gin.Context) { c.Redirect(http.StatusMovedPermanently, "/") })
	r.GET("/products/:slug", products.Show)

	r.GET("/login", auth.LoginGet)
	r.POST("/login", auth.LoginPost)
	r.GET("/register", auth.RegisterGet)
	r.POST("/register", auth.RegisterPost)
	r.POST("/logout", middleware.RequireAuth(flashCodec), auth.Logout)

	admin := r.Group("/admin", middleware.RequireAdmin(flashCodec))
	{
		admin.GET("", console.Show)
		admin.POST("/search", console.LiveSearch)
		admin.POST("/banner/dismiss", console.DismissBanner)
		admin.GET("/export", console.Export)

		admin.POST("/products/:slug/approve", console.ApproveProduct)
		admin.POST("/products/:slug/reject", console.RejectProduct)
		admin.POST("/products/:slug/reject/open", console.OpenRejectProduct)
		admin.POST("/products/:slug/reject/cancel", console.CancelRejectProduct)

		admin.POST("/offers/:id/approve", console.ApproveOffer)
		admin.POST("/offers/:id/reject", console.RejectOffer)
		admin.POST("/offers/:id/reject/open", console.OpenRejectOffer)
		admin.POST("/offers/:id/reject/cancel", console.CancelRejectOffer)
	}

	return r
}
