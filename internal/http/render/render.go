package render

import (
	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/pkg/view"
)

// Page is the envelope every template receives: chrome (header state,
// flash) plus the page-specific view model in Data.
type Page struct {
	Title        string
	Flash        *view.Flash
	RequestID    string
	UserName     string
	IsStaff      bool
	SignedIn     bool
	PendingBadge int
	Data         any
}

// HTML renders a named template with the shared chrome filled in from the
// request context.
func HTML(c *gin.Context, status int, name, title string, data any) {
	p := Page{
		Title:        title,
		Flash:        middleware.GetFlash(c),
		RequestID:    middleware.GetRequestID(c),
		PendingBadge: middleware.GetPendingBadge(c),
		Data:         data,
	}
	if s, ok := middleware.CurrentSession(c); ok {
		p.SignedIn = true
		p.UserName = s.Name
		p.IsStaff = s.IsStaff
	}
	c.HTML(status, name, p)
}
