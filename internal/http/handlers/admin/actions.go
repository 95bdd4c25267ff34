package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/console"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/session"
	"primini.ma/app/internal/modules/moderation"
	"primini.ma/app/internal/shared/apperr"
)

// Moderation actions are plain form posts that mutate the session's console
// and bounce back to /admin (post/redirect/get). Validation failures and
// upstream errors surface through the console's row and banner state on the
// next render, not through flash messages.

func (h *ConsoleHandler) ApproveProduct(c *gin.Context) {
	h.approve(c, moderation.ProductTarget(c.Param("slug")))
}

func (h *ConsoleHandler) RejectProduct(c *gin.Context) {
	h.reject(c, moderation.ProductTarget(c.Param("slug")))
}

func (h *ConsoleHandler) OpenRejectProduct(c *gin.Context) {
	h.rowEvent(c, moderation.ProductTarget(c.Param("slug")), rowOpen)
}

func (h *ConsoleHandler) CancelRejectProduct(c *gin.Context) {
	h.rowEvent(c, moderation.ProductTarget(c.Param("slug")), rowCancel)
}

func (h *ConsoleHandler) ApproveOffer(c *gin.Context) {
	t, ok := offerTarget(c)
	if !ok {
		return
	}
	h.approve(c, t)
}

func (h *ConsoleHandler) RejectOffer(c *gin.Context) {
	t, ok := offerTarget(c)
	if !ok {
		return
	}
	h.reject(c, t)
}

func (h *ConsoleHandler) OpenRejectOffer(c *gin.Context) {
	t, ok := offerTarget(c)
	if !ok {
		return
	}
	h.rowEvent(c, t, rowOpen)
}

func (h *ConsoleHandler) CancelRejectOffer(c *gin.Context) {
	t, ok := offerTarget(c)
	if !ok {
		return
	}
	h.rowEvent(c, t, rowCancel)
}

func (h *ConsoleHandler) approve(c *gin.Context, t moderation.Target) {
	s, con, ok := h.console(c)
	if !ok {
		return
	}
	if err := con.Approve(c.Request.Context(), t); err != nil && apperr.IsAuth(err) {
		h.expireSession(c, s)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *ConsoleHandler) reject(c *gin.Context, t moderation.Target) {
	s, con, ok := h.console(c)
	if !ok {
		return
	}
	reason := c.PostForm("reason")
	if err := con.Reject(c.Request.Context(), t, reason); err != nil && apperr.IsAuth(err) {
		h.expireSession(c, s)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

type rowEventKind int

const (
	rowOpen rowEventKind = iota
	rowCancel
)

func (h *ConsoleHandler) rowEvent(c *gin.Context, t moderation.Target, kind rowEventKind) {
	_, con, ok := h.console(c)
	if !ok {
		return
	}
	switch kind {
	case rowOpen:
		con.OpenReject(t.Key())
		// A draft may ride along when the form re-opens after an edit.
		if draft, has := c.GetPostForm("reason"); has {
			con.SetRejectDraft(t.Key(), draft)
		}
	case rowCancel:
		con.CancelReject(t.Key())
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *ConsoleHandler) console(c *gin.Context) (*session.Session, *console.Console, bool) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return nil, nil, false
	}
	return s, h.Registry.Get(s), true
}

func offerTarget(c *gin.Context) (moderation.Target, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Redirect(http.StatusSeeOther, "/admin")
		return moderation.Target{}, false
	}
	return moderation.OfferTarget(id), true
}
