package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/modules/export"
	"primini.ma/app/internal/shared/apperr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export streams the pending queues as an .xlsx workbook.
func (h *ConsoleHandler) Export(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	authed := h.Client.WithToken(s.Token)
	f, err := export.PendingWorkbook(c.Request.Context(), authed)
	if err != nil {
		if apperr.IsAuth(err) {
			h.expireSession(c, s)
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="moderation-en-attente.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		// Headers are gone; just log through gin's error sink.
		_ = c.Error(err)
	}
}
