package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/pkg/view"
)

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}
