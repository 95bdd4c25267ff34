package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/http/session"
)

const ctxKeySession = "session"

// SessionMiddleware decodes the signed session cookie and puts the session
// in the request context. Invalid or expired cookies are cleared so the
// browser does not keep retrying them.
func SessionMiddleware(codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := c.Cookie(codec.CookieName)
		if err != nil || v == "" {
			c.Next()
			return
		}

		s, err := codec.Decode(v)
		if err != nil {
			ClearSessionCookie(c, codec)
			c.Next()
			return
		}

		c.Set(ctxKeySession, s)
		c.Next()
	}
}

// CurrentSession retrieves the signed-in session, if any.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*session.Session); ok {
			return s, true
		}
	}
	return nil, false
}

func SetSessionCookie(c *gin.Context, codec *session.Codec, s session.Session) error {
	val, err := codec.Encode(s)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, codec.CookieMaxAge(), "/", "", codec.Secure, true)
	return nil
}

func ClearSessionCookie(c *gin.Context, codec *session.Codec) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, "", -1, "/", "", codec.Secure, true)
}
