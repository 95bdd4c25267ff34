package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/session"
)

func requireAuthRouter(t *testing.T) (*gin.Engine, *session.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	secret := []byte("test-secret")
	flashCodec := flash.NewCodec(secret, "primini_flash", false)
	sessionCodec := session.NewCodec(secret, "primini_session", false, time.Hour)

	r := gin.New()
	r.Use(SessionMiddleware(sessionCodec))
	r.POST("/compte", RequireAuth(flashCodec), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, sessionCodec
}

func TestRequireAuth_RedirectsAnonymousWithReturnTo(t *testing.T) {
	r, _ := requireAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/compte?x=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?return_to=%2Fcompte%3Fx%3D1", w.Header().Get("Location"))

	// The flash cookie carries the sign-in prompt across the redirect.
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "primini_flash" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "a flash cookie is set")
}

func TestRequireAuth_JSONGets401(t *testing.T) {
	r, _ := requireAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/compte", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestRequireAuth_PassesSignedInUser(t *testing.T) {
	r, codec := requireAuthRouter(t)

	s := session.New("tok", "user@primini.ma", "Utilisateur", false, time.Hour)
	v, err := codec.Encode(s)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/compte", nil)
	req.AddCookie(&http.Cookie{Name: "primini_session", Value: v})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
