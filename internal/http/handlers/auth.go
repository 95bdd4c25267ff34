package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/http/flash"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/render"
	"primini.ma/app/internal/http/session"
	"primini.ma/app/internal/http/validation"
	"primini.ma/app/internal/shared/apperr"
	"primini.ma/app/pkg/view"
)

const sessionTTL = 14 * 24 * time.Hour

type AuthHandler struct {
	Client *backend.Client
	Flash  *flash.Codec
	Codec  *session.Codec

	// OnLogout lets other components drop per-session state (the admin
	// console registry) when the session ends.
	OnLogout func(sessionID string)
}

func NewAuthHandler(client *backend.Client, f *flash.Codec, codec *session.Codec) *AuthHandler {
	return &AuthHandler{Client: client, Flash: f, Codec: codec}
}

type loginPageData struct {
	ReturnTo  string
	Form      view.LoginForm
	Errors    validation.FieldErrors
	FailedMsg string
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) LoginGet(c *gin.Context) {
	render.HTML(c, http.StatusOK, "login.tmpl", "Connexion", loginPageData{
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	})
}

func (h *AuthHandler) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		render.HTML(c, http.StatusBadRequest, "login.tmpl", "Connexion", loginPageData{
			ReturnTo: returnTo,
			Form:     view.LoginForm{Email: in.Email},
			Errors:   errs,
		})
		return
	}

	ctx := c.Request.Context()
	token, err := h.Client.Login(ctx, in.Email, in.Password)
	if err != nil {
		if apperr.IsKind(err, apperr.Network) {
			middleware.Fail(c, err)
			return
		}
		// Bad credentials: page-level message, not a field error.
		render.HTML(c, http.StatusUnauthorized, "login.tmpl", "Connexion", loginPageData{
			ReturnTo:  returnTo,
			Form:      view.LoginForm{Email: in.Email},
			FailedMsg: "E-mail ou mot de passe incorrect.",
		})
		return
	}

	// The profile decides staff access; without it the token is useless.
	u, err := h.Client.CurrentUser(ctx, token)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	s := session.New(token, u.Email, u.DisplayName(), u.IsStaff, sessionTTL)
	if err := middleware.SetSessionCookie(c, h.Codec, s); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	dest := "/"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Connexion réussie.")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if s, ok := middleware.CurrentSession(c); ok {
		// Best effort; the cookie goes away regardless.
		_ = h.Client.Logout(c.Request.Context(), s.Token)
		if h.OnLogout != nil {
			h.OnLogout(s.ID)
		}
	}
	middleware.ClearSessionCookie(c, h.Codec)
	render.RedirectWithFlash(c, h.Flash, "/", view.FlashInfo, "Vous êtes déconnecté.")
}

type registerPageData struct {
	Form   view.RegisterForm
	Errors validation.FieldErrors
}

type registerInput struct {
	Email     string `form:"email" binding:"required,email"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required"`
}

func (h *AuthHandler) RegisterGet(c *gin.Context) {
	render.HTML(c, http.StatusOK, "register.tmpl", "Inscription", registerPageData{})
}

func (h *AuthHandler) RegisterPost(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBind(&in); err != nil {
		render.HTML(c, http.StatusBadRequest, "register.tmpl", "Inscription", registerPageData{
			Form:   view.RegisterForm{Email: in.Email},
			Errors: validation.FromBindError(err, &in),
		})
		return
	}
	if in.Password1 != in.Password2 {
		render.HTML(c, http.StatusBadRequest, "register.tmpl", "Inscription", registerPageData{
			Form:   view.RegisterForm{Email: in.Email},
			Errors: validation.FieldErrors{"password2": "Les mots de passe ne correspondent pas."},
		})
		return
	}

	if err := h.Client.Register(c.Request.Context(), in.Email, in.Password1, in.Password2); err != nil {
		if apperr.IsKind(err, apperr.Network) {
			middleware.Fail(c, err)
			return
		}
		render.HTML(c, http.StatusBadRequest, "register.tmpl", "Inscription", registerPageData{
			Form:   view.RegisterForm{Email: in.Email},
			Errors: validation.FieldErrors{"_": apperr.PublicMessage(err)},
		})
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashSuccess, "Compte créé. Connectez-vous.")
}

// normalizeReturnTo only allows same-site relative paths.
func normalizeReturnTo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if _, err := url.Parse(raw); err != nil {
		return ""
	}
	return raw
}
