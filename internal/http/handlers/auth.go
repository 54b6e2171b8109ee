package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/http/validation"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/modules/session"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// AuthHandler exchanges credentials with the backend for a bearer token and
// manages the cookie session holding it. No passwords or tokens are persisted
// here.
type AuthHandler struct {
	api      *backend.Client
	sessions *session.Store
	vms      *orders.Store
	codec    *flash.Codec

	cookieName string
	secure     bool
}

func NewAuthHandler(api *backend.Client, sessions *session.Store, vms *orders.Store, codec *flash.Codec, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		api:        api,
		sessions:   sessions,
		vms:        vms,
		codec:      codec,
		cookieName: cookieName,
		secure:     secure,
	}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render.Page(c, http.StatusOK, "login.tmpl", gin.H{
		"Title":    "Log in",
		"ReturnTo": sanitizeReturnTo(c.Query("return_to")),
	})
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	ReturnTo string `form:"return_to"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginForm
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		render.Page(c, http.StatusUnprocessableEntity, "login.tmpl", gin.H{
			"Title":    "Log in",
			"Email":    in.Email,
			"Errors":   fields,
			"ReturnTo": sanitizeReturnTo(in.ReturnTo),
		})
		return
	}

	token, err := h.api.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		msg := apperr.PublicMessage(err)
		if apperr.KindOf(err) == apperr.Unauthorized || apperr.KindOf(err) == apperr.NotFound {
			msg = "Email or password is incorrect."
		}
		render.Page(c, http.StatusUnauthorized, "login.tmpl", gin.H{
			"Title":    "Log in",
			"Email":    in.Email,
			"Errors":   map[string]string{"_": msg},
			"ReturnTo": sanitizeReturnTo(in.ReturnTo),
		})
		return
	}

	sess := h.sessions.Create(token)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sess.ID, 0, "/", "", h.secure, true)

	dest := sanitizeReturnTo(in.ReturnTo)
	if dest == "" {
		dest = "/"
	}
	render.RedirectWithFlash(c, h.codec, dest, view.FlashSuccess, "Welcome back!")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		h.sessions.Delete(sess.ID)
		h.vms.Evict(sess.ID) // drop the cached order list with the session
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	render.RedirectWithFlash(c, h.codec, "/", view.FlashInfo, "You have been logged out.")
}

// sanitizeReturnTo only allows same-site relative paths.
func sanitizeReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if _, err := url.Parse(raw); err != nil {
		return ""
	}
	return raw
}
