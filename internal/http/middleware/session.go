package middleware

import (
	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/modules/session"
)

// SessionCfg holds configuration for session middleware.
type SessionCfg struct {
	Store      *session.Store
	CookieName string
	Secure     bool
}

const ctxKeySession = "session"

// SessionMiddleware resolves the session cookie against the in-memory token
// store. An unknown or expired session just clears the cookie; pages that
// need auth redirect via RequireAuth.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess := cfg.Store.Get(sessionID)
		if sess == nil {
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		c.Set(ctxKeySession, sess)
		c.Next()
	}
}

// ContextUser is the authenticated user as far as this frontend knows: a
// session ID, the bearer token, and whatever claims could be sniffed from it.
type ContextUser struct {
	SessionID string
	Token     string
	Email     string
	Admin     bool
}

// CurrentUser retrieves the authenticated user from the gin context.
// Returns the user and true if authenticated, or zero value and false.
func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return ContextUser{}, false
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		return ContextUser{}, false
	}
	return ContextUser{
		SessionID: sess.ID,
		Token:     sess.Token,
		Email:     sess.Claims.Email,
		Admin:     sess.Claims.Admin(),
	}, true
}

// CurrentSession returns the raw session when one is attached.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
