package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/pkg/view"
)

// Page renders a template with the ambient bits every page needs: the
// one-shot flash, the signed-in user (for navigation), and the request id.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = middleware.GetFlash(c)
	data["RequestID"] = middleware.GetRequestID(c)

	if u, ok := middleware.CurrentUser(c); ok {
		data["User"] = u
		data["LoggedIn"] = true
		data["IsAdmin"] = u.Admin
	} else {
		data["LoggedIn"] = false
		data["IsAdmin"] = false
	}

	c.HTML(status, name, data)
}

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}
