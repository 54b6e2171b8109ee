package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/pkg/view"
)

type DashboardHandler struct {
	api *backend.Client
}

func NewDashboardHandler(api *backend.Client) *DashboardHandler {
	return &DashboardHandler{api: api}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	prods, err := h.api.ListProducts(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	active := 0
	for _, p := range prods {
		if p.Stock > 0 {
			active++
		}
	}

	list, err := h.api.ListOrders(c.Request.Context(), u.Token)
	if err != nil && !errors.Is(err, orders.ErrNoOrders) {
		middleware.Fail(c, err)
		return
	}

	render.Page(c, http.StatusOK, "admin_dashboard.tmpl", gin.H{
		"Title": "Admin · Dashboard",
		"Page": view.AdminDashboard{
			TotalProducts:  len(prods),
			TotalOrders:    len(list),
			ActiveProducts: active,
		},
	})
}
