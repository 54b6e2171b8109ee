package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/pkg/view"
)

// OrdersHandler is the back-office order list. It reads through the same
// list endpoint as the account page; with an admin token the backend returns
// every customer's orders.
type OrdersHandler struct {
	api *backend.Client
}

func NewOrdersHandler(api *backend.Client) *OrdersHandler {
	return &OrdersHandler{api: api}
}

func (h *OrdersHandler) List(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	list, err := h.api.ListOrders(c.Request.Context(), u.Token)
	if err != nil && !errors.Is(err, orders.ErrNoOrders) {
		middleware.Fail(c, err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	status := c.DefaultQuery("status", "all")

	filtered := orders.ApplyFilters(list, orders.Filters{
		Status: status,
		Search: q,
		Sort:   orders.SortNewest,
	})

	items := make([]view.AdminOrderListItem, 0, len(filtered))
	for _, o := range filtered {
		items = append(items, view.AdminOrderListItem{
			ID:        o.ID,
			Status:    string(o.Status),
			Total:     view.Money(o.Amount()),
			CreatedAt: view.Date(o.CreatedAt),
			ItemCount: len(o.Items),
		})
	}

	render.Page(c, http.StatusOK, "admin_orders.tmpl", gin.H{
		"Title": "Admin · Orders",
		"Page":  view.AdminOrdersPage{Items: items, Q: q, Status: status},
	})
}
