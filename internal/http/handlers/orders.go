package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/modules/session"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// OrdersHandler is the user-facing order tracking surface: list with
// filter/search/sort, cancellation with an explicit confirm step, and
// invoice download.
type OrdersHandler struct {
	vms      *orders.Store
	sessions *session.Store
	codec    *flash.Codec
	timeout  time.Duration
}

func NewOrdersHandler(vms *orders.Store, sessions *session.Store, codec *flash.Codec, timeout time.Duration) *OrdersHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OrdersHandler{vms: vms, sessions: sessions, codec: codec, timeout: timeout}
}

func (h *OrdersHandler) viewModel(c *gin.Context) (*orders.ViewModel, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return nil, false
	}
	return h.vms.For(sess.ID, h.sessions.TokenSource(sess.ID)), true
}

func (h *OrdersHandler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func filtersFromQuery(c *gin.Context) orders.Filters {
	return orders.Filters{
		Status: c.DefaultQuery("status", "all"),
		Search: c.Query("q"),
		Sort:   orders.ParseSortKey(c.DefaultQuery("sort", "newest")),
	}
}

// List renders the order page. The first visit loads from the backend; later
// visits reuse the session's cached list, with refresh as an explicit action.
func (h *OrdersHandler) List(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if !vm.Snapshot().Loaded {
		ctx, cancel := h.ctx(c)
		defer cancel()
		_ = vm.Load(ctx, false) // failure lands in the snapshot's ErrorMsg
	}

	f := filtersFromQuery(c)
	st := vm.Snapshot()
	filtered := vm.Filtered(f)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"orders":     filtered,
			"error":      st.ErrorMsg,
			"refreshing": st.Refreshing,
		})
		return
	}

	page := view.OrdersPage{
		Items:        make([]view.OrderListItem, 0, len(filtered)),
		Loading:      st.Loading,
		Refreshing:   st.Refreshing,
		ErrorMsg:     st.ErrorMsg,
		Empty:        st.Loaded && st.ErrorMsg == "" && len(st.Orders) == 0,
		FilterStatus: f.Status,
		Search:       f.Search,
		SortBy:       string(f.Sort),
		Statuses:     statusOptions(),
		SortOptions:  sortOptions(),
	}
	for _, o := range filtered {
		page.Items = append(page.Items, orderListItem(o, st.Cancelling))
	}

	render.Page(c, http.StatusOK, "orders.tmpl", gin.H{
		"Title": "My Orders",
		"Page":  page,
	})
}

// Refresh re-fetches the order list, keeping the current list visible.
func (h *OrdersHandler) Refresh(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := vm.Load(ctx, true); err != nil {
		if middleware.WantsJSON(c) {
			middleware.Fail(c, err)
			return
		}
		render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashError, apperr.PublicMessage(err))
		return
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"orders": vm.Snapshot().Orders})
		return
	}
	c.Redirect(http.StatusFound, "/account/orders")
}

// ConfirmCancel is the explicit confirmation step before a destructive
// cancel. The cancel itself only happens on the POST.
func (h *OrdersHandler) ConfirmCancel(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id := c.Param("id")
	o, found := vm.Order(id)
	if !found {
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}
	if !orders.CanCancel(o) {
		render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashWarning,
			"This order cannot be cancelled at this time.")
		return
	}

	render.Page(c, http.StatusOK, "order_cancel.tmpl", gin.H{
		"Title": "Cancel Order",
		"Page":  view.CancelConfirmPage{Order: orderListItem(o, nil)},
	})
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	id := c.Param("id")
	if err := vm.Cancel(ctx, id); err != nil {
		if middleware.WantsJSON(c) {
			middleware.Fail(c, err)
			return
		}
		render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashError, apperr.PublicMessage(err))
		return
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
		return
	}
	render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashSuccess, "Order cancelled successfully.")
}

// Invoice streams the order's invoice PDF as a download.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	doc, err := vm.Invoice(ctx, c.Param("id"))
	if err != nil {
		if middleware.WantsJSON(c) {
			middleware.Fail(c, err)
			return
		}
		render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashError, apperr.PublicMessage(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func orderListItem(o orders.Order, cancelling map[string]bool) view.OrderListItem {
	items := make([]view.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, view.OrderItem{
			ProductTitle: it.ProductTitle,
			Qty:          it.Quantity,
			UnitPrice:    view.Money(it.UnitPrice),
			LineTotal:    view.Money(it.LineTotal()),
		})
	}
	return view.OrderListItem{
		ID:         o.ID,
		Number:     o.DisplayNumber(),
		Status:     string(o.Status),
		CreatedAt:  view.Date(o.CreatedAt),
		Total:      view.Money(o.Amount()),
		ItemCount:  len(o.Items),
		Items:      items,
		CanCancel:  orders.CanCancel(o),
		Cancelling: cancelling[o.ID],
	}
}

func statusOptions() []string {
	return []string{"pending", "processing", "shipped", "delivered", "cancelled"}
}

func sortOptions() []view.SortOption {
	return []view.SortOption{
		{Value: "newest", Label: "Newest first"},
		{Value: "oldest", Label: "Oldest first"},
		{Value: "amount_high", Label: "Amount: high to low"},
		{Value: "amount_low", Label: "Amount: low to high"},
	}
}
