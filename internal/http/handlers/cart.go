package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// CartHandler proxies the backend-owned cart: the frontend holds no cart
// state of its own.
type CartHandler struct {
	api   *backend.Client
	codec *flash.Codec
}

func NewCartHandler(api *backend.Client, codec *flash.Codec) *CartHandler {
	return &CartHandler{api: api, codec: codec}
}

func (h *CartHandler) Show(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	items, err := h.api.CartItems(c.Request.Context(), u.Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	addrs, err := h.api.ListAddresses(c.Request.Context(), u.Token)
	if err != nil {
		// The cart is still usable without saved addresses.
		addrs = nil
	}

	page := view.CartPage{Items: make([]view.CartItem, 0, len(items))}
	var total float64
	for _, it := range items {
		line := it.Product.DiscountPrice * float64(it.Quantity)
		total += line
		page.Items = append(page.Items, view.CartItem{
			ID:        it.ID,
			Slug:      it.Product.Slug,
			Title:     it.Product.Title,
			ImageURL:  it.Product.FrontImage,
			Qty:       it.Quantity,
			UnitPrice: view.Money(it.Product.DiscountPrice),
			LineTotal: view.Money(line),
		})
	}
	page.Total = view.Money(total)
	for _, a := range addrs {
		page.Addresses = append(page.Addresses, addressItem(a))
	}

	render.Page(c, http.StatusOK, "cart.tmpl", gin.H{
		"Title": "Your Cart",
		"Page":  page,
	})
}

// Badge returns the cart item count for the header badge.
func (h *CartHandler) Badge(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	items, err := h.api.CartItems(c.Request.Context(), u.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items)})
}

type addToCartForm struct {
	Product  string `form:"product" binding:"required"`
	Quantity int    `form:"quantity"`
}

func (h *CartHandler) Add(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in addToCartForm
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.codec, "/products", view.FlashError, "Could not add that product.")
		return
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	if err := h.api.AddToCart(c.Request.Context(), u.Token, in.Product, in.Quantity); err != nil {
		render.RedirectWithFlash(c, h.codec, "/products", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/cart", view.FlashSuccess, "Product added to cart.")
}

func (h *CartHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := strconv.ParseInt(c.PostForm("item_id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart item.", nil))
		return
	}
	qty, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || qty < 1 {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, "Quantity must be at least 1.")
		return
	}

	if err := h.api.UpdateCartItem(c.Request.Context(), u.Token, id, qty); err != nil {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, apperr.PublicMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) Remove(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := strconv.ParseInt(c.PostForm("item_id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart item.", nil))
		return
	}

	if err := h.api.RemoveCartItem(c.Request.Context(), u.Token, id); err != nil {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, apperr.PublicMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/cart")
}

type checkoutForm struct {
	AddressID int64 `form:"address_id" binding:"required"`
}

// Checkout places an order for everything in the cart against the selected
// shipping address.
func (h *CartHandler) Checkout(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in checkoutForm
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, "Choose a shipping address first.")
		return
	}

	items, err := h.api.CartItems(c.Request.Context(), u.Token)
	if err != nil {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, apperr.PublicMessage(err))
		return
	}
	if len(items) == 0 {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashWarning, "Your cart is empty.")
		return
	}

	lines := make([]backend.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, backend.OrderLine{Slug: it.Product.Slug, Quantity: it.Quantity})
	}

	if err := h.api.CreateOrder(c.Request.Context(), u.Token, in.AddressID, lines); err != nil {
		render.RedirectWithFlash(c, h.codec, "/cart", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/account/orders", view.FlashSuccess, "Order placed. Thank you!")
}
