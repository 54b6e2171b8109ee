package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/http/validation"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// ProductsHandler is the back-office product CRUD, proxied to the backend's
// admin endpoints.
type ProductsHandler struct {
	api   *backend.Client
	codec *flash.Codec
}

func NewProductsHandler(api *backend.Client, codec *flash.Codec) *ProductsHandler {
	return &ProductsHandler{api: api, codec: codec}
}

func (h *ProductsHandler) List(c *gin.Context) {
	prods, err := h.api.ListProducts(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	rows := make([]view.AdminProductRow, 0, len(prods))
	for _, p := range prods {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Brand.Name), q) {
			continue
		}
		rows = append(rows, view.AdminProductRow{
			ID:       p.ID,
			Slug:     p.Slug,
			Title:    p.Title,
			Brand:    p.Brand.Name,
			Price:    view.Money(p.DiscountPrice),
			Stock:    p.Stock,
			ImageURL: p.FrontImage,
		})
	}

	render.Page(c, http.StatusOK, "admin_products.tmpl", gin.H{
		"Title": "Admin · Products",
		"Page":  view.AdminProductsPage{Items: rows, Q: c.Query("q")},
	})
}

type productForm struct {
	Title         string  `form:"title" binding:"required"`
	Description   string  `form:"description"`
	ActualPrice   float64 `form:"actual_price" binding:"required,gt=0"`
	DiscountPrice float64 `form:"discount_price" binding:"required,gt=0"`
	Stock         int     `form:"stock" binding:"gte=0"`
	Category      string  `form:"category" binding:"required"`
	Brand         string  `form:"brand"`
}

func (h *ProductsHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in productForm
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Product form is invalid.", fields))
		return
	}

	if err := h.api.CreateProduct(c.Request.Context(), u.Token, productInput(in)); err != nil {
		render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashSuccess, "Product created.")
}

func (h *ProductsHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product id.", nil))
		return
	}

	var in productForm
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Product form is invalid.", fields))
		return
	}

	if err := h.api.UpdateProduct(c.Request.Context(), u.Token, id, productInput(in)); err != nil {
		render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashSuccess, "Product updated.")
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product id.", nil))
		return
	}

	if err := h.api.DeleteProduct(c.Request.Context(), u.Token, id); err != nil {
		render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/admin/products", view.FlashSuccess, "Product deleted.")
}

func productInput(in productForm) backend.ProductInput {
	return backend.ProductInput{
		Title:         in.Title,
		Description:   in.Description,
		ActualPrice:   in.ActualPrice,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		Category:      in.Category,
		Brand:         in.Brand,
	}
}
