package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// ProductsHandler serves the public catalog pages.
type ProductsHandler struct {
	api *backend.Client
}

func NewProductsHandler(api *backend.Client) *ProductsHandler {
	return &ProductsHandler{api: api}
}

// List renders the catalog, optionally narrowed by a title/brand search.
func (h *ProductsHandler) List(c *gin.Context) {
	prods, err := h.api.ListProducts(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	cards := make([]view.ProductCard, 0, len(prods))
	for _, p := range prods {
		if q != "" && !productMatches(p, q) {
			continue
		}
		cards = append(cards, productCard(p))
	}

	render.Page(c, http.StatusOK, "products.tmpl", gin.H{
		"Title": "Products",
		"Page":  view.ProductsPage{Products: cards, Search: q},
	})
}

// Show renders the product detail page.
func (h *ProductsHandler) Show(c *gin.Context) {
	slug := c.Param("slug")

	p, err := h.api.GetProduct(c.Request.Context(), slug)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, err)
		return
	}

	render.Page(c, http.StatusOK, "product_detail.tmpl", gin.H{
		"Title": p.Title,
		"Page": view.ProductDetailPage{
			Product:     productCard(p),
			Description: p.Description,
			InStock:     p.Stock > 0,
		},
	})
}

func productMatches(p backend.Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Brand.Name), q)
}

func productCard(p backend.Product) view.ProductCard {
	return view.ProductCard{
		Slug:          p.Slug,
		Title:         p.Title,
		Category:      p.Category.Name,
		Brand:         p.Brand.Name,
		Price:         view.Money(p.DiscountPrice),
		CompareAt:     view.Money(p.ActualPrice),
		Stock:         p.Stock,
		FrontImageURL: p.FrontImage,
		BackImageURL:  p.BackImage,
	}
}
