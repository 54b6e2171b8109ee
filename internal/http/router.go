package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/config"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/handlers"
	"wolfly.in/app/internal/http/handlers/admin"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/modules/session"
	"wolfly.in/app/internal/pincode"
	"wolfly.in/app/pkg/view"
)

// Deps carries everything the router wires together. Built once in main.
type Deps struct {
	Cfg      *config.Config
	Log      *slog.Logger
	API      *backend.Client
	Pincodes *pincode.Client
	Sessions *session.Store
	Orders   *orders.Store
}

// NewRouter assembles the gin engine: middleware chain, templates, routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	codec := flash.NewCodec([]byte(d.Cfg.FlashSecret), "flash", d.Cfg.SecureCookies)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.FlashMiddleware(codec))
	r.Use(middleware.SessionMiddleware(middleware.SessionCfg{
		Store:      d.Sessions,
		CookieName: d.Cfg.SessionCookie,
		Secure:     d.Cfg.SecureCookies,
	}))
	r.Use(middleware.ErrorHandler(d.Log))

	r.SetFuncMap(template.FuncMap{
		"money": view.Money,
		"date":  view.Date,
	})
	r.LoadHTMLGlob(d.Cfg.TemplatesGlob)

	productsH := handlers.NewProductsHandler(d.API)
	cartH := handlers.NewCartHandler(d.API, codec)
	addressH := handlers.NewAddressHandler(d.API, d.Pincodes, codec)
	authH := handlers.NewAuthHandler(d.API, d.Sessions, d.Orders, codec, d.Cfg.SessionCookie, d.Cfg.SecureCookies)
	ordersH := handlers.NewOrdersHandler(d.Orders, d.Sessions, codec, d.Cfg.RequestTimeout)

	adminOrdersH := admin.NewOrdersHandler(d.API)
	adminProductsH := admin.NewProductsHandler(d.API, codec)
	adminDashH := admin.NewDashboardHandler(d.API)

	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/products")
	})
	r.GET("/products", productsH.List)
	r.GET("/products/:slug", productsH.Show)

	r.GET("/login", authH.LoginForm)
	r.POST("/login", authH.Login)
	r.POST("/logout", authH.Logout)

	r.GET("/api/pincode/:code", addressH.LookupPincode)
	r.GET("/api/cart/badge", cartH.Badge)

	auth := r.Group("/", middleware.RequireAuth(codec))
	{
		auth.GET("/cart", cartH.Show)
		auth.POST("/cart/add", cartH.Add)
		auth.POST("/cart/update", cartH.Update)
		auth.POST("/cart/remove", cartH.Remove)
		auth.POST("/cart/checkout", cartH.Checkout)

		auth.GET("/account/addresses", addressH.List)
		auth.POST("/account/addresses", addressH.Create)

		auth.GET("/account/orders", ordersH.List)
		auth.POST("/account/orders/refresh", ordersH.Refresh)
		auth.GET("/account/orders/:id/cancel", ordersH.ConfirmCancel)
		auth.POST("/account/orders/:id/cancel", ordersH.Cancel)
		auth.GET("/account/orders/:id/invoice", ordersH.Invoice)
	}

	adm := r.Group("/admin", middleware.RequireAuth(codec), middleware.RequireAdmin(codec))
	{
		adm.GET("", adminDashH.Show)
		adm.GET("/orders", adminOrdersH.List)
		adm.GET("/products", adminProductsH.List)
		adm.POST("/products", adminProductsH.Create)
		adm.POST("/products/:id/update", adminProductsH.Update)
		adm.POST("/products/:id/delete", adminProductsH.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		render.Page(c, http.StatusNotFound, "not_found.tmpl", gin.H{
			"Title": "Page not found",
		})
	})

	return r
}
