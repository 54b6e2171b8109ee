// mockbackend is a development stand-in for the store's REST backend. It
// serves the same contract the web frontend consumes, with fixture data held
// in memory, so the frontend can be exercised without the real API.
//
// Any email logs in; a password of "admin" grants the admin role.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

type product struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ActualPrice   float64 `json:"actual_price"`
	DiscountPrice float64 `json:"discount_price"`
	Stock         int     `json:"stock"`
	FrontImage    string  `json:"front_imges"`
	BackImage     string  `json:"back_imges"`
	Category      named   `json:"category"`
	Brand         named   `json:"brand"`
}

type named struct {
	Name string `json:"name"`
}

// productInput is the admin create/update payload: category and brand come
// in as plain strings.
type productInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ActualPrice   float64 `json:"actual_price"`
	DiscountPrice float64 `json:"discount_price"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
}

func (in productInput) toProduct() product {
	return product{
		Title:         in.Title,
		Description:   in.Description,
		ActualPrice:   in.ActualPrice,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		Category:      named{Name: in.Category},
		Brand:         named{Name: in.Brand},
	}
}

type orderItem struct {
	Product  named   `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	TotalAmount float64     `json:"total_amount"`
	Items       []orderItem `json:"items"`
}

type cartItem struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Product  product `json:"product"`
}

type address struct {
	ID            int64  `json:"id"`
	VillageOrTown string `json:"village_or_town"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       int64  `json:"pincode"`
	Phone         int64  `json:"phone"`
	Country       string `json:"country"`
}

type store struct {
	mu        sync.Mutex
	products  []product
	orders    map[string][]order
	carts     map[string][]cartItem
	addresses map[string][]address
	nextID    int64
}

func newStore() *store {
	s := &store{
		orders:    map[string][]order{},
		carts:     map[string][]cartItem{},
		addresses: map[string][]address{},
		nextID:    100,
	}
	s.products = []product{
		{ID: 1, Slug: "classic-tee", Title: "Classic Tee", ActualPrice: 999, DiscountPrice: 749, Stock: 42,
			Category: named{Name: "Clothing"}, Brand: named{Name: "Wolfly"}},
		{ID: 2, Slug: "denim-jacket", Title: "Denim Jacket", ActualPrice: 3499, DiscountPrice: 2999, Stock: 7,
			Category: named{Name: "Clothing"}, Brand: named{Name: "Wolfly"}},
		{ID: 3, Slug: "canvas-sneakers", Title: "Canvas Sneakers", ActualPrice: 2499, DiscountPrice: 1899, Stock: 0,
			Category: named{Name: "Footwear"}, Brand: named{Name: "Stride"}},
	}
	s.orders["demo@wolfly.in"] = []order{
		{
			ID: 11, OrderNumber: "WF-2024-0011", Status: "pending",
			CreatedAt: time.Now().Add(-48 * time.Hour).Format(time.RFC3339), TotalAmount: 749,
			Items: []orderItem{{Product: named{Name: "Classic Tee"}, Quantity: 1, Price: 749}},
		},
		{
			ID: 12, OrderNumber: "WF-2024-0012", Status: "delivered",
			CreatedAt: time.Now().Add(-240 * time.Hour).Format(time.RFC3339), TotalAmount: 2999,
			Items: []orderItem{{Product: named{Name: "Denim Jacket"}, Quantity: 1, Price: 2999}},
		},
	}
	return s
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

var jwtSecret = []byte("mockbackend-dev-secret")

func issueToken(email string, admin bool) (string, error) {
	role := "customer"
	if admin {
		role = "admin"
	}
	claims := jwt.MapClaims{
		"email":    email,
		"role":     role,
		"is_admin": admin,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// userFor pulls the email out of the bearer token. The mock trusts its own
// signature; an invalid token gets a 401 like the real backend.
func userFor(c *gin.Context) (string, bool, bool) {
	h := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(h, "Bearer ")
	if !found || raw == "" {
		return "", false, false
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return "", false, false
	}
	email, _ := claims["email"].(string)
	admin, _ := claims["is_admin"].(bool)
	return email, admin, email != ""
}

// pdfStub is a minimal but valid single-page PDF.
const pdfStub = "%PDF-1.4\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"xref\n0 4\ntrailer<</Size 4/Root 1 0 R>>\n%%EOF\n"

func main() {
	addr := flag.String("a", ":8000", "Listen address")
	flag.Parse()

	s := newStore()
	r := gin.Default()

	r.POST("/api/user/login/", func(c *gin.Context) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}
		tok, err := issueToken(in.Email, in.Password == "admin")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": gin.H{"access": tok}})
	})

	r.GET("/products/", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, s.products)
	})

	r.GET("/products/:slug/", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, p := range s.products {
			if p.Slug == c.Param("slug") {
				c.JSON(http.StatusOK, p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.POST("/products/create/", func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		var in productInput
		if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		p := in.toProduct()
		p.ID = s.id()
		p.Slug = strings.ToLower(strings.ReplaceAll(in.Title, " ", "-"))
		s.products = append(s.products, p)
		c.JSON(http.StatusCreated, p)
	})

	r.PATCH("/products/:slug/update/", func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		id, _ := strconv.ParseInt(c.Param("slug"), 10, 64)
		var in productInput
		if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.products {
			if s.products[i].ID == id {
				p := in.toProduct()
				p.ID = id
				p.Slug = s.products[i].Slug
				s.products[i] = p
				c.JSON(http.StatusOK, p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.DELETE("/products/:slug/delete/", func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		id, _ := strconv.ParseInt(c.Param("slug"), 10, 64)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.products {
			if s.products[i].ID == id {
				s.products = append(s.products[:i], s.products[i+1:]...)
				c.Status(http.StatusNoContent)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.GET("/orders/showorder/", func(c *gin.Context) {
		email, admin, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if admin {
			all := []order{}
			for _, list := range s.orders {
				all = append(all, list...)
			}
			c.JSON(http.StatusOK, all)
			return
		}
		list := s.orders[email]
		if len(list) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no orders found"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.PATCH("/api/orders/:id/cancel/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.orders[email]
		for i := range list {
			if list[i].ID != id {
				continue
			}
			switch list[i].Status {
			case "delivered", "shipped":
				c.JSON(http.StatusConflict, gin.H{"error": "order already " + list[i].Status})
			case "cancelled":
				c.JSON(http.StatusBadRequest, gin.H{"error": "order is already cancelled"})
			default:
				list[i].Status = "cancelled"
				c.JSON(http.StatusOK, list[i])
			}
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	})

	r.GET("/orders/invoice/:id/", func(c *gin.Context) {
		if _, _, ok := userFor(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Data(http.StatusOK, "application/pdf", []byte(pdfStub))
	})

	r.GET("/orders/cart/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		items := s.carts[email]
		if items == nil {
			items = []cartItem{}
		}
		c.JSON(http.StatusOK, items)
	})

	r.POST("/orders/cart/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		var in struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, p := range s.products {
			if p.Slug == in.Product {
				s.carts[email] = append(s.carts[email], cartItem{ID: s.id(), Quantity: in.Quantity, Product: p})
				c.JSON(http.StatusCreated, gin.H{"ok": true})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.PATCH("/orders/cart/:id/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.carts[email] {
			if s.carts[email][i].ID == id {
				s.carts[email][i].Quantity = in.Quantity
				c.JSON(http.StatusOK, gin.H{"ok": true})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	})

	r.DELETE("/orders/cart/:id/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		s.mu.Lock()
		defer s.mu.Unlock()
		items := s.carts[email]
		for i := range items {
			if items[i].ID == id {
				s.carts[email] = append(items[:i], items[i+1:]...)
				c.Status(http.StatusNoContent)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	})

	r.POST("/orders/createorder/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		var in struct {
			Product []struct {
				Slug     string `json:"slug"`
				Quantity int    `json:"quantity"`
			} `json:"product"`
			AddressID int64 `json:"address_id"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || len(in.Product) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one product"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		o := order{
			ID:        s.id(),
			Status:    "pending",
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		o.OrderNumber = fmt.Sprintf("WF-%d-%04d", time.Now().Year(), o.ID)
		for _, line := range in.Product {
			for _, p := range s.products {
				if p.Slug == line.Slug {
					o.Items = append(o.Items, orderItem{
						Product:  named{Name: p.Title},
						Quantity: line.Quantity,
						Price:    p.DiscountPrice,
					})
					o.TotalAmount += p.DiscountPrice * float64(line.Quantity)
				}
			}
		}
		s.orders[email] = append(s.orders[email], o)
		s.carts[email] = nil
		c.JSON(http.StatusCreated, o)
	})

	r.GET("/api/user/address/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.addresses[email]
		if list == nil {
			list = []address{}
		}
		c.JSON(http.StatusOK, list)
	})

	r.POST("/api/user/address/", func(c *gin.Context) {
		email, _, ok := userFor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		var in address
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		in.ID = s.id()
		if in.Country == "" {
			in.Country = "India"
		}
		s.addresses[email] = append(s.addresses[email], in)
		c.JSON(http.StatusCreated, in)
	})

	log.Printf("mock backend listening on %s", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}

func requireAdmin(c *gin.Context) bool {
	_, admin, ok := userFor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if !admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return false
	}
	return true
}
