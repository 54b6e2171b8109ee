package backend

import (
	"context"
	"net/http"
)

type Product struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ActualPrice   float64 `json:"actual_price"`
	DiscountPrice float64 `json:"discount_price"`
	Stock         int     `json:"stock"`
	FrontImage    string  `json:"front_imges"`
	BackImage     string  `json:"back_imges"`
	Category      Named   `json:"category"`
	Brand         Named   `json:"brand"`
}

type Named struct {
	Name string `json:"name"`
}

// ListProducts fetches the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.getJSON(ctx, "/products/", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (Product, error) {
	var out Product
	if err := c.getJSON(ctx, "/products/"+slug+"/", "", &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ActualPrice   float64 `json:"actual_price"`
	DiscountPrice float64 `json:"discount_price"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/products/create/", token, in)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in ProductInput) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/products/"+itoa(id)+"/update/", token, in)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+itoa(id)+"/delete/", token, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	resp.Body.Close()
	return nil
}
