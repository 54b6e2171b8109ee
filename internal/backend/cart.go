package backend

import (
	"context"
	"net/http"
)

type CartItem struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

func (c *Client) CartItems(ctx context.Context, token string) ([]CartItem, error) {
	var out []CartItem
	if err := c.getJSON(ctx, "/orders/cart/", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, token, productSlug string, quantity int) error {
	body := map[string]any{"product": productSlug, "quantity": quantity}
	req, err := c.newRequest(ctx, http.MethodPost, "/orders/cart/", token, body)
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

func (c *Client) UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) error {
	body := map[string]any{"quantity": quantity}
	req, err := c.newRequest(ctx, http.MethodPatch, "/orders/cart/"+itoa(itemID)+"/", token, body)
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

func (c *Client) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/orders/cart/"+itoa(itemID)+"/", token, nil)
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

// OrderLine is one product reference in a checkout request.
type OrderLine struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

// CreateOrder places an order for the given cart lines against a saved
// shipping address.
func (c *Client) CreateOrder(ctx context.Context, token string, addressID int64, lines []OrderLine) error {
	body := map[string]any{"product": lines, "address_id": addressID}
	req, err := c.newRequest(ctx, http.MethodPost, "/orders/createorder/", token, body)
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
