package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/shared/apperr"
)

// Wire shape of an order. The backend has shipped two generations of this
// payload: the current one carries total_amount and an items array; the
// legacy one is a single-product order with final_price and quantity at the
// top level. Both are accepted; see DESIGN.md for the canonical choice.
// flexID accepts both numeric and opaque string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return fmt.Errorf("order id: unsupported JSON value %s", string(b))
}

type wireOrder struct {
	ID          flexID     `json:"id"`
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"created_at"`
	TotalAmount float64    `json:"total_amount"`
	Items       []wireItem `json:"items"`

	// legacy fields
	FinalPrice float64     `json:"final_price"`
	Quantity   int         `json:"quantity"`
	Products   wireProduct `json:"products"`
}

type wireItem struct {
	Product  wireProduct `json:"product"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}

type wireProduct struct {
	Title string `json:"title"`
}

// ListOrders fetches the caller's orders. The backend's "no orders" 404 maps
// to orders.ErrNoOrders so the view model can treat it as an empty state.
func (c *Client) ListOrders(ctx context.Context, token string) ([]orders.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/showorder/", token, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, orders.ErrNoOrders
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}
	defer resp.Body.Close()

	var wire []wireOrder
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, apperr.Wrap(fmt.Errorf("decode order list: %w", err))
	}

	out := make([]orders.Order, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toOrder())
	}
	return out, nil
}

func (w wireOrder) toOrder() orders.Order {
	o := orders.Order{
		ID:          string(w.ID),
		Number:      w.OrderNumber,
		Status:      orders.ParseStatus(w.Status),
		CreatedAt:   parseTime(w.CreatedAt),
		TotalAmount: w.TotalAmount,
	}

	for _, it := range w.Items {
		o.Items = append(o.Items, orders.Item{
			ProductTitle: it.Product.Title,
			Quantity:     it.Quantity,
			UnitPrice:    it.Price,
		})
	}

	// Legacy single-product payload: final_price is the unit price.
	if len(o.Items) == 0 && (w.Quantity > 0 || w.FinalPrice > 0) {
		o.Items = append(o.Items, orders.Item{
			ProductTitle: w.Products.Title,
			Quantity:     w.Quantity,
			UnitPrice:    w.FinalPrice,
		})
	}
	return o
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CancelOrder requests the cancel transition for one order.
func (c *Client) CancelOrder(ctx context.Context, token, orderID string) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/api/orders/"+orderID+"/cancel/", token, nil)
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

// FetchInvoice downloads the invoice document for an order. Only a PDF body
// is accepted; a success status with any other content type is rejected, so
// an HTML error page can never be offered as a download.
func (c *Client) FetchInvoice(ctx context.Context, token, orderID string) (orders.Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/invoice/"+orderID+"/", token, nil)
	if err != nil {
		return orders.Document{}, err
	}
	req.Header.Set("Accept", "application/pdf, application/json")

	resp, err := c.do(req)
	if err != nil {
		return orders.Document{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return orders.Document{}, c.apiError(resp)
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/pdf" {
		return orders.Document{}, apperr.UnsupportedFormatErr("The invoice is not available right now.")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return orders.Document{}, apperr.Wrap(fmt.Errorf("read invoice body: %w", err))
	}

	return orders.Document{
		Filename:    "invoice-" + orderID + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
