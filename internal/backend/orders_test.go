package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/shared/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil)
}

func TestListOrdersSendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/showorder/", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := c.ListOrders(context.Background(), "tok-123")
	require.NoError(t, err)
}

func TestListOrdersDecodesCurrentPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": 42,
			"order_number": "WF-0042",
			"status": "Shipped",
			"created_at": "2024-03-01T10:00:00Z",
			"total_amount": 1499.5,
			"items": [
				{"product": {"title": "Classic Tee"}, "quantity": 2, "price": 749.75}
			]
		}]`))
	})

	got, err := c.ListOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 1)

	o := got[0]
	assert.Equal(t, "42", o.ID)
	assert.Equal(t, "WF-0042", o.Number)
	assert.Equal(t, orders.StatusShipped, o.Status)
	assert.Equal(t, 1499.5, o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Classic Tee", o.Items[0].ProductTitle)
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestListOrdersDecodesLegacyPayload(t *testing.T) {
	// older responses: opaque string id, single product at the top level,
	// final_price is the unit price
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "ord_ab12",
			"status": "pending",
			"created_at": "2024-03-01",
			"final_price": 300,
			"quantity": 3,
			"products": {"title": "Socks"}
		}]`))
	})

	got, err := c.ListOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 1)

	o := got[0]
	assert.Equal(t, "ord_ab12", o.ID)
	assert.Equal(t, "ord_ab12", o.DisplayNumber())
	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, 300.0, o.Items[0].UnitPrice)
	assert.Equal(t, 900.0, o.Amount())
}

func TestListOrdersEmpty404(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no orders found"}`))
	})

	_, err := c.ListOrders(context.Background(), "tok")
	require.ErrorIs(t, err, orders.ErrNoOrders)
}

func TestListOrdersUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "authentication required"}`))
	})

	_, err := c.ListOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	assert.Equal(t, "authentication required", apperr.PublicMessage(err))
}

func TestCancelOrderUsesPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/42/cancel/", r.URL.Path)
		w.Write([]byte(`{"status": "cancelled"}`))
	})

	require.NoError(t, c.CancelOrder(context.Background(), "tok", "42"))
}

func TestCancelOrderConflictBodyMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "order already shipped"}`))
	})

	err := c.CancelOrder(context.Background(), "tok", "42")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "order already shipped", apperr.PublicMessage(err))
}

func TestFetchInvoicePDF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/invoice/42/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})

	doc, err := c.FetchInvoice(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.Equal(t, "invoice-42.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 fake"), doc.Data)
}

func TestFetchInvoiceRejectsNonPDF(t *testing.T) {
	// a misconfigured backend answering 200 with an HTML error page must not
	// become a download
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>oops</html>"))
	})

	_, err := c.FetchInvoice(context.Background(), "tok", "42")
	require.Error(t, err)
	assert.Equal(t, apperr.UnsupportedFormat, apperr.KindOf(err))
}

func TestFetchInvoiceErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "invoice not found"}`))
	})

	_, err := c.FetchInvoice(context.Background(), "tok", "42")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTimeoutClassifiedAsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 20*time.Millisecond, nil)
	_, err := c.ListOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, apperr.Timeout, apperr.KindOf(err))
}

func TestConnectionRefusedClassifiedAsNetwork(t *testing.T) {
	// reserve a port, then close it so nothing listens
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	_, err := c.ListOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}

func TestServerErrorFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Equal(t, "The server reported an error.", apperr.PublicMessage(err))
}
