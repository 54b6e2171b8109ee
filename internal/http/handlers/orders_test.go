package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/modules/session"
)

// testApp wires the order routes against a fake backend server, with a real
// session store and cookie, the way the router does.
type testApp struct {
	engine   *gin.Engine
	sessions *session.Store
	sessID   string
}

func newTestApp(t *testing.T, backendHandler http.Handler) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)

	api := backend.New(srv.URL, 2*time.Second, nil)
	sessions := session.NewStore(time.Hour)
	vms := orders.NewStore(api, nil)
	codec := flash.NewCodec([]byte("test"), "flash", false)

	sess := sessions.Create("tok-test")

	r := gin.New()
	r.Use(middleware.SessionMiddleware(middleware.SessionCfg{
		Store:      sessions,
		CookieName: "sid",
	}))
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	h := NewOrdersHandler(vms, sessions, codec, 2*time.Second)
	r.GET("/account/orders", h.List)
	r.POST("/account/orders/refresh", h.Refresh)
	r.POST("/account/orders/:id/cancel", h.Cancel)
	r.GET("/account/orders/:id/invoice", h.Invoice)

	return &testApp{engine: r, sessions: sessions, sessID: sess.ID}
}

func (a *testApp) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: a.sessID})
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

const orderListJSON = `[{
	"id": 1,
	"order_number": "WF-0001",
	"status": "pending",
	"created_at": "2024-03-01T10:00:00Z",
	"total_amount": 500,
	"items": [{"product": {"title": "Classic Tee"}, "quantity": 1, "price": 500}]
}]`

func TestOrdersListJSON(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(orderListJSON))
	}))

	w := app.do(http.MethodGet, "/account/orders")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []orders.Order `json:"orders"`
		Error  string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "1", body.Orders[0].ID)
	assert.Empty(t, body.Error)
}

func TestOrdersListEmptyIsNotAnError(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no orders found"}`))
	}))

	w := app.do(http.MethodGet, "/account/orders")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []orders.Order `json:"orders"`
		Error  string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Orders)
	assert.Empty(t, body.Error)
}

func TestCancelConflictSurfacesMappedMessage(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error": "status changed"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(orderListJSON))
	}))

	// warm the list so the order is known
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/account/orders").Code)

	w := app.do(http.MethodPost, "/account/orders/1/cancel")
	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "The order status has changed and conflicts with cancellation.", body.Error)
}

func TestCancelSuccessRefreshes(t *testing.T) {
	cancelled := false
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			cancelled = true
			w.Write([]byte(`{"status": "cancelled"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if cancelled {
			w.Write([]byte(`[{"id": 1, "status": "cancelled", "created_at": "2024-03-01T10:00:00Z", "total_amount": 500}]`))
			return
		}
		w.Write([]byte(orderListJSON))
	}))

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/account/orders").Code)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/account/orders/1/cancel").Code)

	w := app.do(http.MethodGet, "/account/orders")
	var body struct {
		Orders []orders.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, orders.StatusCancelled, body.Orders[0].Status)
}

func TestInvoiceDownload(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))

	w := app.do(http.MethodGet, "/account/orders/1/invoice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `invoice-1.pdf`)
}

func TestInvoiceNonPDFIsRejected(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>error</html>"))
	}))

	w := app.do(http.MethodGet, "/account/orders/1/invoice")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestOrdersRequireSession(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/account/orders", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
