package pincode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfly.in/app/internal/shared/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestLookupSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pincode/522001", r.URL.Path)
		w.Write([]byte(`[{"Status": "Success", "PostOffice": [{"District": "Guntur", "State": "Andhra Pradesh"}]}]`))
	})

	loc, err := c.Lookup(context.Background(), "522001")
	require.NoError(t, err)
	assert.Equal(t, "Guntur", loc.District)
	assert.Equal(t, "Andhra Pradesh", loc.State)
	assert.Equal(t, "India", loc.Country)
}

func TestLookupUnknownCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"Status": "Error", "PostOffice": null}]`))
	})

	_, err := c.Lookup(context.Background(), "999999")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "Invalid pincode.", apperr.PublicMessage(err))
}

func TestLookupRejectsMalformedCode(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected for a malformed code")
	})

	for _, code := range []string{"", "12345", "1234567", "012345", "52a001"} {
		_, err := c.Lookup(context.Background(), code)
		require.Error(t, err, code)
		assert.Equal(t, apperr.Invalid, apperr.KindOf(err), code)
	}
}

func TestLookupUpstreamDown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Lookup(context.Background(), "522001")
	require.Error(t, err)
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}
