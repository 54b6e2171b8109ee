package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(NotFoundErr("x")))
	assert.Equal(t, Timeout, KindOf(TimeoutErr("x", nil)))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Conflict, KindOf(fmt.Errorf("wrapped: %w", ConflictErr("x"))))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidErr("x", nil)))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(UnauthorizedErr("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ForbiddenErr("x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundErr("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ConflictErr("x")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(NetworkErr("x", nil)))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(TimeoutErr("x", nil)))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(UnsupportedFormatErr("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Order not found.", PublicMessage(NotFoundErr("Order not found.")))
	assert.Equal(t, "Something went wrong. Please try again.", PublicMessage(errors.New("internal details")))
	assert.Equal(t, "Something went wrong. Please try again.", PublicMessage(&AppError{Kind: Internal}))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := NetworkErr("down", inner)
	assert.ErrorIs(t, err, inner)
}
