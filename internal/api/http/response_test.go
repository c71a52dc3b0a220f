package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/stretchr/testify/assert"
)

func errStatus(t *testing.T, err error) int {
	t.Helper()
	resp, ok := errDomain(err).(*ErrResponse)
	if !ok {
		t.Fatalf("unexpected renderer type %T", errDomain(err))
	}
	return resp.HTTPStatusCode
}

func TestErrDomain(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errStatus(t, gerr.ErrOrderNotFound))
	assert.Equal(t, http.StatusNotFound, errStatus(t, gerr.ErrProductNotFound))
	assert.Equal(t, http.StatusConflict, errStatus(t, gerr.ErrInsufficientStock))
	assert.Equal(t, http.StatusConflict, errStatus(t, gerr.ErrBadStatusChange))
	assert.Equal(t, http.StatusBadRequest, errStatus(t, gerr.ErrOTPMismatch))
	assert.Equal(t, http.StatusInternalServerError, errStatus(t, fmt.Errorf("db broke")))

	t.Run("Wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("PENDING -> DELIVERED: %w", gerr.ErrBadStatusChange)
		assert.Equal(t, http.StatusConflict, errStatus(t, wrapped))
	})
}

func TestErrInternalServerErrorHidesDetails(t *testing.T) {
	resp := ErrInternalServerError(fmt.Errorf("dsn=root:hunter2@tcp"))
	er, ok := resp.(*ErrResponse)
	assert.True(t, ok)
	assert.Empty(t, er.ErrorText)
}

func TestPaging(t *testing.T) {
	for _, tc := range []struct {
		url    string
		limit  int
		offset int
	}{
		{"/api/products", defaultPageSize, 0},
		{"/api/products?limit=5&offset=10", 5, 10},
		{"/api/products?limit=9999", maxPageSize, 0},
		{"/api/products?limit=-3&offset=-1", defaultPageSize, 0},
		{"/api/products?limit=abc", defaultPageSize, 0},
	} {
		r := httptest.NewRequest(http.MethodGet, tc.url, nil)
		limit, offset := paging(r)
		assert.Equal(t, tc.limit, limit, tc.url)
		assert.Equal(t, tc.offset, offset, tc.url)
	}
}

func TestProductFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/products?categoryId=4&gender=WOMEN", nil)
	f := productFilterFromQuery(r, false)
	assert.Equal(t, 4, f.CategoryId)
	assert.Equal(t, "WOMEN", string(f.Gender))
	assert.False(t, f.ShowArchived)

	r = httptest.NewRequest(http.MethodGet, "/api/products?gender=bogus", nil)
	f = productFilterFromQuery(r, true)
	assert.Empty(t, string(f.Gender))
	assert.True(t, f.ShowArchived)
}
