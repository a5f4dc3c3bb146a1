package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	rec := serve(Handlers{}, newRequest(http.MethodGet, "/api/nowhere", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(Handlers{}, newRequest(http.MethodPut, "/api/similarity/groups", ""))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	h := Handlers{Health: NewHealthHandler(pingerStub{}, "test")}
	rec := serve(h, newRequest(http.MethodGet, "/live", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
}
