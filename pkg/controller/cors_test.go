package controller_test

import (
	"net/http"
	"net/http/httptest"
	"sitecontact/pkg/controller"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireCORSHeaders(t *testing.T, res *http.Response) {
	t.Helper()

	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
	allowed := res.Header.Get("Access-Control-Allow-Headers")
	require.Contains(t, allowed, "Content-Type", "the form posts JSON")
	require.Contains(t, allowed, controller.RequestIDHeader)
}

func TestWithCORS_ContactPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-request-id")
	rec := httptest.NewRecorder()

	controller.WithCORS(next).ServeHTTP(rec, req)

	require.False(t, called, "preflight never reaches the contact handler")
	res := rec.Result()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	requireCORSHeaders(t, res)
}

func TestWithCORS_ContactPost(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "req-7", r.Header.Get(controller.RequestIDHeader))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Invalid request body."}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`nope`))
	req.Header.Set(controller.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()

	controller.WithCORS(next).ServeHTTP(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusBadRequest, res.StatusCode, "handler status is kept")
	requireCORSHeaders(t, res)
}
