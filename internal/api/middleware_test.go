package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler := AuthMiddleware("secret", discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected handler not to be reached")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongKey(t *testing.T) {
	handler := AuthMiddleware("secret", discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected handler not to be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidKey(t *testing.T) {
	reached := false
	handler := AuthMiddleware("secret", discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !reached {
		t.Error("expected handler to be reached")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestRequestLogger_CapturesStatusAndBytes(t *testing.T) {
	var sw *statusWriter
	handler := RequestLogger(discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			sw = w.(*statusWriter)
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("short and stout"))
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if sw.status != http.StatusTeapot {
		t.Errorf("expected captured status 418, got %d", sw.status)
	}
	if sw.bytes != len("short and stout") {
		t.Errorf("expected %d bytes recorded, got %d", len("short and stout"), sw.bytes)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418 passed through, got %d", rec.Code)
	}
}
