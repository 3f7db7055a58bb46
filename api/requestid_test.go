package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDIssued(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(HeaderRequestID)
	if id == "" {
		t.Fatal("no request ID issued")
	}
	if seen != id {
		t.Errorf("context ID %q != header ID %q", seen, id)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "trace-me-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderRequestID); got != "trace-me-42" {
		t.Errorf("header = %q, want the client's ID echoed", got)
	}
	if seen != "trace-me-42" {
		t.Errorf("context ID = %q, want trace-me-42", seen)
	}
}

func TestRequestIDOversizedReplaced(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	long := strings.Repeat("x", 300)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, long)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	got := rec.Header().Get(HeaderRequestID)
	if got == long {
		t.Error("oversized client ID was kept")
	}
	if got == "" {
		t.Error("no replacement ID issued")
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id, ok := RequestIDFromContext(req.Context()); ok || id != "" {
		t.Errorf("RequestIDFromContext = %q, %v on bare context", id, ok)
	}
}
