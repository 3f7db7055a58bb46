package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saurabh-xd/kana-dojo/apierr"
)

func newTestDeepL(t *testing.T, handler http.HandlerFunc) (*DeepL, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	d := NewDeepL(DeepLConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	return d, srv
}

func TestDeepLTranslate(t *testing.T) {
	d, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v2/translate" {
			t.Errorf("path = %s, want /v2/translate", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "DeepL-Auth-Key test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req deeplRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Text) != 1 || req.Text[0] != "Good morning" {
			t.Errorf("text = %v", req.Text)
		}
		if req.SourceLang != "EN" || req.TargetLang != "JA" {
			t.Errorf("langs = %s -> %s, want EN -> JA", req.SourceLang, req.TargetLang)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"translations": []map[string]string{{"text": "おはようございます"}},
		})
	})

	res, err := d.Translate(context.Background(), Request{
		Text:   "Good morning",
		Source: English,
		Target: Japanese,
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Text != "おはようございます" {
		t.Errorf("Text = %q, want %q", res.Text, "おはようございます")
	}
}

func TestDeepLStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode apierr.Code
	}{
		{"unauthorized", http.StatusUnauthorized, apierr.CodeAuthConfiguration},
		{"forbidden", http.StatusForbidden, apierr.CodeAuthConfiguration},
		{"provider throttling", http.StatusTooManyRequests, apierr.CodeUpstreamUnavailable},
		{"quota exhausted", 456, apierr.CodeUpstreamUnavailable},
		{"server error", http.StatusInternalServerError, apierr.CodeUpstreamUnavailable},
		{"bad gateway", http.StatusBadGateway, apierr.CodeUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
			if !apierr.IsCode(err, tt.wantCode) {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestDeepLEmptyTranslations(t *testing.T) {
	d, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"translations": []any{}})
	})
	_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
	if !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeUpstreamUnavailable)
	}
}

func TestDeepLMalformedResponse(t *testing.T) {
	d, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
	if !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeUpstreamUnavailable)
	}
}

func TestDeepLMissingKeyNeverCallsProvider(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	d := NewDeepL(DeepLConfig{BaseURL: srv.URL})
	_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
	if !apierr.IsCode(err, apierr.CodeAuthConfiguration) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeAuthConfiguration)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("provider calls = %d, want 0", got)
	}
}

func TestDeepLTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	d := NewDeepL(DeepLConfig{BaseURL: srv.URL, APIKey: "test-key"})
	_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
	if !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeUpstreamUnavailable)
	}
}

func TestDeepLBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	d := NewDeepL(DeepLConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		MaxFailures:       2,
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	ctx := context.Background()
	req := Request{Text: "x", Source: English, Target: Japanese}

	for i := 0; i < 2; i++ {
		if _, err := d.Translate(ctx, req); !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
			t.Fatalf("call %d err = %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("provider calls = %d, want 2", got)
	}

	// Circuit open: the provider is not contacted again.
	if _, err := d.Translate(ctx, req); !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeUpstreamUnavailable)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("provider calls = %d, want 2", got)
	}
}

func TestDeepLAuthFailuresDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	d := NewDeepL(DeepLConfig{
		BaseURL:           srv.URL,
		APIKey:            "bad-key",
		MaxFailures:       2,
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	ctx := context.Background()
	req := Request{Text: "x", Source: English, Target: Japanese}

	for i := 0; i < 5; i++ {
		if _, err := d.Translate(ctx, req); !apierr.IsCode(err, apierr.CodeAuthConfiguration) {
			t.Fatalf("call %d err = %v", i, err)
		}
	}
	// Every call reached the provider: credential errors never open the
	// circuit and hide the real code.
	if got := calls.Load(); got != 5 {
		t.Errorf("provider calls = %d, want 5", got)
	}
}

func TestDeepLTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	d := NewDeepL(DeepLConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		Timeout:           5 * time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	_, err := d.Translate(context.Background(), Request{Text: "x", Source: English, Target: Japanese})
	if !apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("err = %v, want code %s", err, apierr.CodeUpstreamUnavailable)
	}
}

func TestDeepLContextCanceled(t *testing.T) {
	d, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Translate(ctx, Request{Text: "x", Source: English, Target: Japanese})
	if err == nil {
		t.Fatal("Translate with canceled context succeeded")
	}
	if apierr.IsCode(err, apierr.CodeUpstreamUnavailable) {
		t.Errorf("cancellation classified as provider failure: %v", err)
	}
}
