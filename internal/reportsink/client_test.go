package reportsink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Put(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret")
	defer c.Close()

	err := c.Put(context.Background(), "coursecheck/runs/abc", Entry{Value: map[string]any{"ok": true}, Source: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/kv/coursecheck/runs/abc" {
		t.Errorf("expected path %q, got %q", "/kv/coursecheck/runs/abc", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Source != "test" {
		t.Errorf("expected source %q, got %q", "test", gotBody.Source)
	}
}

func TestClient_PutErrors(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("nope"))
		}))
		err := NewClient(srv.URL, "k").Put(context.Background(), "k", Entry{Value: 1})
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		var re *RetryableError
		if errors.As(err, &re) != tt.retryable {
			t.Errorf("status %d: expected retryable=%v, got %v", tt.status, tt.retryable, err)
		}
	}
}
