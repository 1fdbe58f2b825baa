package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCompleteChoiceShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.Complete(context.Background(), "m", "sys", "user", 64, "tok")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "hi" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestClientCompleteGeneratedTextShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"generated_text":"flat shape"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.Complete(context.Background(), "m", "sys", "user", 64, "tok")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "flat shape" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestClientCompleteRawFallback(t *testing.T) {
	raw := `{"unexpected":"envelope"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, raw)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.Complete(context.Background(), "m", "sys", "user", 64, "tok")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != raw {
		t.Fatalf("expected raw body fallback, got %q", text)
	}
}

func TestClientCompleteQuotaErrors(t *testing.T) {
	for _, code := range []int{http.StatusPaymentRequired, http.StatusTooManyRequests} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			fmt.Fprint(w, `{"error":"quota"}`)
		}))

		client := NewClient(server.URL)
		_, err := client.Complete(context.Background(), "m", "sys", "user", 64, "tok")
		server.Close()

		var quotaErr *QuotaError
		if !errors.As(err, &quotaErr) {
			t.Fatalf("expected QuotaError for %d, got %v", code, err)
		}
		if quotaErr.StatusCode != code {
			t.Fatalf("expected status %d, got %d", code, quotaErr.StatusCode)
		}
	}
}

func TestClientCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "model not available")
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Complete(context.Background(), "m", "sys", "user", 64, "tok")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	var quotaErr *QuotaError
	if errors.As(err, &quotaErr) {
		t.Fatalf("503 must not classify as a quota error")
	}
}

func TestClientCompleteSendsMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "m" || req.MaxTokens != 128 {
			t.Fatalf("unexpected request: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Fatalf("unexpected messages: %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Complete(context.Background(), "m", "sys", "user", 128, "tok"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}
