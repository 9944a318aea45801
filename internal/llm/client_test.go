package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testOptions() Options {
	return Options{Model: "llama-3.1-8b-instant", Temperature: 0.2, MaxTokens: 900}
}

func TestHTTPClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if req.Temperature != 0.2 || req.MaxTokens != 900 {
			t.Errorf("unexpected sampling params: %v %v", req.Temperature, req.MaxTokens)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  general info answer  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", testOptions(), nil)
	got, err := client.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "general info answer" {
		t.Fatalf("expected trimmed answer, got %q", got)
	}
}

func TestHTTPClient_Complete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", testOptions(), nil)
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "status=429") {
		t.Fatalf("expected http error with status, got: %v", err)
	}
}

func TestHTTPClient_Complete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", testOptions(), nil)
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected api error surfaced, got: %v", err)
	}
}

func TestHTTPClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", testOptions(), nil)
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty response error, got: %v", err)
	}
}
