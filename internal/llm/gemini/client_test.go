package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"insight-backend/internal/llm"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	oldURL := apiBaseURL
	server := httptest.NewServer(handler)
	apiBaseURL = server.URL
	t.Cleanup(func() {
		apiBaseURL = oldURL
		server.Close()
	})
	return server
}

func TestAnalyzeSendsInlinePDFAndPrompt(t *testing.T) {
	var mu sync.Mutex
	var lastBody map[string]any

	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if !strings.Contains(r.URL.Path, "models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"ok\"}"}]}}]}`))
	})

	client, err := NewClient("test-key", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	text, err := client.Analyze(context.Background(), llm.AnalyzeInput{
		FileName: "resume.pdf",
		MIMEType: "application/pdf",
		Data:     []byte("%PDF-1.4 fake"),
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if text != `{"summary":"ok"}` {
		t.Fatalf("text = %q", text)
	}

	mu.Lock()
	defer mu.Unlock()
	contents, _ := lastBody["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("contents = %v", lastBody["contents"])
	}
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected inline_data part plus text part, got %d", len(parts))
	}
	inline := parts[0].(map[string]any)["inline_data"].(map[string]any)
	if inline["mime_type"] != "application/pdf" {
		t.Fatalf("mime_type = %v", inline["mime_type"])
	}
	if prompt, _ := parts[1].(map[string]any)["text"].(string); !strings.Contains(prompt, "key_skills") {
		t.Fatalf("prompt missing response contract: %q", prompt)
	}
}

func TestAnalyzeEmptyResponseIsServiceError(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	client, err := NewClient("test-key", "gemini-2.0-flash")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Analyze(context.Background(), llm.AnalyzeInput{MIMEType: "application/pdf"})
	if !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestAnalyzeAPIErrorIsServiceError(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	client, err := NewClient("bad-key", "gemini-2.0-flash")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Analyze(context.Background(), llm.AnalyzeInput{MIMEType: "application/pdf"})
	if !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("error should carry the API message, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("  ", "gemini-2.0-flash"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestUnavailableClient(t *testing.T) {
	var client llm.Client = llm.Unavailable{}
	if client.Available() {
		t.Fatalf("Unavailable must report false")
	}
	if _, err := client.Analyze(context.Background(), llm.AnalyzeInput{}); !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}
