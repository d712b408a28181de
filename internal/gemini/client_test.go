package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(baseURL string) *GeminiClient {
	return &GeminiClient{
		apiKey:     "test-key",
		model:      "gemini-2.5-flash",
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestEnabled(t *testing.T) {
	if (&GeminiClient{}).Enabled() {
		t.Error("client without a key must report disabled")
	}
	if !newTestClient("http://unused").Enabled() {
		t.Error("client with a key must report enabled")
	}
}

func TestGenerateDisabledClientErrors(t *testing.T) {
	c := &GeminiClient{httpClient: http.DefaultClient}
	if _, err := c.GenerateText(context.Background(), "hi"); err == nil {
		t.Error("disabled client must refuse to generate")
	}
}

func TestGenerateTextJoinsParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GenerateText(context.Background(), "greet")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if got != "Hello world" {
		t.Errorf("GenerateText() = %q", got)
	}
}

func TestGenerateJSONSetsResponseMimeType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Error("JSON mode must demand an application/json response")
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ok\":true}"}]}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GenerateJSON(context.Background(), "structure this")
	if err != nil {
		t.Fatalf("GenerateJSON() error = %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("GenerateJSON() = %q", got)
	}
}

func TestGenerateSurfacesModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Errorf("error = %v, want model error message", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).GenerateText(context.Background(), "hi"); err == nil {
		t.Error("empty candidate list must be an error")
	}
}
