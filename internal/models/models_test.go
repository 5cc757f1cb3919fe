package models

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scribelabs/minute/internal/config"
)

func TestCreateModel_UnknownDriver(t *testing.T) {
	_, err := CreateModel(context.Background(), config.ProviderConfig{Driver: "carrier-pigeon"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry(config.ModelsConfig{Default: "local", Providers: map[string]config.ProviderConfig{}})
	if _, err := r.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRegistry_DefaultName(t *testing.T) {
	r := NewRegistry(config.ModelsConfig{Default: "local"})
	if got := r.DefaultName(); got != "local" {
		t.Errorf("DefaultName() = %q, want local", got)
	}
}

func TestRegistry_NoDefault(t *testing.T) {
	r := NewRegistry(config.ModelsConfig{})
	if _, err := r.Default(context.Background()); err == nil {
		t.Fatal("expected error when no default is configured")
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"auth", "401 unauthorized", "authentication failed"},
		{"rate limit", "429 too many requests", "rate limited"},
		{"context", "context length exceeded", "context too long"},
		{"not found", "model not found", "model not found"},
		{"connection", "dial tcp: connection refused", "connection error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleError(errors.New(tt.in))
			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("HandleError(%q) = %q, want containing %q", tt.in, got, tt.want)
			}
		})
	}

	if HandleError(nil) != nil {
		t.Error("HandleError(nil) should be nil")
	}
}

func TestOllamaTransport_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		w.Write([]byte(`{"model":"test"}`))
	}))
	defer srv.Close()

	transport := &ollamaTransport{inner: http.DefaultTransport, provider: "ollama"}
	req, _ := http.NewRequest("POST", srv.URL, nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"model":"test"}` {
		t.Errorf("body: got %q, want %q", string(body), `{"model":"test"}`)
	}
}

func TestOllamaTransport_NonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(200)
		w.Write([]byte("no available server"))
	}))
	defer srv.Close()

	transport := &ollamaTransport{inner: http.DefaultTransport, provider: "ollama"}
	req, _ := http.NewRequest("POST", srv.URL, nil)
	_, err := transport.RoundTrip(req)
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}

	var unavail *ErrModelUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrModelUnavailable, got %T: %v", err, err)
	}
	if unavail.Provider != "ollama" {
		t.Errorf("provider: got %q, want %q", unavail.Provider, "ollama")
	}
	if !strings.Contains(unavail.Body, "no available server") {
		t.Errorf("body: got %q, want to contain %q", unavail.Body, "no available server")
	}
}

func TestOllamaTransport_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	transport := &ollamaTransport{inner: http.DefaultTransport, provider: "ollama"}
	req, _ := http.NewRequest("POST", srv.URL, nil)
	_, err := transport.RoundTrip(req)

	var unavail *ErrModelUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrModelUnavailable, got %T: %v", err, err)
	}
	if !strings.Contains(unavail.Body, "bad gateway") {
		t.Errorf("body: got %q, want to contain %q", unavail.Body, "bad gateway")
	}
}

func TestResolveAPIKey_EnvTemplate(t *testing.T) {
	t.Setenv("MY_OPENAI_KEY", "sk-from-env")
	key, err := resolveAPIKey(config.ProviderConfig{
		Driver: "openai",
		Auth:   config.AuthConfig{APIKey: "${MY_OPENAI_KEY}"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if key != "sk-from-env" {
		t.Errorf("key = %q, want sk-from-env", key)
	}
}
