// internal/textgen/textgen_test.go
//
// Round-trip tests against an httptest stand-in for the generation
// service.
//
// Run: go test ./internal/textgen -v

package textgen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate(t *testing.T) {
	var gotPrompt, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPrompt = string(body)
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, "Nine quiet harbours along the coast.")
	}))
	defer srv.Close()

	c := New(srv.URL, "k-123")
	text, err := c.Generate(context.Background(), "Write an opening line about harbours.")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Nine quiet harbours along the coast." {
		t.Errorf("text = %q", text)
	}
	if gotPrompt != "Write an opening line about harbours." {
		t.Errorf("prompt on the wire = %q", gotPrompt)
	}
	if gotAuth != "Bearer k-123" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestGenerate_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "").Generate(context.Background(), "p"); err == nil {
		t.Fatal("non-2xx answer must fail")
	}
}
