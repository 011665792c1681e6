package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content/duaa/general" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("<html><body>محتوى</body></html>"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	body, err := c.Fetch(context.Background(), "/content/duaa/general")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "<html><body>محتوى</body></html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	_, err = c.Fetch(context.Background(), "/content/missing")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fe.Status)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	_, err = c.Fetch(context.Background(), "/content/x")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Status != 0 {
		t.Errorf("status = %d, want 0 for transport failure", fe.Status)
	}
	if fe.Unwrap() == nil {
		t.Error("transport failure should carry an underlying error")
	}
}

func TestFetchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Fetch(ctx, "/content/x")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("://broken", time.Second); err == nil {
		t.Error("malformed base url accepted")
	}
	if _, err := NewClient("/relative/only", time.Second); err == nil {
		t.Error("relative base url accepted")
	}
}

func TestResolveURL(t *testing.T) {
	c, err := NewClient("https://hmomen.com", 25*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	cases := []struct{ in, want string }{
		{"/content/duaa/general", "https://hmomen.com/content/duaa/general"},
		{"https://other.example/x", "https://other.example/x"},
	}
	for _, tc := range cases {
		if got := c.ResolveURL(tc.in); got != tc.want {
			t.Errorf("ResolveURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
