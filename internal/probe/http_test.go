package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPProbeOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := &HTTPProbe{}
	res := p.Check(context.Background(), srv.URL)

	if !res.OK {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", res.StatusCode)
	}
	if res.ResponseTimeMs < 0 {
		t.Fatalf("unexpected response time: %d", res.ResponseTimeMs)
	}
	if res.FinalURL == "" {
		t.Fatal("expected final_url to be recorded")
	}
}

func TestHTTPProbeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &HTTPProbe{}
	res := p.Check(context.Background(), srv.URL)

	if res.OK {
		t.Fatal("expected 500 to count as unreachable")
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status code: %d", res.StatusCode)
	}
}

func TestHTTPProbeFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/middle", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := &HTTPProbe{}
	res := p.Check(context.Background(), srv.URL+"/start")

	if !res.OK {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if len(res.RedirectChain) != 2 {
		t.Fatalf("expected 2 hops in redirect chain, got %v", res.RedirectChain)
	}
	if res.RedirectChain[0] != http.StatusMovedPermanently || res.RedirectChain[1] != http.StatusFound {
		t.Fatalf("unexpected redirect chain: %v", res.RedirectChain)
	}
	if res.FinalURL != srv.URL+"/end" {
		t.Fatalf("unexpected final url: %s", res.FinalURL)
	}
}

func TestHTTPProbeDefaultsToHTTPS(t *testing.T) {
	p := &HTTPProbe{}
	res := p.Check(context.Background(), "example.com/path")
	if res.URL != "https://example.com/path" {
		t.Fatalf("expected https scheme to be prepended, got %s", res.URL)
	}
	if res.Host != "example.com" {
		t.Fatalf("unexpected host: %s", res.Host)
	}
}

func TestHTTPProbeTransportError(t *testing.T) {
	p := &HTTPProbe{}
	res := p.Check(context.Background(), "http://nonexistent.invalid")

	if res.OK {
		t.Fatal("expected transport failure")
	}
	if res.Error == "" {
		t.Fatal("expected an error message")
	}
	if res.StatusCode != 0 {
		t.Fatalf("expected no status code, got %d", res.StatusCode)
	}
}
