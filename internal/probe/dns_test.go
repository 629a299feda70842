package probe

import (
	"context"
	"testing"
)

func TestDNSProbeLocalhost(t *testing.T) {
	p := &DNSProbe{}
	res := p.Check(context.Background(), "localhost")

	if !res.OK {
		t.Fatalf("expected localhost to resolve, got error %q", res.Error)
	}
	if res.Host != "localhost" {
		t.Fatalf("unexpected host: %s", res.Host)
	}
	if res.IP == "" {
		t.Fatal("expected an IP address")
	}
}

func TestDNSProbeStripsScheme(t *testing.T) {
	p := &DNSProbe{}
	res := p.Check(context.Background(), "https://localhost/some/path")
	if res.Host != "localhost" {
		t.Fatalf("expected normalized host, got %s", res.Host)
	}
	if !res.OK {
		t.Fatalf("expected resolution to succeed, got error %q", res.Error)
	}
}

func TestDNSProbeNXDomain(t *testing.T) {
	p := &DNSProbe{}
	res := p.Check(context.Background(), "nonexistent.invalid")

	if res.OK {
		t.Fatal("expected failure for reserved .invalid domain")
	}
	if res.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestDNSProbeEmptyTarget(t *testing.T) {
	p := &DNSProbe{}
	res := p.Check(context.Background(), "https://")

	if res.OK {
		t.Fatal("expected failure for empty host")
	}
	if res.Error != errEmptyHost {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}
