package probe

import (
	"context"
	"testing"
	"time"
)

func TestPingProbeEmptyTarget(t *testing.T) {
	p := &PingProbe{}
	res := p.Check(context.Background(), "https://")

	if res.OK {
		t.Fatal("expected failure for empty host")
	}
	if res.Error != errEmptyHost {
		t.Fatalf("unexpected error: %q", res.Error)
	}
	if res.LatencyMs != nil {
		t.Fatal("expected nil latency on failure")
	}
}

func TestPingProbeUnresolvableHost(t *testing.T) {
	p := &PingProbe{Timeout: time.Second}
	res := p.Check(context.Background(), "nonexistent.invalid")

	if res.OK {
		t.Fatal("expected failure for unresolvable host")
	}
	if res.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestPingProbeTimeoutIsValue(t *testing.T) {
	// 192.0.2.0/24 (TEST-NET-1) never answers; a silent host must come
	// back as a failure value, not hang past the timeout.
	p := &PingProbe{Timeout: 500 * time.Millisecond}

	start := time.Now()
	res := p.Check(context.Background(), "192.0.2.1")
	elapsed := time.Since(start)

	if res.OK {
		t.Fatal("expected timeout failure")
	}
	if res.Error == "" {
		t.Fatal("expected an error message")
	}
	if elapsed > 5*time.Second {
		t.Fatalf("probe overran its timeout: %v", elapsed)
	}
}
