package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ndtran/netdiag/internal/probe"
)

type fakeStore struct {
	entries map[string]string
	ttls    map[string]time.Duration
	gets    int
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	val, ok := f.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (f *fakeStore) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	f.sets++
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

type errStore struct{}

func (errStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (errStore) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestKeyFormat(t *testing.T) {
	key := Key("dns", "example.com")
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		t.Fatalf("unexpected key shape: %s", key)
	}
	if parts[0] != "netdiag" || parts[1] != "dns" {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if len(parts[2]) != 16 {
		t.Fatalf("expected 16-char fingerprint, got %q", parts[2])
	}

	if Key("dns", "example.com") != key {
		t.Fatal("key derivation must be deterministic")
	}
	if Key("ssl", "example.com") == key {
		t.Fatal("namespaces must not collide")
	}
	if Key("dns", "example.org") == key {
		t.Fatal("targets must not collide")
	}
}

func TestGetOrComputeMissThenHit(t *testing.T) {
	store := newFakeStore()
	c := New(store, zaptest.NewLogger(t))
	ctx := context.Background()

	calls := 0
	compute := func() *probe.DNSResult {
		calls++
		return &probe.DNSResult{Status: probe.Status{OK: true, Host: "example.com"}, IP: "93.184.216.34"}
	}

	first := GetOrCompute[probe.DNSResult](ctx, c, "dns", "example.com", 5*time.Minute, compute)
	if calls != 1 {
		t.Fatalf("expected one compute on miss, got %d", calls)
	}
	if first.Cached {
		t.Fatal("fresh result must not be marked cached")
	}
	if store.sets != 1 {
		t.Fatalf("expected one write-back, got %d", store.sets)
	}
	if ttl := store.ttls[Key("dns", "example.com")]; ttl != 5*time.Minute {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	second := GetOrCompute[probe.DNSResult](ctx, c, "dns", "example.com", 5*time.Minute, compute)
	if calls != 1 {
		t.Fatalf("expected hit to skip compute, got %d calls", calls)
	}
	if !second.Cached {
		t.Fatal("hit must be marked cached")
	}
	if second.IP != "93.184.216.34" || !second.OK {
		t.Fatalf("hit lost fields: %+v", second)
	}
}

func TestGetOrComputeFailOpen(t *testing.T) {
	c := New(errStore{}, zaptest.NewLogger(t))

	calls := 0
	res := GetOrCompute[probe.DNSResult](context.Background(), c, "dns", "example.com", time.Minute,
		func() *probe.DNSResult {
			calls++
			return &probe.DNSResult{Status: probe.Status{OK: true}}
		})

	if calls != 1 {
		t.Fatalf("expected compute despite backend failure, got %d calls", calls)
	}
	if res == nil || !res.OK {
		t.Fatal("backend failure must not corrupt the result")
	}
	if res.Cached {
		t.Fatal("result computed fresh must not be marked cached")
	}
}

func TestGetOrComputeCorruptEntry(t *testing.T) {
	store := newFakeStore()
	store.entries[Key("dns", "example.com")] = "{not json"
	c := New(store, zaptest.NewLogger(t))

	calls := 0
	res := GetOrCompute[probe.DNSResult](context.Background(), c, "dns", "example.com", time.Minute,
		func() *probe.DNSResult {
			calls++
			return &probe.DNSResult{Status: probe.Status{OK: true}}
		})

	if calls != 1 {
		t.Fatal("corrupt entry must fall back to compute")
	}
	if res.Cached {
		t.Fatal("recomputed result must not be marked cached")
	}

	// The corrupt entry gets overwritten by the write-back.
	var stored probe.DNSResult
	if err := json.Unmarshal([]byte(store.entries[Key("dns", "example.com")]), &stored); err != nil {
		t.Fatalf("write-back should replace corrupt entry: %v", err)
	}
}

func TestGetOrComputeDisabled(t *testing.T) {
	calls := 0
	res := GetOrCompute[probe.DNSResult](context.Background(), Disabled(), "dns", "example.com", time.Minute,
		func() *probe.DNSResult {
			calls++
			return &probe.DNSResult{Status: probe.Status{OK: true}}
		})
	if calls != 1 || res == nil {
		t.Fatal("disabled cache must always compute")
	}

	res = GetOrCompute[probe.DNSResult](context.Background(), nil, "dns", "example.com", time.Minute,
		func() *probe.DNSResult {
			calls++
			return &probe.DNSResult{}
		})
	if calls != 2 || res == nil {
		t.Fatal("nil cache must always compute")
	}
}
