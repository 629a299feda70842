// Package diagnose orchestrates the probe battery. Probes run
// concurrently and independently: one failing probe never prevents the
// others from running or fails the overall call, and the returned
// bundle always carries an entry for every probe in the set.
package diagnose

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ndtran/netdiag/internal/cache"
	"github.com/ndtran/netdiag/internal/explain"
	"github.com/ndtran/netdiag/internal/probe"
)

// Probe namespaces, also used as cache-key prefixes.
const (
	NamespaceDNS        = "dns"
	NamespaceSSL        = "ssl"
	NamespaceHTTP       = "http"
	NamespacePing       = "ping"
	NamespaceGeoIP      = "geoip"
	NamespaceTraceroute = "traceroute"
)

// TTLConfig holds the cache TTL per cached probe namespace. Ping and
// traceroute are never cached.
type TTLConfig struct {
	DNS   time.Duration
	SSL   time.Duration
	HTTP  time.Duration
	GeoIP time.Duration
}

// Config assembles an Agent. The zero value is usable: probes fall
// back to their own default timeouts and caching is disabled.
type Config struct {
	HTTPTimeout       time.Duration
	TLSTimeout        time.Duration
	PingTimeout       time.Duration
	TracerouteTimeout time.Duration
	GeoIPBaseURL      string
	TTL               TTLConfig
	IncludeTraceroute bool
	Cache             *cache.Cache
	Logger            *zap.Logger
}

// Bundle maps probe namespaces to their results for one diagnosis
// call. It is created fresh per call and never mutated once returned.
type Bundle struct {
	DNS        *probe.DNSResult        `json:"dns"`
	SSL        *probe.TLSResult        `json:"ssl"`
	HTTP       *probe.HTTPResult       `json:"http"`
	Ping       *probe.PingResult       `json:"ping"`
	GeoIP      *probe.GeoIPResult      `json:"geoip"`
	Traceroute *probe.TracerouteResult `json:"traceroute,omitempty"`
}

// Namespaces lists the probe namespaces present in the bundle, in
// battery order.
func (b *Bundle) Namespaces() []string {
	ns := []string{NamespaceDNS, NamespaceSSL, NamespaceHTTP, NamespacePing, NamespaceGeoIP}
	if b.Traceroute != nil {
		ns = append(ns, NamespaceTraceroute)
	}
	return ns
}

// Passed reports whether the probe stored under ns succeeded. Missing
// or unknown namespaces report false.
func (b *Bundle) Passed(ns string) bool {
	switch ns {
	case NamespaceDNS:
		return b.DNS != nil && b.DNS.OK
	case NamespaceSSL:
		return b.SSL != nil && b.SSL.OK
	case NamespaceHTTP:
		return b.HTTP != nil && b.HTTP.OK
	case NamespacePing:
		return b.Ping != nil && b.Ping.OK
	case NamespaceGeoIP:
		return b.GeoIP != nil && b.GeoIP.OK
	case NamespaceTraceroute:
		return b.Traceroute != nil && b.Traceroute.OK
	}
	return false
}

// backfill replaces entries lost to a panicked probe goroutine so the
// bundle's key set stays complete.
func (b *Bundle) backfill(host string, withTraceroute bool) {
	const msg = "probe did not complete"
	failed := probe.Status{Host: host, Error: msg}
	if b.DNS == nil {
		b.DNS = &probe.DNSResult{Status: failed}
	}
	if b.SSL == nil {
		b.SSL = &probe.TLSResult{Status: failed}
	}
	if b.HTTP == nil {
		b.HTTP = &probe.HTTPResult{Status: failed}
	}
	if b.Ping == nil {
		b.Ping = &probe.PingResult{Status: failed}
	}
	if b.GeoIP == nil {
		b.GeoIP = &probe.GeoIPResult{Status: failed}
	}
	if withTraceroute && b.Traceroute == nil {
		b.Traceroute = &probe.TracerouteResult{Status: failed}
	}
}

// Result is the combined raw + explained outcome of one diagnosis.
type Result struct {
	Target     string            `json:"target"`
	Host       string            `json:"host"`
	Mode       explain.Mode      `json:"mode"`
	Raw        *Bundle           `json:"raw"`
	Explained  map[string]string `json:"explained"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMs int64             `json:"duration_ms"`
}

// Agent runs the full probe battery against one target. All
// dependencies are explicit; there is no package-level state.
type Agent struct {
	dns        *probe.DNSProbe
	tls        *probe.TLSProbe
	http       *probe.HTTPProbe
	ping       *probe.PingProbe
	geoip      *probe.GeoIPProbe
	traceroute *probe.TracerouteProbe

	cache             *cache.Cache
	ttl               TTLConfig
	includeTraceroute bool
	log               *zap.Logger
}

func New(cfg Config) *Agent {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Disabled()
	}
	return &Agent{
		dns:               &probe.DNSProbe{},
		tls:               &probe.TLSProbe{Timeout: cfg.TLSTimeout},
		http:              &probe.HTTPProbe{Timeout: cfg.HTTPTimeout},
		ping:              &probe.PingProbe{Timeout: cfg.PingTimeout},
		geoip:             &probe.GeoIPProbe{BaseURL: cfg.GeoIPBaseURL, Timeout: cfg.HTTPTimeout},
		traceroute:        &probe.TracerouteProbe{Timeout: cfg.TracerouteTimeout},
		cache:             c,
		ttl:               cfg.TTL,
		includeTraceroute: cfg.IncludeTraceroute,
		log:               log,
	}
}

// Run executes every probe against the target and reduces the raw
// results to explanations for the requested mode. An unknown mode is
// the only error; probe failures are values inside the bundle.
//
// Probes run one goroutine each, so total latency is bounded by the
// slowest probe timeout rather than their sum. The dns, ssl, http and
// geoip probes are wrapped by the result cache; ping and traceroute
// always run fresh.
func (a *Agent) Run(ctx context.Context, target string, mode explain.Mode) (*Result, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	host := probe.Normalize(target)
	started := time.Now()
	bundle := &Bundle{}

	var wg sync.WaitGroup
	launch := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					a.log.Error("probe panicked",
						zap.String("probe", name), zap.Any("panic", r))
				}
			}()
			fn()
		}()
	}

	// Host-scoped namespaces are fingerprinted by the normalized host
	// so equivalent target spellings share cache entries; the http
	// namespace keys on the raw target because scheme and path affect
	// its outcome.
	launch(NamespaceDNS, func() {
		bundle.DNS = cache.GetOrCompute(ctx, a.cache, NamespaceDNS, host, a.ttl.DNS,
			func() *probe.DNSResult { return a.dns.Check(ctx, target) })
	})
	launch(NamespaceSSL, func() {
		bundle.SSL = cache.GetOrCompute(ctx, a.cache, NamespaceSSL, host, a.ttl.SSL,
			func() *probe.TLSResult { return a.tls.Check(ctx, target) })
	})
	launch(NamespaceHTTP, func() {
		bundle.HTTP = cache.GetOrCompute(ctx, a.cache, NamespaceHTTP, target, a.ttl.HTTP,
			func() *probe.HTTPResult { return a.http.Check(ctx, target) })
	})
	launch(NamespacePing, func() {
		bundle.Ping = a.ping.Check(ctx, target)
	})
	launch(NamespaceGeoIP, func() {
		bundle.GeoIP = cache.GetOrCompute(ctx, a.cache, NamespaceGeoIP, host, a.ttl.GeoIP,
			func() *probe.GeoIPResult { return a.geoip.Check(ctx, target) })
	})
	if a.includeTraceroute {
		launch(NamespaceTraceroute, func() {
			bundle.Traceroute = a.traceroute.Check(ctx, target)
		})
	}
	wg.Wait()

	bundle.backfill(host, a.includeTraceroute)

	return &Result{
		Target:     target,
		Host:       host,
		Mode:       mode,
		Raw:        bundle,
		Explained:  explained(bundle, mode),
		StartedAt:  started.UTC(),
		DurationMs: time.Since(started).Milliseconds(),
	}, nil
}

func explained(b *Bundle, mode explain.Mode) map[string]string {
	out := map[string]string{
		NamespaceDNS:   explain.DNS(b.DNS, mode),
		NamespaceSSL:   explain.SSL(b.SSL, mode),
		NamespaceHTTP:  explain.HTTP(b.HTTP, mode),
		NamespacePing:  explain.Ping(b.Ping, mode),
		NamespaceGeoIP: explain.GeoIP(b.GeoIP, mode),
	}
	if b.Traceroute != nil {
		out[NamespaceTraceroute] = explain.Traceroute(b.Traceroute, mode)
	}
	return out
}
