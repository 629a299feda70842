package probe

import "time"

// Status carries the fields shared by every probe result. Probes never
// return Go errors: any internal failure ends up as OK=false with a
// non-empty Error string, so callers can aggregate results without
// per-probe error handling. Cached is flipped by the cache layer when a
// result was served from the backend instead of computed fresh.
type Status struct {
	OK     bool   `json:"ok"`
	Host   string `json:"host,omitempty"`
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cache,omitempty"`
}

// MarkCached flags the result as served from the cache backend.
func (s *Status) MarkCached() { s.Cached = true }

// DNSResult is the outcome of resolving the target hostname.
type DNSResult struct {
	Status
	IP string `json:"ip,omitempty"`
}

// TLSResult describes the leaf certificate presented on port 443.
// DaysLeft and ExpiresAt are nil when no expiry could be determined;
// an expired certificate yields OK=false while subject and issuer are
// still populated for diagnostic value.
type TLSResult struct {
	Status
	Subject   map[string]string `json:"subject,omitempty"`
	Issuer    map[string]string `json:"issuer,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at"`
	DaysLeft  *int              `json:"days_left"`
}

// HTTPResult is the outcome of a redirect-following GET request.
type HTTPResult struct {
	Status
	URL            string `json:"url,omitempty"`
	StatusCode     int    `json:"status_code,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
	FinalURL       string `json:"final_url,omitempty"`
	RedirectChain  []int  `json:"redirect_chain,omitempty"`
}

// PingResult reports the ICMP round-trip time in milliseconds.
// LatencyMs is nil when no echo reply was received.
type PingResult struct {
	Status
	LatencyMs *float64 `json:"latency_ms"`
}

// GeoIPResult describes where the resolved address appears to be
// hosted, according to an external geolocation service.
type GeoIPResult struct {
	Status
	IP       string `json:"ip,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	City     string `json:"city,omitempty"`
	ASN      string `json:"asn,omitempty"`
	Org      string `json:"org,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// TracerouteResult carries the tail of the traceroute output.
type TracerouteResult struct {
	Status
	Raw string `json:"raw,omitempty"`
}
