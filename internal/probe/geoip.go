package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGeoIPBaseURL = "https://ipapi.co"

// GeoIPProbe locates the target's resolved address via an external
// geolocation HTTP service (ipapi.co style: no key required for the
// basic fields, but rate limited).
type GeoIPProbe struct {
	BaseURL  string
	Timeout  time.Duration
	Resolver *net.Resolver // nil means net.DefaultResolver
}

// Check resolves the hostname first and short-circuits with a
// dns_failed error when resolution fails; otherwise it asks the
// geolocation service about the address.
func (g *GeoIPProbe) Check(ctx context.Context, target string) *GeoIPResult {
	host := Normalize(target)
	result := &GeoIPResult{Status: Status{Host: host}}

	if host == "" {
		result.Error = "dns_failed: " + errEmptyHost
		return result
	}

	resolver := g.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupHost(ctx, host)
	if err != nil || len(addrs) == 0 {
		if err == nil {
			err = fmt.Errorf("no addresses found for %s", host)
		}
		result.Error = "dns_failed: " + err.Error()
		return result
	}
	result.IP = firstIPv4(addrs)

	base := strings.TrimRight(g.BaseURL, "/")
	if base == "" {
		base = defaultGeoIPBaseURL
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json/", base, result.IP), nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	var payload struct {
		CountryName string `json:"country_name"`
		Region      string `json:"region"`
		City        string `json:"city"`
		ASN         string `json:"asn"`
		Org         string `json:"org"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Country = payload.CountryName
	result.Region = payload.Region
	result.City = payload.City
	result.ASN = payload.ASN
	result.Org = payload.Org
	result.Provider = providerName(base)
	result.OK = true
	return result
}

func providerName(base string) string {
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		return u.Host
	}
	return base
}
