package probe

import (
	"context"
	"net"
)

// DNSProbe resolves the target hostname to an IP address. No timeout is
// enforced beyond the OS resolver default.
type DNSProbe struct {
	Resolver *net.Resolver // nil means net.DefaultResolver
}

// Check resolves the normalized hostname and reports the first IPv4
// address found (first address of any family when no IPv4 exists).
func (d *DNSProbe) Check(ctx context.Context, target string) *DNSResult {
	host := Normalize(target)
	result := &DNSResult{Status: Status{Host: host}}

	if host == "" {
		result.Error = errEmptyHost
		return result
	}

	resolver := d.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	addrs, err := resolver.LookupHost(ctx, host)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if len(addrs) == 0 {
		result.Error = "no addresses found"
		return result
	}

	result.IP = firstIPv4(addrs)
	result.OK = true
	return result
}
