package probe

import (
	"net"
	"strings"
)

const errEmptyHost = "empty host after normalization"

// Normalize reduces a user-supplied target to a bare hostname. A
// leading http:// or https:// scheme is stripped, and everything from
// the first slash onward is dropped. The result of normalizing an
// already-normalized hostname is the hostname itself.
//
// Normalize never fails; a malformed input may normalize to the empty
// string, which probes treat as a resolution failure.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if _, rest, found := strings.Cut(raw, "//"); found {
			raw = rest
		}
	}
	host, _, _ := strings.Cut(raw, "/")
	return host
}

// firstIPv4 prefers an IPv4 address from a resolver answer, falling
// back to the first address of any family.
func firstIPv4(addrs []string) string {
	for _, a := range addrs {
		if ip := net.ParseIP(a); ip != nil && ip.To4() != nil {
			return a
		}
	}
	return addrs[0]
}
