// Package explain reduces raw probe results to short human-readable
// strings. Beginner mode derives a single emoji-prefixed sentence from
// the success signal; expert mode exposes the raw technical fields.
// Every function tolerates nil or partially filled results and falls
// back to placeholders rather than failing, since result schemas may
// drift across probe versions.
package explain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndtran/netdiag/internal/probe"
	sharederrors "github.com/ndtran/netdiag/internal/shared/errors"
)

// Mode selects the verbosity of the rendered explanation.
type Mode string

const (
	ModeBeginner Mode = "beginner"
	ModeExpert   Mode = "expert"
)

// ParseMode maps a user-supplied string to a Mode. The empty string
// defaults to beginner; anything else unknown is an invalid-input
// error for the caller to reject at its boundary.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeBeginner):
		return ModeBeginner, nil
	case string(ModeExpert):
		return ModeExpert, nil
	}
	return "", fmt.Errorf("%w: %q (expected beginner or expert)", sharederrors.ErrInvalidMode, s)
}

// Validate reports whether the mode is one of the known values.
func (m Mode) Validate() error {
	switch m {
	case ModeBeginner, ModeExpert:
		return nil
	}
	return fmt.Errorf("%w: %q (expected beginner or expert)", sharederrors.ErrInvalidMode, string(m))
}

const (
	placeholder = "n/a"
	noData      = "ℹ️ No data available."
)

// DNS renders the DNS resolution result.
func DNS(r *probe.DNSResult, mode Mode) string {
	if r == nil {
		return noData
	}
	if mode == ModeBeginner {
		if r.OK {
			return "✅ DNS looks fine!"
		}
		return "❌ DNS resolution failed."
	}
	return fmt.Sprintf("DNS %s → %s, ok=%t%s",
		valueOr(r.Host), valueOr(r.IP), r.OK, errSuffix(r.Error))
}

// SSL renders the certificate check result.
func SSL(r *probe.TLSResult, mode Mode) string {
	if r == nil {
		return noData
	}
	if mode == ModeBeginner {
		if r.OK {
			return "🔒 SSL certificate is valid!"
		}
		return "⚠️ SSL certificate is invalid or expired."
	}
	return fmt.Sprintf("issuer=%s subject=%s expires_at=%s days_left=%s%s",
		attr(r.Issuer, "commonName"), attr(r.Subject, "commonName"),
		timeOr(r.ExpiresAt), intOr(r.DaysLeft), errSuffix(r.Error))
}

// HTTP renders the reachability result.
func HTTP(r *probe.HTTPResult, mode Mode) string {
	if r == nil {
		return noData
	}
	if mode == ModeBeginner {
		if r.OK {
			return "🌐 Website is reachable."
		}
		return "⚠️ Website is not reachable."
	}
	return fmt.Sprintf("status=%d time=%dms final_url=%s redirects=%v%s",
		r.StatusCode, r.ResponseTimeMs, valueOr(r.FinalURL), r.RedirectChain,
		errSuffix(r.Error))
}

// Ping renders the ICMP latency result.
func Ping(r *probe.PingResult, mode Mode) string {
	if r == nil {
		return noData
	}
	host := r.Host
	if host == "" {
		host = "the host"
	}
	if mode == ModeBeginner {
		if r.OK {
			return fmt.Sprintf("📶 Ping to %s succeeded.", host)
		}
		return fmt.Sprintf("❌ Cannot reach %s.", host)
	}
	return fmt.Sprintf("rtt=%sms ok=%t%s", floatOr(r.LatencyMs), r.OK, errSuffix(r.Error))
}

// GeoIP renders the server location result.
func GeoIP(r *probe.GeoIPResult, mode Mode) string {
	if r == nil {
		return noData
	}
	if mode == ModeBeginner {
		if r.OK {
			return fmt.Sprintf("🌍 Server is located in %s, %s.",
				valueOr(r.Country), valueOr(r.City))
		}
		return "🌍 Server location could not be determined."
	}
	return fmt.Sprintf("ip=%s asn=%s org=%s location=%s/%s%s",
		valueOr(r.IP), valueOr(r.ASN), valueOr(r.Org),
		valueOr(r.Country), valueOr(r.City), errSuffix(r.Error))
}

// Traceroute renders the route capture result.
func Traceroute(r *probe.TracerouteResult, mode Mode) string {
	if r == nil {
		return noData
	}
	if mode == ModeBeginner {
		if r.OK {
			return "🗺️ Network route to the server was captured."
		}
		return "⚠️ Traceroute did not complete."
	}
	lines := 0
	if r.Raw != "" {
		lines = strings.Count(r.Raw, "\n") + 1
	}
	return fmt.Sprintf("traceroute ok=%t lines=%d%s", r.OK, lines, errSuffix(r.Error))
}

func valueOr(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func attr(m map[string]string, key string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return placeholder
}

func timeOr(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return t.Format(time.RFC3339)
}

func intOr(n *int) string {
	if n == nil {
		return placeholder
	}
	return fmt.Sprintf("%d", *n)
}

func floatOr(f *float64) string {
	if f == nil {
		return placeholder
	}
	return fmt.Sprintf("%.2f", *f)
}

func errSuffix(err string) string {
	if err == "" {
		return ""
	}
	return " error=" + err
}
