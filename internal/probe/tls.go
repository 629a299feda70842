package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"net"
	"strings"
	"time"
)

const defaultTLSPort = "443"

// TLSProbe fetches and inspects the leaf certificate the target
// presents on its TLS port.
type TLSProbe struct {
	Timeout time.Duration
	Port    string // defaults to 443
}

// Check connects to host:port, grabs the leaf certificate, and judges
// it by expiry. The handshake runs without chain verification so that
// expired or otherwise invalid certificates can still be inspected;
// expiry is evaluated explicitly from the certificate's NotAfter.
func (t *TLSProbe) Check(ctx context.Context, target string) *TLSResult {
	host := Normalize(target)
	result := &TLSResult{Status: Status{Host: host}}

	if host == "" {
		result.Error = errEmptyHost
		return result
	}

	port := t.Port
	if port == "" {
		port = defaultTLSPort
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: true, // expiry is judged below, not by the verifier
		},
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		result.Error = "no peer certificate presented"
		return result
	}

	return resultFromCertificate(host, state.PeerCertificates[0])
}

func resultFromCertificate(host string, cert *x509.Certificate) *TLSResult {
	expiresAt := cert.NotAfter.UTC()
	daysLeft := int(time.Until(cert.NotAfter).Hours() / 24)

	result := &TLSResult{
		Status:    Status{OK: daysLeft > 0, Host: host},
		Subject:   nameAttributes(cert.Subject),
		Issuer:    nameAttributes(cert.Issuer),
		ExpiresAt: &expiresAt,
		DaysLeft:  &daysLeft,
	}
	if !result.OK {
		result.Error = "certificate has expired"
	}
	return result
}

// nameAttributes flattens a distinguished name into the attribute map
// exposed to callers, using the conventional long attribute names.
func nameAttributes(name pkix.Name) map[string]string {
	attrs := make(map[string]string)
	if name.CommonName != "" {
		attrs["commonName"] = name.CommonName
	}
	if len(name.Organization) > 0 {
		attrs["organizationName"] = strings.Join(name.Organization, ", ")
	}
	if len(name.OrganizationalUnit) > 0 {
		attrs["organizationalUnitName"] = strings.Join(name.OrganizationalUnit, ", ")
	}
	if len(name.Country) > 0 {
		attrs["countryName"] = strings.Join(name.Country, ", ")
	}
	if len(name.Province) > 0 {
		attrs["stateOrProvinceName"] = strings.Join(name.Province, ", ")
	}
	if len(name.Locality) > 0 {
		attrs["localityName"] = strings.Join(name.Locality, ", ")
	}
	return attrs
}
