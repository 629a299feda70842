// Package report renders a diagnosis result as a Markdown document
// suitable for sharing or archiving.
package report

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ndtran/netdiag/internal/diagnose"
)

const markdownTemplate = `# Network Diagnostics Report

**Target:** {{ .Target }}
**Generated:** {{ .Generated }}
**Health Score:** {{ .Score }}/100

## Summary

{{ .Summary }}
{{- if .Suggestions }}

## Fix Suggestions
{{ range .Suggestions }}
- {{ . }}
{{- end }}
{{- end }}

## Key Results
{{ range .Checks }}
- **{{ .Name }}:** {{ .Explanation }}
{{- end }}
`

var suggestions = map[string]string{
	diagnose.NamespaceDNS:        "Verify the domain is spelled correctly and its DNS records exist.",
	diagnose.NamespaceSSL:        "Renew or reissue the TLS certificate, and check the server presents the full chain.",
	diagnose.NamespaceHTTP:       "Check the web server is running and not returning an error status.",
	diagnose.NamespacePing:       "The host may block ICMP; this is common and not always a fault.",
	diagnose.NamespaceGeoIP:      "Location lookup failed; the upstream GeoIP service may be unavailable.",
	diagnose.NamespaceTraceroute: "Re-run traceroute manually to inspect where the route stalls.",
}

var checkTitles = map[string]string{
	diagnose.NamespaceDNS:        "DNS",
	diagnose.NamespaceSSL:        "SSL",
	diagnose.NamespaceHTTP:       "HTTP",
	diagnose.NamespacePing:       "Ping",
	diagnose.NamespaceGeoIP:      "GeoIP",
	diagnose.NamespaceTraceroute: "Traceroute",
}

type check struct {
	Name        string
	Explanation string
}

type reportData struct {
	Target      string
	Generated   string
	Score       int
	Summary     string
	Suggestions []string
	Checks      []check
}

var tmpl = template.Must(template.New("report").Parse(markdownTemplate))

// Score reduces a bundle to an integer health score out of 100: the
// share of probes that passed.
func Score(b *diagnose.Bundle) int {
	ns := b.Namespaces()
	if len(ns) == 0 {
		return 0
	}
	passed := 0
	for _, n := range ns {
		if b.Passed(n) {
			passed++
		}
	}
	return passed * 100 / len(ns)
}

// Markdown renders res as a Markdown report.
func Markdown(res *diagnose.Result) (string, error) {
	ns := res.Raw.Namespaces()
	passed := 0
	var fixes []string
	checks := make([]check, 0, len(ns))
	for _, n := range ns {
		if res.Raw.Passed(n) {
			passed++
		} else if s, ok := suggestions[n]; ok {
			fixes = append(fixes, s)
		}
		checks = append(checks, check{
			Name:        checkTitles[n],
			Explanation: res.Explained[n],
		})
	}

	data := reportData{
		Target:      res.Target,
		Generated:   res.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Score:       Score(res.Raw),
		Summary:     fmt.Sprintf("%d of %d checks passed.", passed, len(ns)),
		Suggestions: fixes,
		Checks:      checks,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return sb.String(), nil
}
