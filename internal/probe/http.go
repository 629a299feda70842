package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxRedirects = 10

// HTTPProbe performs a redirect-following GET against the target and
// records status, timing and the redirect chain.
type HTTPProbe struct {
	Timeout time.Duration
}

// Check issues a GET request to the target URL. Targets without a
// scheme are fetched over https. A response with status below 400
// counts as reachable; transport errors become failure values.
func (h *HTTPProbe) Check(ctx context.Context, target string) *HTTPResult {
	url := target
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	result := &HTTPResult{
		Status: Status{Host: Normalize(target)},
		URL:    url,
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	chain := []int{}
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("too many redirects")
			}
			if resp := req.Response; resp != nil {
				chain = append(chain, resp.StatusCode)
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	// Drain the body so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	result.OK = resp.StatusCode < http.StatusBadRequest
	result.StatusCode = resp.StatusCode
	result.ResponseTimeMs = time.Since(start).Milliseconds()
	result.FinalURL = resp.Request.URL.String()
	result.RedirectChain = chain
	return result
}
