package probe

import (
	"context"
	"math"
	"time"

	"github.com/go-ping/ping"
)

// PingProbe measures the ICMP round-trip time to the target. A timeout
// is reported as a failure value, never as a fault.
type PingProbe struct {
	Timeout    time.Duration
	Privileged bool // raw ICMP sockets instead of unprivileged UDP
}

// Check sends a single echo request and reports the round-trip time in
// milliseconds, rounded to two decimals.
func (p *PingProbe) Check(ctx context.Context, target string) *PingResult {
	host := Normalize(target)
	result := &PingResult{Status: Status{Host: host}}

	if host == "" {
		result.Error = errEmptyHost
		return result
	}

	pinger, err := ping.NewPinger(host)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.Privileged)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	if err := pinger.Run(); err != nil {
		result.Error = err.Error()
		return result
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		result.Error = "timeout"
		return result
	}

	latency := math.Round(stats.AvgRtt.Seconds()*1000*100) / 100
	result.LatencyMs = &latency
	result.OK = true
	return result
}
