package probe

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	defaultMaxHops = 15
	maxRawLines    = 50
)

// tracerouteCommand describes the platform-specific tool invocation.
type tracerouteCommand struct {
	name  string
	flags func(maxHops int) []string
}

// Tool name and flag set differ between Windows and POSIX systems.
var tracerouteCommands = map[string]tracerouteCommand{
	"windows": {
		name:  "tracert",
		flags: func(h int) []string { return []string{"-d", "-h", strconv.Itoa(h)} },
	},
	"default": {
		name:  "traceroute",
		flags: func(h int) []string { return []string{"-n", "-m", strconv.Itoa(h)} },
	},
}

func commandFor(goos string) tracerouteCommand {
	if cmd, ok := tracerouteCommands[goos]; ok {
		return cmd
	}
	return tracerouteCommands["default"]
}

// TracerouteProbe runs the platform traceroute tool against the target
// and captures the tail of its output.
type TracerouteProbe struct {
	Timeout time.Duration
	MaxHops int
}

// Check runs traceroute (tracert on Windows) with a hop limit and an
// overall timeout. Output is truncated to the last 50 lines to bound
// memory. The run counts as successful on a zero exit code or when the
// output carries a recognizable traceroute header.
func (t *TracerouteProbe) Check(ctx context.Context, target string) *TracerouteResult {
	host := Normalize(target)
	result := &TracerouteResult{Status: Status{Host: host}}

	if host == "" {
		result.Error = errEmptyHost
		return result
	}

	maxHops := t.MaxHops
	if maxHops <= 0 {
		maxHops = defaultMaxHops
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tool := commandFor(runtime.GOOS)
	args := append(tool.flags(maxHops), host)

	out, err := exec.CommandContext(runCtx, tool.name, args...).Output()
	raw := string(out)
	result.Raw = tailLines(raw, maxRawLines)

	if err != nil && !strings.Contains(strings.ToLower(raw), "traceroute") {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	return result
}

// tailLines keeps at most the last n lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
