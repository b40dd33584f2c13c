package ping

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var (
	timePattern = regexp.MustCompile(`time[<=]([0-9.]+) ?ms`)
	ipv4Pattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
	hostPattern = regexp.MustCompile(`^[A-Za-z0-9.:_%-]+$`)
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecPinger invokes the system ping command for a single echo request.
type ExecPinger struct {
	goos string
	run  runFunc
}

// NewExternalPinger returns a ping implementation that shells out to ping.
func NewExternalPinger() *ExecPinger {
	return &ExecPinger{goos: runtime.GOOS, run: combinedOutput}
}

// Ping runs the system ping command and parses the latency from its output.
// The command's exit status is ignored; its output decides the outcome.
func (p *ExecPinger) Ping(ctx context.Context, target Target) Result {
	host, err := SanitizeHost(target.Host)
	if err != nil {
		return Unreachable(err)
	}

	args := PingArgs(p.goos, host, target.TTL, target.Timeout)
	out, runErr := p.run(ctx, "ping", args...)
	output := string(out)

	result := ParseLatency(output)
	result.Output = output
	if !result.Success && runErr != nil {
		result.Error = fmt.Errorf("external ping failed: %w", runErr)
	}
	return result
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// SanitizeHost rejects hosts that could be read as a ping option or that
// contain characters no hostname or IP literal uses.
func SanitizeHost(host string) (string, error) {
	if host == "" {
		return "", fmt.Errorf("%w: host name not supplied", ErrInvalidHost)
	}
	if strings.HasPrefix(host, "-") {
		return "", fmt.Errorf("%w: %q starts with '-'", ErrInvalidHost, host)
	}
	if !hostPattern.MatchString(host) {
		return "", fmt.Errorf("%w: %q contains unsupported characters", ErrInvalidHost, host)
	}
	return host, nil
}

// PingArgs builds the ping argument vector for goos. Exactly one echo request
// is sent.
func PingArgs(goos, host string, ttl int, timeout time.Duration) []string {
	switch goos {
	case "windows":
		// -n count, -i ttl, -w timeout in milliseconds
		timeoutMs := maxInt(1, int(timeout.Milliseconds()))
		return []string{"-n", "1", "-i", strconv.Itoa(ttl), "-w", strconv.Itoa(timeoutMs), host}
	case "darwin", "ios", "freebsd", "netbsd", "openbsd", "dragonfly":
		// -m ttl, -t timeout in seconds
		return []string{"-n", "-c", "1", "-m", strconv.Itoa(ttl), "-t", strconv.Itoa(timeoutSeconds(timeout)), host}
	default:
		// -t ttl, -W timeout in seconds
		return []string{"-n", "-c", "1", "-t", strconv.Itoa(ttl), "-W", strconv.Itoa(timeoutSeconds(timeout)), host}
	}
}

// ParseLatency reads the reply line of ping output. Blank lines are dropped
// so that the first reply is always the second remaining line; the third line
// is appended because some platforms wrap the reply.
func ParseLatency(output string) Result {
	lines := nonBlankLines(output)
	if len(lines) < 2 {
		return Unreachable(ErrNoLatency)
	}
	reply := lines[1]
	if len(lines) > 2 {
		reply += lines[2]
	}

	m := timePattern.FindStringSubmatch(reply)
	if len(m) < 2 {
		return Unreachable(ErrNoLatency)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Unreachable(fmt.Errorf("%w: %v", ErrNoLatency, err))
	}
	if value <= 0 {
		return Unreachable(fmt.Errorf("%w: non-positive time %q", ErrNoLatency, m[1]))
	}
	return Result{Success: true, Latency: roundLatency(value)}
}

// ExtractIPv4 returns the first dotted-quad address found in output.
func ExtractIPv4(output string) (string, bool) {
	addr := ipv4Pattern.FindString(output)
	return addr, addr != ""
}

func nonBlankLines(output string) []string {
	raw := strings.Split(output, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func timeoutSeconds(timeout time.Duration) int {
	secs := int((timeout + time.Second - 1) / time.Second)
	return maxInt(1, secs)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
