// Package netprobe measures reachability and round-trip latency to a single
// host. A probe runs the system ping command, times a TCP handshake, or sends
// an ICMP echo request over a raw socket, and yields either a latency in
// milliseconds or an unreachable result.
//
//	p := netprobe.New("example.com", netprobe.WithTimeout(2*time.Second))
//	res, err := p.Probe(netprobe.MethodExec)
//
// An unreachable host is not an error: Probe only fails for unusable input.
// A Prober is meant for use by one goroutine at a time.
package netprobe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/doridoridoriand/netprobe/internal/log"
	"github.com/doridoridoriand/netprobe/internal/ping"
)

// Result is the outcome of one probe.
type Result = ping.Result

// Target is the configuration handed to a Pinger.
type Target = ping.Target

// Pinger is one probing strategy.
type Pinger = ping.Pinger

// Logger writes JSON log lines.
type Logger = log.Logger

// NewLogger returns a Logger writing entries at or above level ("debug",
// "info", "warn" or "error") to w.
func NewLogger(w io.Writer, level string) *Logger {
	logger := log.NewLogger(log.ParseLevel(level))
	logger.SetOutput(w)
	return logger
}

// Defaults used by New.
const (
	DefaultTTL     = 255
	DefaultTimeout = 3 * time.Second
	DefaultPort    = ping.DefaultPort
)

// Prober holds the target configuration and dispatches probes.
type Prober struct {
	host    string
	ttl     int
	timeout time.Duration
	port    int

	lastOutput string

	logger  *log.Logger
	pingers map[Method]ping.Pinger
}

// Option customises a Prober.
type Option func(*Prober)

// WithTTL sets the hop limit used by the exec and raw methods.
func WithTTL(ttl int) Option {
	return func(p *Prober) { p.ttl = ttl }
}

// WithTimeout sets how long a probe may wait for an answer.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) { p.timeout = timeout }
}

// WithPort sets the port used by the tcp method.
func WithPort(port int) Option {
	return func(p *Prober) { p.port = port }
}

// WithLogger sends probe diagnostics to logger. Probers are silent by default.
func WithLogger(logger *Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPinger replaces the implementation behind one of the three methods.
// Other Method values are ignored.
func WithPinger(method Method, pinger Pinger) Option {
	return func(p *Prober) {
		if _, ok := methodNames[method]; ok && pinger != nil {
			p.pingers[method] = pinger
		}
	}
}

// New returns a Prober for host with a TTL of 255, a 3 second timeout and
// port 80 unless overridden by opts.
func New(host string, opts ...Option) *Prober {
	p := &Prober{
		host:    host,
		ttl:     DefaultTTL,
		timeout: DefaultTimeout,
		port:    DefaultPort,
		logger:  log.Discard(),
		pingers: make(map[Method]ping.Pinger, 3),
	}
	for _, opt := range opts {
		opt(p)
	}
	if _, ok := p.pingers[MethodExec]; !ok {
		p.pingers[MethodExec] = ping.NewExternalPinger()
	}
	if _, ok := p.pingers[MethodTCP]; !ok {
		p.pingers[MethodTCP] = ping.NewTCPPinger()
	}
	if _, ok := p.pingers[MethodRaw]; !ok {
		p.pingers[MethodRaw] = ping.NewRawPinger(p.logger)
	}
	return p
}

// Host returns the configured host.
func (p *Prober) Host() string { return p.host }

// SetHost sets the host name or IP address to probe.
func (p *Prober) SetHost(host string) *Prober {
	p.host = host
	return p
}

// TTL returns the configured hop limit.
func (p *Prober) TTL() int { return p.ttl }

// SetTTL sets the hop limit. By convention 0 is the same host, 1 the same
// subnet, 32 the same site, 64 the same region, 128 the same continent and
// 255 unrestricted. The tcp method ignores it.
func (p *Prober) SetTTL(ttl int) *Prober {
	p.ttl = ttl
	return p
}

// Timeout returns the configured timeout.
func (p *Prober) Timeout() time.Duration { return p.timeout }

// SetTimeout sets how long a probe may wait for an answer.
func (p *Prober) SetTimeout(timeout time.Duration) *Prober {
	p.timeout = timeout
	return p
}

// Port returns the port used by the tcp method.
func (p *Prober) Port() int { return p.port }

// SetPort sets the port used by the tcp method. ICMP has no ports, so the
// other methods ignore it.
func (p *Prober) SetPort(port int) *Prober {
	p.port = port
	return p
}

// LastCommandOutput returns the output captured by the most recent exec
// probe, or "" if none has run.
func (p *Prober) LastCommandOutput() string { return p.lastOutput }

// ResolvedIPAddress returns the first IPv4 address in the output of the most
// recent exec probe: the address the system ping actually contacted.
func (p *Prober) ResolvedIPAddress() (string, bool) {
	return ping.ExtractIPv4(p.lastOutput)
}

// Probe probes the host once with method.
func (p *Prober) Probe(method Method) (Result, error) {
	return p.ProbeContext(context.Background(), method)
}

// ProbeByName probes the host once with the method called name.
func (p *Prober) ProbeByName(name string) (Result, error) {
	if err := p.checkHost(); err != nil {
		return Result{}, err
	}
	method, err := ParseMethod(name)
	if err != nil {
		return Result{}, err
	}
	return p.Probe(method)
}

// ProbeContext is Probe with a context that can end the probe before the
// timeout expires.
func (p *Prober) ProbeContext(ctx context.Context, method Method) (Result, error) {
	if err := p.checkHost(); err != nil {
		return Result{}, err
	}
	pinger, ok := p.pingers[method]
	if !ok {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedMethod, method)
	}
	target, err := p.target(method)
	if err != nil {
		p.logger.LogError("netprobe", err, map[string]interface{}{"method": method.String()})
		return Result{}, err
	}

	result := pinger.Ping(ctx, target)
	if method == MethodExec {
		p.lastOutput = result.Output
	}
	p.logger.LogProbeResult(target.Host, method.String(), result.Success, result.Latency, result.Error)
	return result, nil
}

func (p *Prober) checkHost() error {
	if p.host == "" {
		return fmt.Errorf("%w: host name not supplied", ErrInvalidInput)
	}
	if _, err := ping.SanitizeHost(p.host); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (p *Prober) target(method Method) (ping.Target, error) {
	if p.timeout <= 0 {
		return ping.Target{}, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidInput, p.timeout)
	}
	if method == MethodTCP && (p.port < 1 || p.port > 65535) {
		return ping.Target{}, fmt.Errorf("%w: port %d out of range", ErrInvalidInput, p.port)
	}
	return ping.Target{Host: p.host, TTL: p.ttl, Timeout: p.timeout, Port: p.port}, nil
}
