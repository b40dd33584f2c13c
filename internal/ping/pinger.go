package ping

import (
	"context"
	"math"
	"time"
)

// DefaultPort is the TCP port probed when none is configured.
const DefaultPort = 80

// Target is the configuration for a single probe.
type Target struct {
	Host    string
	TTL     int
	Timeout time.Duration
	Port    int
}

// Result captures a single probe outcome. Latency is in milliseconds rounded
// to four decimal places and is zero when the target was unreachable.
type Result struct {
	Latency float64
	Success bool
	// Error explains why the target was unreachable. It is diagnostic only;
	// an unreachable host is an ordinary outcome.
	Error error
	// Output holds the verbatim output of the ping command for exec probes.
	Output string
}

// Reached builds a successful result from a measured round trip.
func Reached(rtt time.Duration) Result {
	return Result{Success: true, Latency: roundLatency(float64(rtt) / float64(time.Millisecond))}
}

// Unreachable builds a failed result carrying the reason.
func Unreachable(err error) Result {
	return Result{Success: false, Error: err}
}

// RTT converts the latency back into a duration.
func (r Result) RTT() time.Duration {
	return time.Duration(math.Round(r.Latency * float64(time.Millisecond)))
}

// Pinger sends a single probe and returns the result.
type Pinger interface {
	Ping(ctx context.Context, target Target) Result
}

func roundLatency(ms float64) float64 {
	if ms <= 0 {
		return 0
	}
	return math.Round(ms*1e4) / 1e4
}

func effectiveDeadline(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}
