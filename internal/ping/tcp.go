package ping

import (
	"context"
	"net"
	"strconv"
	"time"
)

// TCPPinger measures the time taken to complete a TCP handshake.
//
// A completed handshake only proves that something accepted the connection
// on the port, for example a proxy or load balancer in front of the host, so
// this method can report a host as reachable when the service is not there.
type TCPPinger struct{}

// NewTCPPinger returns a pinger that connects to target.Port.
func NewTCPPinger() *TCPPinger {
	return &TCPPinger{}
}

// Ping dials host:port and returns the connect time.
func (p *TCPPinger) Ping(ctx context.Context, target Target) Result {
	port := target.Port
	if port == 0 {
		port = DefaultPort
	}
	addr := net.JoinHostPort(target.Host, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: target.Timeout}
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Unreachable(err)
	}
	rtt := time.Since(start)
	_ = conn.Close()
	return Reached(rtt)
}
