package ping

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"github.com/doridoridoriand/netprobe/internal/icmppkt"
	"github.com/doridoridoriand/netprobe/internal/log"
)

// readLimit caps how much of a reply is read; any data counts as an answer.
const readLimit = 255

type listenFunc func(network, address string) (*icmp.PacketConn, error)

// RawPinger sends an ICMP echo request over a raw IPv4 socket. Opening the
// socket usually needs elevated privileges; when it cannot be opened the
// probe reports the target as unreachable with ErrPermissionDenied attached.
type RawPinger struct {
	logger *log.Logger
	listen listenFunc
}

// NewRawPinger returns a raw socket pinger that logs diagnostics to logger.
func NewRawPinger(logger *log.Logger) *RawPinger {
	if logger == nil {
		logger = log.Discard()
	}
	return &RawPinger{logger: logger.With(map[string]interface{}{"component": "raw"}), listen: icmp.ListenPacket}
}

// Ping sends one echo request and waits for any reply until the timeout.
func (p *RawPinger) Ping(ctx context.Context, target Target) Result {
	if err := ctx.Err(); err != nil {
		return Unreachable(err)
	}

	conn, err := p.listen("ip4:icmp", "0.0.0.0")
	if err != nil {
		if isPermissionError(err) {
			err = fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		p.logger.Debug("raw socket unavailable", map[string]interface{}{
			"host":  target.Host,
			"error": err.Error(),
		})
		return Unreachable(err)
	}
	defer conn.Close()

	if pc := conn.IPv4PacketConn(); pc != nil && target.TTL > 0 {
		if err := pc.SetTTL(target.TTL); err != nil {
			p.logger.Debug("set ttl failed", map[string]interface{}{"ttl": target.TTL, "error": err.Error()})
		}
	}

	if err := conn.SetReadDeadline(effectiveDeadline(ctx, target.Timeout)); err != nil {
		return Unreachable(err)
	}

	dst, err := net.ResolveIPAddr("ip4", target.Host)
	if err != nil {
		return Unreachable(err)
	}

	packet := icmppkt.DefaultEcho()
	start := time.Now()
	// Send failures surface as a read timeout below.
	_, _ = conn.WriteTo(packet, dst)

	buf := make([]byte, readLimit)
	n, peer, err := conn.ReadFrom(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return Unreachable(fmt.Errorf("ping timeout: %w", err))
		}
		return Unreachable(err)
	}
	if n == 0 {
		return Unreachable(fmt.Errorf("empty reply from %v", peer))
	}
	result := Reached(time.Since(start))

	if reply, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), buf[:n]); err == nil {
		p.logger.Debug("raw reply", map[string]interface{}{
			"host": target.Host,
			"peer": fmt.Sprint(peer),
			"type": fmt.Sprint(reply.Type),
		})
	}
	return result
}
