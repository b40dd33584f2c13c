// Package icmppkt builds ICMPv4 echo request packets and computes the
// Internet checksum (RFC 1071) carried in their header.
package icmppkt

import (
	"encoding/binary"

	"golang.org/x/net/ipv4"
)

// HeaderLen is the size of an ICMP echo header: type, code, checksum,
// identifier and sequence number.
const HeaderLen = 8

// DefaultPayload is the echo data sent when no payload is given.
var DefaultPayload = []byte("Ping")

// Checksum returns the one's complement of the one's complement sum of b,
// read as big-endian 16-bit words. An odd trailing byte is padded with zero.
func Checksum(b []byte) uint16 {
	var sum uint32
	n := len(b)
	for i := 0; i+1 < n; i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if n%2 == 1 {
		sum += uint32(b[n-1]) << 8
	}
	for sum>>16 != 0 {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}

// Valid reports whether b, which already carries its checksum, folds to zero.
func Valid(b []byte) bool {
	return Checksum(b) == 0
}

// BuildEcho assembles an echo request with the checksum patched in. The
// checksum is computed over the whole packet with the checksum field zeroed.
func BuildEcho(id, seq uint16, payload []byte) []byte {
	b := make([]byte, HeaderLen+len(payload))
	b[0] = byte(ipv4.ICMPTypeEcho)
	b[1] = 0
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[6:8], seq)
	copy(b[HeaderLen:], payload)

	binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	return b
}

// DefaultEcho is the packet sent by the raw prober: identifier 0, sequence 0
// and the "Ping" payload.
func DefaultEcho() []byte {
	return BuildEcho(0, 0, DefaultPayload)
}
