//go:build property

package icmppkt

import (
	"encoding/binary"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestChecksumFoldsToZeroProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("built packets verify", prop.ForAll(
		func(id, seq uint16, payload []byte) bool {
			return Valid(BuildEcho(id, seq, payload))
		},
		gen.UInt16(),
		gen.UInt16(),
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("word sum including checksum is all ones", prop.ForAll(
		func(payload []byte) bool {
			pkt := BuildEcho(0, 0, payload)
			if len(pkt)%2 == 1 {
				pkt = append(pkt, 0)
			}
			var sum uint32
			for i := 0; i < len(pkt); i += 2 {
				sum += uint32(binary.BigEndian.Uint16(pkt[i:]))
			}
			for sum>>16 != 0 {
				sum = (sum >> 16) + (sum & 0xffff)
			}
			return sum == 0xffff
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("checksum is deterministic and pure", prop.ForAll(
		func(data []byte) bool {
			before := append([]byte(nil), data...)
			first := Checksum(data)
			second := Checksum(data)
			if first != second {
				return false
			}
			for i := range data {
				if data[i] != before[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
