package icmppkt

import (
	"bytes"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func TestChecksumRFC1071Example(t *testing.T) {
	data := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	if got := Checksum(data); got != 0x220d {
		t.Fatalf("expected checksum 0x220d, got %#04x", got)
	}
}

func TestChecksumOddLength(t *testing.T) {
	odd := []byte{0x12, 0x34, 0x56}
	padded := []byte{0x12, 0x34, 0x56, 0x00}
	if Checksum(odd) != Checksum(padded) {
		t.Fatalf("expected odd buffer to be padded with zero, got %#04x vs %#04x", Checksum(odd), Checksum(padded))
	}
}

func TestChecksumEmptyAndZero(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "nil", data: nil, want: 0xffff},
		{name: "zeros", data: make([]byte, 16), want: 0xffff},
		{name: "all ones", data: []byte{0xff, 0xff}, want: 0x0000},
		{name: "carry fold", data: []byte{0xff, 0xff, 0x00, 0x01}, want: 0xfffe},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.data); got != tc.want {
				t.Fatalf("Checksum(%x) = %#04x, want %#04x", tc.data, got, tc.want)
			}
		})
	}
}

func TestDefaultEchoLayout(t *testing.T) {
	want := []byte{0x08, 0x00, 0x39, 0x2f, 0x00, 0x00, 0x00, 0x00, 'P', 'i', 'n', 'g'}
	if got := DefaultEcho(); !bytes.Equal(got, want) {
		t.Fatalf("unexpected default echo packet: % x", got)
	}
}

func TestBuildEchoFields(t *testing.T) {
	pkt := BuildEcho(0x1234, 0xabcd, []byte("payload"))
	if len(pkt) != HeaderLen+len("payload") {
		t.Fatalf("expected %d bytes, got %d", HeaderLen+len("payload"), len(pkt))
	}
	if pkt[0] != 8 || pkt[1] != 0 {
		t.Fatalf("expected type 8 code 0, got %d/%d", pkt[0], pkt[1])
	}
	if pkt[4] != 0x12 || pkt[5] != 0x34 || pkt[6] != 0xab || pkt[7] != 0xcd {
		t.Fatalf("unexpected identifier/sequence bytes: % x", pkt[4:8])
	}
	if string(pkt[HeaderLen:]) != "payload" {
		t.Fatalf("unexpected payload %q", pkt[HeaderLen:])
	}
	if !Valid(pkt) {
		t.Fatalf("expected packet checksum to verify")
	}
}

func TestBuildEchoOddPayloadVerifies(t *testing.T) {
	pkt := BuildEcho(1, 2, []byte("abc"))
	if !Valid(pkt) {
		t.Fatalf("expected odd-length packet checksum to verify")
	}
}

func TestValidDetectsCorruption(t *testing.T) {
	pkt := DefaultEcho()
	pkt[len(pkt)-1] ^= 0xff
	if Valid(pkt) {
		t.Fatalf("expected corrupted packet to fail verification")
	}
}

func TestBuildEchoMatchesXNetMarshal(t *testing.T) {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: 7, Seq: 42, Data: []byte("netprobe")},
	}
	want, err := msg.Marshal(nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := BuildEcho(7, 42, []byte("netprobe")); !bytes.Equal(got, want) {
		t.Fatalf("expected % x, got % x", want, got)
	}
}

func TestDefaultEchoParsesAsEcho(t *testing.T) {
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), DefaultEcho())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg.Type != ipv4.ICMPTypeEcho {
		t.Fatalf("expected echo request, got %v", msg.Type)
	}
	body, ok := msg.Body.(*icmp.Echo)
	if !ok {
		t.Fatalf("expected echo body, got %T", msg.Body)
	}
	if body.ID != 0 || body.Seq != 0 || string(body.Data) != "Ping" {
		t.Fatalf("unexpected echo body: %+v", body)
	}
}

func TestBuildEchoMatchesGopacketSerialize(t *testing.T) {
	echo := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       0x1234,
		Seq:      1,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, echo, gopacket.Payload("Ping")); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got := BuildEcho(0x1234, 1, DefaultPayload); !bytes.Equal(got, buf.Bytes()) {
		t.Fatalf("expected % x, got % x", buf.Bytes(), got)
	}
}

func TestBuildEchoDecodesWithGopacket(t *testing.T) {
	pkt := BuildEcho(0xbeef, 9, []byte("odd"))

	var echo layers.ICMPv4
	if err := echo.DecodeFromBytes(pkt, gopacket.NilDecodeFeedback); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if echo.TypeCode != layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0) {
		t.Fatalf("expected echo request, got %v", echo.TypeCode)
	}
	if echo.Id != 0xbeef || echo.Seq != 9 {
		t.Fatalf("unexpected id/seq: %#04x/%d", echo.Id, echo.Seq)
	}
	if echo.Checksum != Checksum(append([]byte{pkt[0], pkt[1], 0, 0}, pkt[4:]...)) {
		t.Fatalf("checksum %#04x does not match a recomputation", echo.Checksum)
	}
	if string(echo.LayerPayload()) != "odd" {
		t.Fatalf("expected payload odd, got %q", echo.LayerPayload())
	}
}
