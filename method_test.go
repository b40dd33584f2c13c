package netprobe

import (
	"errors"
	"testing"
)

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		name string
		want Method
	}{
		{"", MethodExec},
		{"exec", MethodExec},
		{"EXEC", MethodExec},
		{"tcp", MethodTCP},
		{"fsockopen", MethodTCP},
		{"raw", MethodRaw},
		{" socket ", MethodRaw},
	}

	for _, tc := range testCases {
		got, err := ParseMethod(tc.name)
		if err != nil {
			t.Fatalf("ParseMethod(%q) unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMethod(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseMethodUnsupported(t *testing.T) {
	for _, name := range []string{"icmp", "ping", "udp", "exe"} {
		if _, err := ParseMethod(name); !errors.Is(err, ErrUnsupportedMethod) {
			t.Fatalf("ParseMethod(%q) expected ErrUnsupportedMethod, got %v", name, err)
		}
	}
}

func TestMethodString(t *testing.T) {
	if MethodExec.String() != "exec" || MethodTCP.String() != "tcp" || MethodRaw.String() != "raw" {
		t.Fatalf("unexpected method names: %v %v %v", MethodExec, MethodTCP, MethodRaw)
	}
	if Method(7).String() != "Method(7)" {
		t.Fatalf("unexpected name for unknown method: %v", Method(7))
	}
}

func TestMethodStringRoundTrip(t *testing.T) {
	for _, m := range []Method{MethodExec, MethodTCP, MethodRaw} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip of %v gave %v (%v)", m, got, err)
		}
	}
}
