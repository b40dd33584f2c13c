package netprobe

import (
	"fmt"
	"strings"
)

// Method selects the probing strategy.
type Method int

const (
	// MethodExec runs the system ping command. It is the default.
	MethodExec Method = iota
	// MethodTCP times a TCP handshake with the configured port.
	MethodTCP
	// MethodRaw sends an ICMP echo request over a raw socket and needs
	// elevated privileges on most systems.
	MethodRaw
)

var methodNames = map[Method]string{
	MethodExec: "exec",
	MethodTCP:  "tcp",
	MethodRaw:  "raw",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a method name to a Method. "fsockopen" and "socket" are
// accepted as aliases of tcp and raw; an empty name selects exec.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exec":
		return MethodExec, nil
	case "tcp", "fsockopen":
		return MethodTCP, nil
	case "raw", "socket":
		return MethodRaw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
	}
}
