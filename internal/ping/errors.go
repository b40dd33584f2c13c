package ping

import (
	"errors"
	"os"
	"strings"
)

var (
	// ErrInvalidHost is returned for hosts that are empty or unsafe to hand
	// to the ping command.
	ErrInvalidHost = errors.New("invalid host")
	// ErrPermissionDenied marks a raw socket that could not be opened for
	// lack of privilege.
	ErrPermissionDenied = errors.New("raw socket permission denied")
	// ErrNoLatency is the reason recorded when ping output has no usable time.
	ErrNoLatency = errors.New("no latency in ping output")
)

func isPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	for _, errno := range privilegeErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "operation not permitted") || strings.Contains(msg, "permission denied")
}
