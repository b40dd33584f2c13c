package netprobe

import (
	"errors"

	"github.com/doridoridoriand/netprobe/internal/ping"
)

var (
	// ErrInvalidInput is returned when the probe configuration cannot be
	// used, for example an empty or unsafe host.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedMethod is returned for method names or values that are
	// not one of exec, tcp or raw.
	ErrUnsupportedMethod = errors.New("unsupported ping method")
	// ErrPermissionDenied is attached to the Error field of a raw probe
	// result when the raw socket could not be opened.
	ErrPermissionDenied = ping.ErrPermissionDenied
)
