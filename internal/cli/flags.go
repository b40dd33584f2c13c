// Package cli holds the command-line flag values that override config.
package cli

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/doridoridoriand/netprobe"
	"github.com/doridoridoriand/netprobe/internal/config"
	"github.com/doridoridoriand/netprobe/internal/log"
)

// TTLFlag records a hop limit between 0 and 255.
type TTLFlag struct {
	value int
	set   bool
}

func (f *TTLFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < 0 || v > 255 {
		return fmt.Errorf("ttl must be between 0 and 255, got %d", v)
	}
	f.value, f.set = v, true
	return nil
}

func (f *TTLFlag) String() string {
	if !f.set {
		return ""
	}
	return strconv.Itoa(f.value)
}

func (f *TTLFlag) Value() (int, bool) {
	return f.value, f.set
}

// TimeoutFlag records a positive timeout given as a duration ("1500ms") or
// whole seconds ("2").
type TimeoutFlag struct {
	value time.Duration
	set   bool
}

func (f *TimeoutFlag) Set(s string) error {
	v, err := config.ParseTimeout(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", v)
	}
	f.value, f.set = v, true
	return nil
}

func (f *TimeoutFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value.String()
}

func (f *TimeoutFlag) Value() (time.Duration, bool) {
	return f.value, f.set
}

// PortFlag records a TCP port.
type PortFlag struct {
	value int
	set   bool
}

func (f *PortFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < 1 || v > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", v)
	}
	f.value, f.set = v, true
	return nil
}

func (f *PortFlag) String() string {
	if !f.set {
		return ""
	}
	return strconv.Itoa(f.value)
}

func (f *PortFlag) Value() (int, bool) {
	return f.value, f.set
}

// MethodFlag records a probe method. Aliases are stored under their
// canonical name, so "fsockopen" reads back as "tcp".
type MethodFlag struct {
	value netprobe.Method
	set   bool
}

func (f *MethodFlag) Set(s string) error {
	m, err := netprobe.ParseMethod(s)
	if err != nil {
		return err
	}
	f.value, f.set = m, true
	return nil
}

func (f *MethodFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value.String()
}

func (f *MethodFlag) Value() (string, bool) {
	if !f.set {
		return "", false
	}
	return f.value.String(), true
}

// LevelFlag records a log level name.
type LevelFlag struct {
	value string
	set   bool
}

func (f *LevelFlag) Set(s string) error {
	if _, err := log.LevelFromString(s); err != nil {
		return err
	}
	f.value, f.set = s, true
	return nil
}

func (f *LevelFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value
}

func (f *LevelFlag) Value() (string, bool) {
	return f.value, f.set
}

// Flags groups every flag that can override a config file setting.
type Flags struct {
	Method   MethodFlag
	TTL      TTLFlag
	Timeout  TimeoutFlag
	Port     PortFlag
	LogLevel LevelFlag
}

// Register binds the flags, with their short aliases, to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.Var(&f.Method, "method", "probe method: exec|tcp|raw (override config)")
	fs.Var(&f.Method, "m", "probe method: exec|tcp|raw (override config)")
	fs.Var(&f.TTL, "ttl", "hop limit for exec and raw probes (override config)")
	fs.Var(&f.Timeout, "timeout", "probe timeout, e.g. 2s or 2 (override config)")
	fs.Var(&f.Timeout, "t", "probe timeout, e.g. 2s or 2 (override config)")
	fs.Var(&f.Port, "port", "port for tcp probes (override config)")
	fs.Var(&f.Port, "p", "port for tcp probes (override config)")
	fs.Var(&f.LogLevel, "log-level", "log level: debug|info|warn|error (override config)")
}

// Overrides returns the values that were set on the command line.
func (f *Flags) Overrides() config.CLIOverrides {
	var overrides config.CLIOverrides

	if v, ok := f.Method.Value(); ok {
		overrides.Method = &v
	}
	if v, ok := f.TTL.Value(); ok {
		overrides.TTL = &v
	}
	if v, ok := f.Timeout.Value(); ok {
		overrides.Timeout = &v
	}
	if v, ok := f.Port.Value(); ok {
		overrides.Port = &v
	}
	if v, ok := f.LogLevel.Value(); ok {
		overrides.LogLevel = &v
	}
	return overrides
}
