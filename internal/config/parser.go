package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/doridoridoriand/netprobe"
	"github.com/doridoridoriand/netprobe/internal/log"
)

const directivePrefix = "netprobe:"

// NetprobeParser implements the Parser interface.
type NetprobeParser struct{}

// Defaults returns baseline settings used before config overrides.
func Defaults() Options {
	return Options{
		TTL:      netprobe.DefaultTTL,
		Timeout:  netprobe.DefaultTimeout,
		Port:     netprobe.DefaultPort,
		Method:   netprobe.MethodExec.String(),
		LogLevel: "info",
	}
}

// LoadConfig reads netprobe directives from path and applies CLI overrides.
// An empty path yields the defaults with overrides applied.
func (p NetprobeParser) LoadConfig(path string, overrides CLIOverrides) (Options, error) {
	opts := Defaults()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Options{}, err
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "#") {
				rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
				if !strings.HasPrefix(rest, directivePrefix) {
					continue
				}
			}

			pairs, err := p.ParseDirective(line)
			if err != nil {
				return Options{}, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			if err := applyDirective(&opts, pairs); err != nil {
				return Options{}, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		}
		if err := scanner.Err(); err != nil {
			return Options{}, err
		}
	}

	applyCLIOverrides(&opts, overrides)
	if err := validate(opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ParseDirective extracts key=value pairs from a directive line.
func (p NetprobeParser) ParseDirective(line string) (map[string]string, error) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
	}
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return nil, fmt.Errorf("directive line must start with '# netprobe:' or 'netprobe:': %q", line)
	}
	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, directivePrefix))
	if payload == "" {
		return map[string]string{}, nil
	}

	pairs := make(map[string]string)
	for _, token := range strings.Fields(payload) {
		kv := strings.SplitN(token, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid directive token: %q", token)
		}
		pairs[kv[0]] = kv[1]
	}
	return pairs, nil
}

func applyDirective(opts *Options, pairs map[string]string) error {
	for key, val := range pairs {
		switch key {
		case "ttl":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid ttl: %w", err)
			}
			opts.TTL = n
		case "timeout":
			d, err := ParseTimeout(val)
			if err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			}
			opts.Timeout = d
		case "port":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid port: %w", err)
			}
			opts.Port = n
		case "method":
			if _, err := netprobe.ParseMethod(val); err != nil {
				return err
			}
			opts.Method = val
		case "log.level":
			if _, err := log.LevelFromString(val); err != nil {
				return fmt.Errorf("invalid log.level: %w", err)
			}
			opts.LogLevel = val
		default:
			// Ignore unknown keys for forward compatibility.
		}
	}
	return nil
}

func applyCLIOverrides(opts *Options, overrides CLIOverrides) {
	if overrides.TTL != nil {
		opts.TTL = *overrides.TTL
	}
	if overrides.Timeout != nil {
		opts.Timeout = *overrides.Timeout
	}
	if overrides.Port != nil {
		opts.Port = *overrides.Port
	}
	if overrides.Method != nil {
		opts.Method = *overrides.Method
	}
	if overrides.LogLevel != nil {
		opts.LogLevel = *overrides.LogLevel
	}
}

func validate(opts Options) error {
	if opts.TTL < 0 || opts.TTL > 255 {
		return fmt.Errorf("ttl must be between 0 and 255, got %d", opts.TTL)
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", opts.Timeout)
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", opts.Port)
	}
	if _, err := netprobe.ParseMethod(opts.Method); err != nil {
		return err
	}
	return nil
}

// ParseTimeout accepts a Go duration or a bare number of seconds.
func ParseTimeout(val string) (time.Duration, error) {
	if isDigits(val) {
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(val)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
