package config

import "time"

// Options holds probe defaults parsed from the config file and CLI overrides.
type Options struct {
	TTL      int
	Timeout  time.Duration
	Port     int
	Method   string
	LogLevel string
}

// CLIOverrides holds optional CLI values that override config file values.
type CLIOverrides struct {
	TTL      *int
	Timeout  *time.Duration
	Port     *int
	Method   *string
	LogLevel *string
}

// Parser defines config parsing behavior.
type Parser interface {
	LoadConfig(path string, overrides CLIOverrides) (Options, error)
	ParseDirective(line string) (map[string]string, error)
}
