package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/doridoridoriand/netprobe"
	"github.com/doridoridoriand/netprobe/internal/cli"
	"github.com/doridoridoriand/netprobe/internal/config"
	"github.com/doridoridoriand/netprobe/internal/log"
)

const version = "0.1.0"

const (
	exitReachable   = 0
	exitUnreachable = 1
	exitUsage       = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		flagConfig  string
		flagVersion bool
		overrides   cli.Flags
	)

	fs := flag.NewFlagSet("netprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flagConfig, "config", "", "defaults file with netprobe: directives")
	fs.StringVar(&flagConfig, "c", "", "defaults file with netprobe: directives")
	overrides.Register(fs)
	fs.BoolVar(&flagVersion, "version", false, "show version")
	fs.BoolVar(&flagVersion, "v", false, "show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: netprobe [options] <host>\n\n")
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if flagVersion {
		fmt.Fprintf(stdout, "netprobe version %s\n", version)
		return exitReachable
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	host := fs.Arg(0)

	opts, err := config.NetprobeParser{}.LoadConfig(flagConfig, overrides.Overrides())
	logger := log.NewLogger(log.ParseLevel(opts.LogLevel))
	logger.SetOutput(stderr)
	if flagConfig != "" {
		logger.LogConfigLoad(err == nil, flagConfig, err)
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitUsage
	}

	prober := netprobe.New(host,
		netprobe.WithTTL(opts.TTL),
		netprobe.WithTimeout(opts.Timeout),
		netprobe.WithPort(opts.Port),
		netprobe.WithLogger(logger),
	)

	result, err := prober.ProbeByName(opts.Method)
	if err != nil {
		fmt.Fprintf(stderr, "probe failed: %v\n", err)
		return exitUsage
	}

	if !result.Success {
		if errors.Is(result.Error, netprobe.ErrPermissionDenied) {
			fmt.Fprintln(stderr, "raw sockets need elevated privileges; try -method exec")
		}
		fmt.Fprintf(stdout, "%s unreachable\n", host)
		return exitUnreachable
	}

	fmt.Fprintf(stdout, "%s %.4f ms\n", host, result.Latency)
	if ip, ok := prober.ResolvedIPAddress(); ok && ip != host {
		fmt.Fprintf(stdout, "resolved %s\n", ip)
	}
	return exitReachable
}
