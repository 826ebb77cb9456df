// Package main is the entry point for the reportassist editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dshills/reportassist/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type flags struct {
	opts   app.Options
	expand string
}

func run() int {
	f := parseFlags()

	// One-shot template expansion needs no terminal or configuration.
	if f.expand != "" {
		if err := app.Expand(os.Stdout, f.expand, time.Now); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	application, err := app.New(f.opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	screen, err := app.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.NewTerminal(application, screen).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&f.opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&f.opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&f.expand, "expand", "", "Expand a snippet template, print its placeholders and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "reportassist - report editor with completions, snippets and suggestions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: reportassist [options] [report]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed with REPORTASSIST_ override the config file.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  reportassist                         Edit an unsaved report\n")
		fmt.Fprintf(os.Stderr, "  reportassist ct-abdomen.txt          Edit a report file\n")
		fmt.Fprintf(os.Stderr, "  reportassist -expand '${1^side=l^left|r^right} kidney'\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("reportassist %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		if abs, err := filepath.Abs(flag.Arg(0)); err == nil {
			f.opts.File = abs
		} else {
			f.opts.File = flag.Arg(0)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one report file\n")
		os.Exit(1)
	}

	return f
}
