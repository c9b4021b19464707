// Purpose: Provide CLI error formatting, hints, version output, and process wiring.
// Exports: none (package-private helpers).
// Role: Shared error/exit utilities for the cmd package.
// Invariants: exitErr always exits with code 1 after printing.
// Notes: Only CLI usage errors reach exitErr; block failures are printed as overlays.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sandover/i3timer/internal/timer"
)

var lookupEnv = os.LookupEnv

func printVersion() {
	fmt.Println("i3timer " + version)
}

func exitErr(err error, opts *timer.GlobalOptions) {
	fmt.Fprintln(os.Stderr, "error:", err)
	if opts == nil || !opts.Verbose {
		if strings.HasPrefix(err.Error(), "usage:") || strings.HasPrefix(err.Error(), "unknown") {
			fmt.Fprintln(os.Stderr, "hint: run `i3timer --help`")
		} else if errors.Is(err, os.ErrPermission) {
			fmt.Fprintln(os.Stderr, "hint: check permissions of --log-file and --config")
		}
	}
	os.Exit(1)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func processEnv() timer.Env {
	return timer.DefaultEnv(globalOpts, logger)
}
