// Package main runs the iconkit command line.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	iconkitcmd "github.com/louisbranch/iconkit/internal/cmd/iconkit"
	"github.com/louisbranch/iconkit/internal/platform/config"
)

func main() {
	log.SetPrefix("[ICONKIT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := iconkitcmd.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, iconkitcmd.ErrUsage):
		os.Exit(1)
	default:
		config.ExitErr(err)
	}
}
