// Package main provides the shellfs command-line interface.
// It inspects and changes files on a local, SSH or Docker host by running
// ls/dir-style shell commands and parsing their output.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], Dependencies{
		Registry: shell.DefaultRegistry(),
		Loader:   config.NewLoader(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	})
	stop()
	os.Exit(code)
}
