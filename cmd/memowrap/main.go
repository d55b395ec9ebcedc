// Package main is the entry point for memowrap.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/on-the-ground/memo_ive_go/cmd/memowrap/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.New().Execute(ctx); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
