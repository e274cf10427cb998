// Command taskctl is the terminal client for the task backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaekwang-park/taskapp/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
