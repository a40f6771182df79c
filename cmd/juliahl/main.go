// Command juliahl prints Julia source with syntax highlighting.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.Version = fmt.Sprintf("%s (commit: %s)", version, commit)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
