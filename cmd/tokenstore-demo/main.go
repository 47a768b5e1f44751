// Command tokenstore-demo is a terminal-driven exerciser of the
// tokenstore/hashfacade library surface. It is explicitly not an HTTP
// host — no transport, no wire protocol — just Cobra-wired commands
// against one in-process store, in the shape of this codebase's own
// cmd/rpcdaemon entry point minus the RPC layer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := newRootCommand(logger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
