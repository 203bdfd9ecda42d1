package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/onepass/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if cli.NeedsLogin(err) {
			fmt.Fprintln(os.Stderr, "run 'onepass login' to start a session")
		}
		stop()
		os.Exit(1)
	}
}
