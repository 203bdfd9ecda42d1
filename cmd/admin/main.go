package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/onepass/internal/server/admin"
)

func main() {
	if err := admin.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
