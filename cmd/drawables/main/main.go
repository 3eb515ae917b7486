package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/drawables/cmd/drawables"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := drawables.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		drawables.PrintError(rootCmd, err)
		stop()
		os.Exit(1)
	}
}
