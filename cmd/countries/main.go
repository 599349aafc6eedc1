package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"country-directory-service/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dotenvErr := config.LoadDotEnv()
	cmd := buildRootCmd(config.Load(), &options{
		out:        os.Stdout,
		errOut:     os.Stderr,
		dotenvErr:  dotenvErr,
		newFetcher: defaultFetcher,
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
