package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/adapters/cli"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/bootstrap"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Console output belongs to the command; keep the logs on stderr.
	log := config.NewLoggerTo(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := bootstrap.New(ctx, cfg, log)

	if err := cli.NewRootCommand(c.Service).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
