package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sanjaympqwer/TASK-MASTER/internal/client/cli"
	"github.com/sanjaympqwer/TASK-MASTER/internal/client/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Strip the global flags so only the subcommand and its options remain.
	args := flagx.StripArgs(os.Args[1:], []string{"-a", "-t", "-c", "-config"})

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
