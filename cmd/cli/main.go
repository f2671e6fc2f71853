package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/vk/lmfeatures/internal/app"
	"github.com/vk/lmfeatures/internal/cli"
	"github.com/vk/lmfeatures/internal/hcl"
)

// main is the entrypoint for the lmfeatures catalog tool.
func main() {
	// A .env file may supply LMF_* defaults; absence is fine.
	_ = godotenv.Load()

	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Catalog loading panics on critical errors, so run recovers and
// reports them as ordinary errors.
func run(outW io.Writer, args []string) (err error) {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl.NewLoader()
	catalogApp := app.NewApp(outW, inv.Config, loader)

	return catalogApp.Run(context.Background(), inv.Command, inv.Args)
}
