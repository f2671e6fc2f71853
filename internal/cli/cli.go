package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/lmfeatures/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is one parsed command line: the app configuration plus the
// catalog command to run.
type Invocation struct {
	Config  *app.Config
	Command string
	Args    []string
}

// envOr returns the environment variable's value or a fallback. godotenv in
// the entrypoint populates the environment from a .env file first.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Parse processes command-line arguments. It returns a populated
// Invocation, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lmfeatures", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
lmfeatures - feature-class declarations for the Last Mile Durations model.

Usage:
  lmfeatures [options] COMMAND [args]

Commands:
  validate                     Load the catalog and check declarations against Go types.
  list                         List declared feature classes and enums.
  describe <Class|Enum>        Show one declaration, fields in declared order.
  decode <Class> <record.json> Coerce a raw record against a class and print the canonical form.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestsFlag := flagSet.String("manifests", envOr("LMF_MANIFESTS", ""), "Path to external manifest files; empty uses the embedded catalog.")
	logFormatFlag := flagSet.String("log-format", envOr("LMF_LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr("LMF_LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		ManifestsPath: *manifestsFlag,
		LogFormat:     strings.ToLower(*logFormatFlag),
		LogLevel:      strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	inv := &Invocation{
		Config:  config,
		Command: flagSet.Arg(0),
		Args:    flagSet.Args()[1:],
	}

	slog.Debug("CLI parser finished successfully.", "command", inv.Command)
	return inv, false, nil
}
