package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/sharpglue/internal/cli"
)

func main() {
	// Minimal logger until the root command configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Cobra-level errors (bad args, unknown flags) are silenced on the
			// subcommands, so print them here.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
