package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/logrusorgru/aurora"

	"github.com/guttosm/tickr/config"
	"github.com/guttosm/tickr/internal/app"
	"github.com/guttosm/tickr/internal/finnhub"
	"github.com/guttosm/tickr/internal/logger"
	"github.com/guttosm/tickr/internal/output"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// main is the entry point of tickr.
//
// Modes (selected via flags, in priority order):
//   - -h/--help: print usage.
//   - -l/--list [-e EXCHANGE]: list crypto exchanges or an exchange's symbols.
//   - -t TICKER -q [-s]: print a quote.
//   - -t TICKER -r RES [-s] [--from/--to]: print candles (default: trailing 24h).
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run wires config, logger, client and sink, then runs the app. It returns the
// process exit code so tests can drive it without exiting.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger.SetOutput(stderr)

	settings, err := config.Parse(args)
	if err != nil {
		fail(stderr, err)
		return exitUsage
	}
	if settings.IsVerbose {
		logger.SetVerbose()
	}

	sink := output.Open(settings.OutFile, stdout)

	client := finnhub.NewClient(settings.BaseURL)
	runErr := app.New(settings, client, sink).Run(ctx)
	closeErr := sink.Close()

	if err := errors.Join(runErr, closeErr); err != nil {
		fail(stderr, err)
		return exitError
	}
	if path := sink.Path(); path != "" {
		logger.L().Info().Str("file", path).Msg("output saved")
	}
	return exitOK
}

func fail(stderr io.Writer, err error) {
	logger.L().Debug().Err(err).Msg("terminating")
	fmt.Fprintf(stderr, "%s %v\n", aurora.Bold(aurora.Red("error:")), err)
}
