// Command matchbook runs the limit order-book matching engine core with a
// random or stdin order source and a console renderer, wired together by
// internal/app: flag-based mode selection, --help usage text, SIGINT/SIGTERM
// graceful shutdown, exit code 1 on bad arguments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/app"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: matchbook [--mode=random|stdin]")
	fmt.Fprintln(os.Stderr, "  --mode=random  generate random orders automatically (default)")
	fmt.Fprintln(os.Stderr, "  --mode=stdin   read orders from standard input")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Stdin format: <BUY|SELL> <price> <quantity>")
	fmt.Fprintln(os.Stderr, "Example: BUY 100.50 1000")
}

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("matchbook", flag.ContinueOnError)
	fs.Usage = usage
	mode := fs.String("mode", string(app.ModeRandom), "order source: 'random' or 'stdin'")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	switch app.Mode(*mode) {
	case app.ModeRandom, app.ModeStdin:
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", *mode)
		usage()
		return 1
	}

	runID := uuid.New().String()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Str("run_id", runID).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("mode", *mode).Msg("starting matchbook")

	a := app.New(os.Stdout)
	if err := a.Run(ctx, app.Mode(*mode), os.Stdin); err != nil {
		log.Error().Err(err).Msg("matchbook exited with error")
		return 1
	}

	log.Info().Msg("shutdown complete")
	return 0
}
