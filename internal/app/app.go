// Package app wires the producer, channel, matching engine, and renderer
// into the linear pipeline: producer → OrderChannel → matcher loop →
// (trades out, residual into OrderBook) → observer, all supervised by a
// single tomb.Tomb. Cancelling the context given to Run shuts all of them
// down; a goroutine that returns on its own (the stdin producer after
// "quit" or EOF) leaves the others running.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/book"
	"github.com/saiputravu/matchbook/internal/channel"
	"github.com/saiputravu/matchbook/internal/engine"
	"github.com/saiputravu/matchbook/internal/producer"
	"github.com/saiputravu/matchbook/internal/renderer"
	tomb "gopkg.in/tomb.v2"
)

// Mode selects the order source.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeStdin  Mode = "stdin"
)

// App owns the three core components and the goroutines that drive them.
type App struct {
	Book     *book.OrderBook
	Engine   *engine.MatchingEngine
	Channel  *channel.OrderChannel
	Renderer *renderer.Console
}

// New constructs an App with a fresh, empty book.
func New(stdout io.Writer) *App {
	ob := book.New()
	eng := engine.New(ob)
	ch := channel.New()
	return &App{
		Book:     ob,
		Engine:   eng,
		Channel:  ch,
		Renderer: renderer.NewConsole(stdout, ob, eng, ch),
	}
}

// Run drives the pipeline until ctx is cancelled, then shuts down every
// goroutine in bounded time: the channel is closed (unblocking the
// matcher's Pop), and the tomb is killed (stopping the producer and
// renderer). Run returns once every goroutine has exited.
func (a *App) Run(ctx context.Context, mode Mode, stdin io.Reader) error {
	t, ctx := tomb.WithContext(ctx)

	src, err := a.newProducer(mode, stdin)
	if err != nil {
		return err
	}

	t.Go(func() error { return src.Run(t) })
	t.Go(func() error { return a.Renderer.Run(t) })
	t.Go(func() error { return a.matchLoop(t) })

	<-ctx.Done()
	log.Info().Msg("app: shutdown requested")
	a.Channel.Close()
	t.Kill(nil)

	return t.Wait()
}

type runner interface {
	Run(t *tomb.Tomb) error
}

func (a *App) newProducer(mode Mode, stdin io.Reader) (runner, error) {
	switch mode {
	case ModeRandom, "":
		return producer.NewRandomProducer(a.Channel), nil
	case ModeStdin:
		return producer.NewStdinProducer(stdin, a.Channel), nil
	default:
		return nil, fmt.Errorf("app: unknown mode %q", mode)
	}
}

// matchLoop is the single matcher goroutine: it owns the only call site of
// MatchingEngine.ProcessOrder, so the crossing sweep for any one order
// always runs without concurrent interleaving from another.
func (a *App) matchLoop(t *tomb.Tomb) error {
	for {
		order, ok := a.Channel.Pop()
		if !ok {
			log.Info().Msg("matcher: channel closed, exiting")
			return nil
		}

		trades := a.Engine.ProcessOrder(order)
		for _, trade := range trades {
			log.Info().
				Uint64("buy_order_id", trade.BuyOrderID).
				Uint64("sell_order_id", trade.SellOrderID).
				Str("price", trade.Price.StringFixed(2)).
				Uint64("quantity", trade.Quantity).
				Msg("trade")
		}

		select {
		case <-t.Dying():
			return nil
		default:
		}
	}
}
