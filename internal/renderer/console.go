// Package renderer implements the book/trade observer: a periodic terminal
// snapshot of top-of-book depth and the last trade. It writes to a plain
// io.Writer rather than directly to a terminal, so it can be exercised in
// tests without a real tty.
package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/saiputravu/matchbook/internal/book"
	"github.com/saiputravu/matchbook/internal/channel"
	"github.com/saiputravu/matchbook/internal/engine"
	tomb "gopkg.in/tomb.v2"
)

const (
	defaultInterval = 500 * time.Millisecond
	defaultDepth    = 10
)

// Console periodically samples an OrderBook, a MatchingEngine's last trade,
// and an OrderChannel's size, and writes a human-readable snapshot to Out.
type Console struct {
	Out      io.Writer
	Book     *book.OrderBook
	Engine   *engine.MatchingEngine
	Channel  *channel.OrderChannel
	Interval time.Duration
	Depth    int
}

// NewConsole constructs a Console with sensible defaults: a 500ms sampling
// interval and 10 levels of depth per side.
func NewConsole(out io.Writer, ob *book.OrderBook, eng *engine.MatchingEngine, ch *channel.OrderChannel) *Console {
	return &Console{
		Out:      out,
		Book:     ob,
		Engine:   eng,
		Channel:  ch,
		Interval: defaultInterval,
		Depth:    defaultDepth,
	}
}

// Run samples and renders on Interval until t.Dying() fires.
func (c *Console) Run(t *tomb.Tomb) error {
	interval := c.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.Dying():
			return nil
		case <-ticker.C:
			c.Render()
		}
	}
}

// Render writes one snapshot immediately.
func (c *Console) Render() {
	depth := c.Depth
	if depth <= 0 {
		depth = defaultDepth
	}

	asks := c.Book.TopAsks(depth)
	bids := c.Book.TopBids(depth)
	last, hasTrade := c.Engine.LastTrade()

	fmt.Fprintln(c.Out, "==================== ORDER BOOK ====================")
	fmt.Fprintf(c.Out, "%15s | %15s | %s\n", "PRICE", "QUANTITY", "SIDE")

	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(c.Out, "%15s | %15d | %s\n", asks[i].Price.StringFixed(2), asks[i].TotalQuantity, "ASK")
	}

	if len(asks) > 0 && len(bids) > 0 {
		spread := asks[0].Price.Sub(bids[0].Price)
		fmt.Fprintf(c.Out, "------------------- spread: %s -------------------\n", spread.StringFixed(2))
	} else {
		fmt.Fprintln(c.Out, "-----------------------------------------------------")
	}

	for _, level := range bids {
		fmt.Fprintf(c.Out, "%15s | %15d | %s\n", level.Price.StringFixed(2), level.TotalQuantity, "BID")
	}

	fmt.Fprintln(c.Out, "-----------------------------------------------------")
	if hasTrade {
		fmt.Fprintf(c.Out, "last trade: %s\n", last)
	} else {
		fmt.Fprintln(c.Out, "last trade: none yet")
	}
	fmt.Fprintf(c.Out, "pending orders in queue: %d\n", c.Channel.Size())
}
