// Package engine implements the crossing algorithm: stateless matching
// logic layered over a book.OrderBook, plus a singleton last-trade
// observation. The sweep walks one price level at a time, in strict
// price-time priority, consuming the opposite side's best level until the
// incoming order is exhausted or no longer crossable.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/book"
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/shopspring/decimal"
)

// MatchingEngine crosses incoming orders against an OrderBook. lastTrade is
// guarded by its own mutex, separate from the book's, and that mutex is
// never held while the book is locked, so the two can never deadlock on
// each other.
type MatchingEngine struct {
	book *book.OrderBook

	mu        sync.Mutex
	lastTrade common.Trade
	hasTrade  bool
}

// New constructs a MatchingEngine over the given book.
func New(ob *book.OrderBook) *MatchingEngine {
	return &MatchingEngine{book: ob}
}

// ProcessOrder crosses order against the opposite side of the book,
// emitting trades in algorithmic (price-time priority) order, and rests any
// unfilled remainder. A zero-quantity order is a no-op: no matches, not
// inserted.
func (e *MatchingEngine) ProcessOrder(order common.Order) []common.Trade {
	if order.Quantity == 0 {
		return nil
	}

	var trades []common.Trade
	remaining := order.Quantity

	for remaining > 0 {
		passive, ok := e.bestOpposite(order.Side)
		if !ok || !crossable(order.Side, order.Price, passive.Price) {
			break
		}

		matchQty := min(remaining, passive.Quantity)

		var trade common.Trade
		if order.Side == common.Buy {
			trade = common.Trade{
				BuyOrderID:  order.ID,
				SellOrderID: passive.ID,
				Price:       passive.Price,
				Quantity:    matchQty,
				Timestamp:   time.Now(),
			}
		} else {
			trade = common.Trade{
				BuyOrderID:  passive.ID,
				SellOrderID: order.ID,
				Price:       passive.Price,
				Quantity:    matchQty,
				Timestamp:   time.Now(),
			}
		}
		trades = append(trades, trade)
		e.setLastTrade(trade)

		if err := e.consumeOpposite(order.Side, matchQty); err != nil {
			log.Error().Err(err).Msg("engine: consume opposite failed mid-sweep")
			break
		}

		remaining -= matchQty
	}

	if remaining > 0 {
		residual := order
		residual.Quantity = remaining
		e.book.AddOrder(residual)
	}

	return trades
}

// LastTrade returns a copy of the most recently emitted trade, or false if
// none has occurred yet.
func (e *MatchingEngine) LastTrade() (common.Trade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTrade, e.hasTrade
}

func (e *MatchingEngine) setLastTrade(t common.Trade) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastTrade = t
	e.hasTrade = true
}

func (e *MatchingEngine) bestOpposite(side common.Side) (common.Order, bool) {
	if side == common.Buy {
		return e.book.BestAsk()
	}
	return e.book.BestBid()
}

func (e *MatchingEngine) consumeOpposite(side common.Side, qty uint64) error {
	if side == common.Buy {
		return e.book.ConsumeBestAsk(qty)
	}
	return e.book.ConsumeBestBid(qty)
}

// crossable reports whether an aggressor on side, at price, can trade
// against a resting order at passivePrice.
func crossable(side common.Side, price, passivePrice decimal.Decimal) bool {
	if side == common.Buy {
		return price.GreaterThanOrEqual(passivePrice)
	}
	return price.LessThanOrEqual(passivePrice)
}
