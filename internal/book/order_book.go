// Package book implements the canonical order-book state: two price-indexed
// sides, each a FIFO queue of resting orders per price. Bids and asks are
// each kept as a btree.BTreeG[*PriceLevel] ordered by a side-specific
// comparator, giving O(log P) best-of-side lookup with O(1) amortised
// pop-front on the best level's queue.
package book

import (
	"errors"
	"sync"

	"github.com/saiputravu/matchbook/internal/common"
	"github.com/tidwall/btree"
)

// ErrPrecondition indicates a caller violated a documented precondition
// (e.g. consuming from an empty side). It signals a bug upstream, not a
// recoverable runtime condition.
var ErrPrecondition = errors.New("book: precondition violated")

type levels = btree.BTreeG[*PriceLevel]

// OrderBook is the two-sided, price-time-priority resting book for a single
// instrument. A single mutex guards both sides, since the matching sweep
// only ever touches one side (the opposite side's best level) per step and
// per-side locking would buy nothing; no I/O and no other lock is ever
// acquired while it is held.
type OrderBook struct {
	mu   sync.Mutex
	bids *levels // descending: best bid first
	asks *levels // ascending: best ask first
}

// New constructs an empty OrderBook.
func New() *OrderBook {
	bids := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price.GreaterThan(b.Price)
	})
	asks := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price.LessThan(b.Price)
	})
	return &OrderBook{bids: bids, asks: asks}
}

func (b *OrderBook) sideFor(side common.Side) *levels {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder inserts order into its side's book, appending to the level's
// FIFO queue (creating the level if absent). order.Quantity must be > 0.
func (b *OrderBook) AddOrder(order common.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	side := b.sideFor(order.Side)
	key := newPriceLevel(order.Price)
	level, ok := side.Get(key)
	if !ok {
		level = key
		side.Set(level)
	}
	o := order
	level.append(&o)
}

// BestBid returns a copy of the head order of the best (highest) non-empty
// bid level, or false if the bid side is empty.
func (b *OrderBook) BestBid() (common.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bestOf(b.bids)
}

// BestAsk returns a copy of the head order of the best (lowest) non-empty
// ask level, or false if the ask side is empty.
func (b *OrderBook) BestAsk() (common.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bestOf(b.asks)
}

func bestOf(side *levels) (common.Order, bool) {
	level, ok := side.Min()
	if !ok || level.empty() {
		return common.Order{}, false
	}
	return *level.Orders[0], true
}

// ConsumeBestBid removes qty from the head of the best bid level. qty must
// be > 0 and <= the head order's quantity; violating this is a programming
// error upstream in the matcher, not a recoverable condition.
func (b *OrderBook) ConsumeBestBid(qty uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return consumeBest(b.bids, qty)
}

// ConsumeBestAsk removes qty from the head of the best ask level, with the
// same preconditions as ConsumeBestBid.
func (b *OrderBook) ConsumeBestAsk(qty uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return consumeBest(b.asks, qty)
}

func consumeBest(side *levels, qty uint64) error {
	level, ok := side.Min()
	if !ok || level.empty() {
		return ErrPrecondition
	}
	if qty == 0 || qty > level.Orders[0].Quantity {
		return ErrPrecondition
	}
	level.consumeHead(qty)
	if level.empty() {
		side.Delete(level)
	}
	return nil
}

// TopBids returns up to n best-first bid level snapshots.
func (b *OrderBook) TopBids(n int) []PriceLevel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return topOf(b.bids, n)
}

// TopAsks returns up to n best-first ask level snapshots.
func (b *OrderBook) TopAsks(n int) []PriceLevel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return topOf(b.asks, n)
}

func topOf(side *levels, n int) []PriceLevel {
	result := make([]PriceLevel, 0, n)
	side.Ascend(nil, func(level *PriceLevel) bool {
		if len(result) >= n {
			return false
		}
		if level.empty() || level.TotalQuantity == 0 {
			return true // skip rather than surface an empty level to callers
		}
		result = append(result, PriceLevel{
			Price:         level.Price,
			TotalQuantity: level.TotalQuantity,
		})
		return true
	})
	return result
}

// NoCross reports whether the book currently satisfies the no-cross
// invariant (best_bid.price < best_ask.price, or a side is empty). Exposed
// for tests and assertions, not part of the hot path.
func (b *OrderBook) NoCross() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	bid, bidOk := bestOf(b.bids)
	ask, askOk := bestOf(b.asks)
	if !bidOk || !askOk {
		return true
	}
	return bid.Price.LessThan(ask.Price)
}
