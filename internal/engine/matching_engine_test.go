package engine_test

import (
	"testing"

	"github.com/saiputravu/matchbook/internal/book"
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/saiputravu/matchbook/internal/engine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	p, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

func order(id uint64, side common.Side, p string, qty uint64) common.Order {
	return common.Order{ID: id, Side: side, Price: price(p), Quantity: qty}
}

// Full match, single level, exact quantities.
func TestProcessOrder_FullMatch(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 1000))
	trades := eng.ProcessOrder(order(2, common.Buy, "100.00", 1000))

	require.Len(t, trades, 1)
	assert.Equal(t, uint64(2), trades[0].BuyOrderID)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)
	assert.True(t, trades[0].Price.Equal(price("100.00")))
	assert.Equal(t, uint64(1000), trades[0].Quantity)

	_, bidOk := ob.BestBid()
	_, askOk := ob.BestAsk()
	assert.False(t, bidOk)
	assert.False(t, askOk)
}

// Partial match leaves a residual resting on the book.
func TestProcessOrder_PartialMatch_ResidualRests(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 1000))
	trades := eng.ProcessOrder(order(2, common.Buy, "100.00", 400))

	require.Len(t, trades, 1)
	assert.Equal(t, uint64(400), trades[0].Quantity)

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(price("100.00")))
	assert.Equal(t, uint64(600), ask.Quantity)

	_, bidOk := ob.BestBid()
	assert.False(t, bidOk)
}

// Orders that don't cross both rest, untouched.
func TestProcessOrder_NoCross(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "101.00", 1000))
	trades := eng.ProcessOrder(order(2, common.Buy, "100.00", 500))

	assert.Empty(t, trades)

	ask, _ := ob.BestAsk()
	bid, _ := ob.BestBid()
	assert.True(t, ask.Price.Equal(price("101.00")))
	assert.Equal(t, uint64(1000), ask.Quantity)
	assert.True(t, bid.Price.Equal(price("100.00")))
	assert.Equal(t, uint64(500), bid.Quantity)
}

// A large aggressor sweeps multiple ask levels, partially filling the last
// one it touches and resting the remainder without crossing the next level.
func TestProcessOrder_MultiLevelSweep(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 300))
	eng.ProcessOrder(order(2, common.Sell, "101.00", 400))
	eng.ProcessOrder(order(3, common.Sell, "102.00", 500))

	trades := eng.ProcessOrder(order(4, common.Buy, "101.50", 800))

	require.Len(t, trades, 2)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)
	assert.Equal(t, uint64(300), trades[0].Quantity)
	assert.True(t, trades[0].Price.Equal(price("100.00")))
	assert.Equal(t, uint64(2), trades[1].SellOrderID)
	assert.Equal(t, uint64(400), trades[1].Quantity)
	assert.True(t, trades[1].Price.Equal(price("101.00")))

	bid, ok := ob.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Price.Equal(price("101.50")))
	assert.Equal(t, uint64(100), bid.Quantity)

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(price("102.00")))
	assert.Equal(t, uint64(500), ask.Quantity)
}

// Two resting orders at the same price fill in arrival order.
func TestProcessOrder_PriceTimePriorityWithinLevel(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 200))
	eng.ProcessOrder(order(2, common.Sell, "100.00", 300))

	trades := eng.ProcessOrder(order(3, common.Buy, "100.00", 400))

	require.Len(t, trades, 2)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)
	assert.Equal(t, uint64(200), trades[0].Quantity)
	assert.Equal(t, uint64(2), trades[1].SellOrderID)
	assert.Equal(t, uint64(200), trades[1].Quantity)

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.Equal(t, uint64(100), ask.Quantity)
}

// An aggressor that crosses well past the best ask still trades at the
// resting order's price, not its own.
func TestProcessOrder_TradeAtPassivePrice(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 500))
	trades := eng.ProcessOrder(order(2, common.Buy, "105.00", 500))

	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price("100.00")), "trade prices at the passive order, not the aggressor")
}

func TestProcessOrder_ZeroQuantityIsNoOp(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	trades := eng.ProcessOrder(order(0, common.Buy, "100.00", 0))
	assert.Empty(t, trades)

	_, ok := ob.BestBid()
	assert.False(t, ok)
}

func TestLastTrade_EmptyThenLatestTrade(t *testing.T) {
	ob := book.New()
	eng := engine.New(ob)

	_, ok := eng.LastTrade()
	assert.False(t, ok)

	eng.ProcessOrder(order(1, common.Sell, "100.00", 100))
	eng.ProcessOrder(order(2, common.Buy, "100.00", 100))

	last, ok := eng.LastTrade()
	require.True(t, ok)
	assert.Equal(t, uint64(100), last.Quantity)
}
