package book

import (
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/shopspring/decimal"
)

// PriceLevel holds every resting order at one price on one side, oldest
// first. TotalQuantity is maintained incrementally by OrderBook; it is
// never recomputed by summing Orders.
type PriceLevel struct {
	Price         decimal.Decimal
	Orders        []*common.Order
	TotalQuantity uint64
}

func newPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{Price: price}
}

func (l *PriceLevel) empty() bool {
	return len(l.Orders) == 0
}

// append adds order to the tail of the level, preserving arrival order.
func (l *PriceLevel) append(order *common.Order) {
	l.Orders = append(l.Orders, order)
	l.TotalQuantity += order.Quantity
}

// consumeHead removes qty from the head order. qty must be <= head.Quantity.
// If the head is fully consumed it is popped from the queue.
func (l *PriceLevel) consumeHead(qty uint64) {
	head := l.Orders[0]
	head.Quantity -= qty
	l.TotalQuantity -= qty
	if head.Quantity == 0 {
		l.Orders[0] = nil
		l.Orders = l.Orders[1:]
	}
}
