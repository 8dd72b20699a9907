package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tick is the number of decimal places a price is rounded to at admission.
// The matching core itself never rounds; rounding happens once, at the
// boundary, per §9 of the spec this package implements.
const Tick = 2

// Side identifies which side of the book an order rests on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// RoundToTick rounds p to the book's tick granularity.
func RoundToTick(p decimal.Decimal) decimal.Decimal {
	return p.Round(Tick)
}

// Order is immutable once admitted, with one exception: Quantity may be
// reduced by matching down to (but never below) zero.
type Order struct {
	ID        uint64
	Side      Side
	Price     decimal.Decimal
	Quantity  uint64
	Timestamp time.Time
}

func (order Order) String() string {
	return fmt.Sprintf(
		"Order{id=%d side=%s price=%s qty=%d ts=%s}",
		order.ID,
		order.Side,
		order.Price.StringFixed(Tick),
		order.Quantity,
		order.Timestamp.Format(time.RFC3339Nano),
	)
}
