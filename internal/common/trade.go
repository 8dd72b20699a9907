package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is emitted on every match. Price is always the resting (passive)
// order's price: the aggressor gets whatever improvement its own limit
// allowed, but the fill always prints at the price that was already resting.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       decimal.Decimal
	Quantity    uint64
	Timestamp   time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade{buy=%d sell=%d price=%s qty=%d ts=%s}",
		t.BuyOrderID,
		t.SellOrderID,
		t.Price.StringFixed(Tick),
		t.Quantity,
		t.Timestamp.Format(time.RFC3339Nano),
	)
}
