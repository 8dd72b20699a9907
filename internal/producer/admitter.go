// Package producer implements the order sources feeding an OrderChannel:
// a random generator and a stdin line-reader, both funneled through one
// admission wrapper that assigns IDs and rejects orders that must never
// reach the matcher.
package producer

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/shopspring/decimal"
)

// ErrInvalidOrder is returned by Admitter.Admit when a candidate order
// violates an admission-time precondition.
var ErrInvalidOrder = errors.New("producer: invalid order")

// Admitter assigns IDs and timestamps to validated orders and rejects
// anything that must not reach the matcher: non-positive quantity or
// non-positive price. A price off the tick grid is rounded here, once, at
// the boundary — the matching core itself never rounds a price silently.
type Admitter struct {
	nextID atomic.Uint64
}

// NewAdmitter constructs an Admitter whose IDs start at 1. ID 0 is reserved
// for use as a no-op/shutdown marker order.
func NewAdmitter() *Admitter {
	return &Admitter{}
}

// Admit validates and stamps a candidate order. On rejection it logs a
// diagnostic and returns ErrInvalidOrder; the caller must not push the
// zero value onto the channel.
func (a *Admitter) Admit(side common.Side, price decimal.Decimal, quantity uint64) (common.Order, error) {
	if quantity == 0 {
		log.Warn().Msg("producer: rejecting order with non-positive quantity")
		return common.Order{}, ErrInvalidOrder
	}
	if !price.IsPositive() {
		log.Warn().Str("price", price.String()).Msg("producer: rejecting order with non-positive price")
		return common.Order{}, ErrInvalidOrder
	}

	return common.Order{
		ID:        a.nextID.Add(1),
		Side:      side,
		Price:     common.RoundToTick(price),
		Quantity:  quantity,
		Timestamp: time.Now(),
	}, nil
}
