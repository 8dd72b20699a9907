// Package channel implements the single-consumer, multi-producer FIFO that
// sits between order producers and the matcher: a mutex-and-condition-
// variable queue with a closed state, so shutdown can unblock a waiting
// consumer without needing a dedicated sentinel value.
package channel

import (
	"sync"

	"github.com/saiputravu/matchbook/internal/common"
)

// OrderChannel is a bounded-by-nothing FIFO of orders. Push never blocks a
// producer beyond uncontended lock acquisition; Pop blocks a single
// consumer until an order is available or the channel is closed.
type OrderChannel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	orders []common.Order
	closed bool
}

// New constructs an empty, open OrderChannel.
func New() *OrderChannel {
	c := &OrderChannel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Push enqueues order and wakes a waiting consumer. Safe for concurrent use
// by any number of producers.
func (c *OrderChannel) Push(order common.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.orders = append(c.orders, order)
	c.cond.Signal()
}

// Pop blocks until an order is available or the channel is closed. The
// second return value is false only when the channel is closed and drained.
func (c *OrderChannel) Pop() (common.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.orders) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.orders) == 0 {
		return common.Order{}, false
	}
	order := c.orders[0]
	c.orders = c.orders[1:]
	return order, true
}

// TryPop returns immediately: the next order and true, or the zero value
// and false if the channel is empty.
func (c *OrderChannel) TryPop() (common.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.orders) == 0 {
		return common.Order{}, false
	}
	order := c.orders[0]
	c.orders = c.orders[1:]
	return order, true
}

// Size is a best-effort snapshot for telemetry; callers must not rely on it
// for correctness.
func (c *OrderChannel) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.orders)
}

// Close marks the channel closed and wakes every blocked consumer. Pushes
// after Close are silently dropped. Close is idempotent.
func (c *OrderChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cond.Broadcast()
}
