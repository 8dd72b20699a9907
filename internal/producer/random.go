package producer

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/channel"
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/shopspring/decimal"
	tomb "gopkg.in/tomb.v2"
)

// Random generator defaults: price uniform in a band around 100, quantity
// uniform in [100, 10000], one order roughly every 100ms.
const (
	randomMinPrice    = 95.00
	randomMaxPrice    = 105.00
	randomMinQuantity = 100
	randomMaxQuantity = 10000
	randomInterArrival = 100 * time.Millisecond
)

// RandomProducer pushes uniformly-random orders onto an OrderChannel at a
// fixed cadence until its tomb is told to die.
type RandomProducer struct {
	admitter *Admitter
	ch       *channel.OrderChannel
	rng      *rand.Rand
}

// NewRandomProducer constructs a RandomProducer feeding ch.
func NewRandomProducer(ch *channel.OrderChannel) *RandomProducer {
	return &RandomProducer{
		admitter: NewAdmitter(),
		ch:       ch,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run generates orders until t.Dying() fires. It always returns nil: a
// producer that can't admit a self-generated order logs and keeps going.
func (p *RandomProducer) Run(t *tomb.Tomb) error {
	ticker := time.NewTicker(randomInterArrival)
	defer ticker.Stop()

	for {
		select {
		case <-t.Dying():
			return nil
		case <-ticker.C:
			order, err := p.admitter.Admit(p.randomSide(), p.randomPrice(), p.randomQuantity())
			if err != nil {
				log.Error().Err(err).Msg("random producer: failed to admit generated order")
				continue
			}
			p.ch.Push(order)
		}
	}
}

func (p *RandomProducer) randomSide() common.Side {
	if p.rng.Intn(2) == 0 {
		return common.Buy
	}
	return common.Sell
}

func (p *RandomProducer) randomPrice() decimal.Decimal {
	raw := randomMinPrice + p.rng.Float64()*(randomMaxPrice-randomMinPrice)
	return common.RoundToTick(decimal.NewFromFloat(raw))
}

func (p *RandomProducer) randomQuantity() uint64 {
	return uint64(randomMinQuantity + p.rng.Intn(randomMaxQuantity-randomMinQuantity+1))
}
