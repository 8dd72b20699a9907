package producer

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/saiputravu/matchbook/internal/channel"
	"github.com/saiputravu/matchbook/internal/common"
	"github.com/shopspring/decimal"
	tomb "gopkg.in/tomb.v2"
)

var errUnknownSide = errors.New("producer: unknown side token")

// StdinProducer reads one order per line in the grammar
// "<BUY|SELL|buy|sell> <price> <quantity>". Malformed lines are
// reported and skipped; "quit"/"exit" terminate the producer.
type StdinProducer struct {
	admitter *Admitter
	ch       *channel.OrderChannel
	scanner  *bufio.Scanner
}

// NewStdinProducer constructs a StdinProducer reading from r and pushing
// admitted orders onto ch.
func NewStdinProducer(r io.Reader, ch *channel.OrderChannel) *StdinProducer {
	return &StdinProducer{
		admitter: NewAdmitter(),
		ch:       ch,
		scanner:  bufio.NewScanner(r),
	}
}

// Run reads lines until EOF, a terminator line, or t.Dying() fires.
func (p *StdinProducer) Run(t *tomb.Tomb) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for p.scanner.Scan() {
			lines <- p.scanner.Text()
		}
	}()

	for {
		select {
		case <-t.Dying():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if p.handleLine(line) {
				return nil
			}
		}
	}
}

// handleLine processes one input line and reports whether the producer
// should stop.
func (p *StdinProducer) handleLine(line string) (stop bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if line == "quit" || line == "exit" {
		return true
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		log.Error().Str("line", line).Msg("stdin producer: expected '<BUY|SELL> <price> <quantity>'")
		return false
	}

	side, err := parseSide(fields[0])
	if err != nil {
		log.Error().Str("line", line).Err(err).Msg("stdin producer: malformed side")
		return false
	}

	priceVal, err := decimal.NewFromString(fields[1])
	if err != nil {
		log.Error().Str("line", line).Err(err).Msg("stdin producer: malformed price")
		return false
	}

	quantity, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		log.Error().Str("line", line).Err(err).Msg("stdin producer: malformed quantity")
		return false
	}

	order, err := p.admitter.Admit(side, priceVal, quantity)
	if err != nil {
		log.Error().Str("line", line).Err(err).Msg("stdin producer: order rejected at admission")
		return false
	}

	p.ch.Push(order)
	return false
}

func parseSide(token string) (common.Side, error) {
	switch strings.ToUpper(token) {
	case "BUY":
		return common.Buy, nil
	case "SELL":
		return common.Sell, nil
	default:
		return 0, errUnknownSide
	}
}
