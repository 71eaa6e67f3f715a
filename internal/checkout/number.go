package checkout

import (
	"fmt"
	"log"
	"time"
)

const (
	dayFormat       = "20060102"
	timestampFormat = "20060102150405"
)

// SequenceSource advances the durable per-day counter behind order numbers.
type SequenceSource interface {
	Next(day string) (int, error)
}

// NumberMinter produces day-scoped sequential order numbers
// (YYYYMMDD + zero-padded 3-digit sequence). Minting is kept separate from
// assembly so a retry strategy can decide when a new number is drawn.
type NumberMinter struct {
	seq SequenceSource
	now func() time.Time
}

func NewNumberMinter(seq SequenceSource) *NumberMinter {
	return &NumberMinter{seq: seq, now: time.Now}
}

// Mint returns the next order number. When the counter storage fails it
// falls back to a timestamp form (YYYYMMDDHHMMSS) so an order number is
// always produced; uniqueness of the fallback is best-effort.
func (m *NumberMinter) Mint() string {
	now := m.now()
	day := now.Format(dayFormat)

	counter, err := m.seq.Next(day)
	if err != nil {
		log.Printf("Order number: sequence unavailable, falling back to timestamp: %v", err)
		return now.Format(timestampFormat)
	}
	return fmt.Sprintf("%s%03d", day, counter)
}
