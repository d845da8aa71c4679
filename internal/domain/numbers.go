// backend-go/internal/domain/numbers.go
package domain

import (
	"fmt"
	"sync"
	"time"
)

// NumberGenerator issues timestamp-based document numbers ("ORD-...",
// "GRV-..."). The raw millisecond clock can repeat under back-to-back
// requests, so the generator remembers the last value per prefix and bumps
// forward when the clock has not moved.
type NumberGenerator struct {
	mu   sync.Mutex
	last map[string]int64
	now  func() time.Time
}

// NewNumberGenerator builds a generator backed by the wall clock.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		last: make(map[string]int64),
		now:  time.Now,
	}
}

// Next returns the next unique number for prefix, e.g. Next("ORD") ->
// "ORD-1718000000123".
func (g *NumberGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last[prefix] {
		ms = g.last[prefix] + 1
	}
	g.last[prefix] = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}

// NextOrderNo returns a globally unique order number.
func (g *NumberGenerator) NextOrderNo() string {
	return g.Next("ORD")
}

// NextGRVNumber returns a goods-receipt-note number.
func (g *NumberGenerator) NextGRVNumber() string {
	return g.Next("GRV")
}
