package sink

import (
	"sync"

	"chanlog/internal/diag"
)

// Collector gathers messages into two bags, one for visible and one for
// suppressed messages.
type Collector struct {
	mu         sync.Mutex
	emitted    *diag.Bag
	suppressed *diag.Bag
}

// NewCollector returns a Collector holding up to max messages per bag.
func NewCollector(max int) *Collector {
	return &Collector{
		emitted:    diag.NewBag(max),
		suppressed: diag.NewBag(max),
	}
}

func (c *Collector) Emit(m diag.Message) {
	c.mu.Lock()
	c.emitted.Add(m)
	c.mu.Unlock()
}

func (c *Collector) EmitSuppressed(m diag.Message) {
	c.mu.Lock()
	c.suppressed.Add(m)
	c.mu.Unlock()
}

// Emitted returns a copy of the visible messages.
func (c *Collector) Emitted() []diag.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]diag.Message(nil), c.emitted.Items()...)
}

// Suppressed returns a copy of the suppressed messages.
func (c *Collector) Suppressed() []diag.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]diag.Message(nil), c.suppressed.Items()...)
}

// Summary returns a copy of the visible bag for counting and sorting.
func (c *Collector) Summary() *diag.Bag {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := diag.NewBag(c.emitted.Cap())
	b.Merge(c.emitted)
	return b
}

// Reset empties both bags.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.emitted.Reset()
	c.suppressed.Reset()
	c.mu.Unlock()
}
