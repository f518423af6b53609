package sink

import (
	"io"
	"strings"
	"sync"

	"chanlog/internal/diag"
)

// Record is a message kept by RingSink.
type Record struct {
	Seq        uint64
	Suppressed bool
	diag.Message
}

// RingSink keeps the last N messages in memory (circular buffer). It serves as
// the alternate console where suppressed messages remain visible.
type RingSink struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRingSink creates a new RingSink with specified capacity.
func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 1024
	}

	return &RingSink{
		records:  make([]Record, capacity),
		capacity: capacity,
	}
}

// Emit stores a visible message.
func (r *RingSink) Emit(m diag.Message) { r.add(m, false) }

// EmitSuppressed stores a suppressed message.
func (r *RingSink) EmitSuppressed(m diag.Message) { r.add(m, true) }

func (r *RingSink) add(m diag.Message, suppressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[r.head] = Record{Seq: NextSeq(), Suppressed: suppressed, Message: m}
	r.head = (r.head + 1) % r.capacity

	if r.head == 0 {
		r.full = true
	}
}

// Snapshot returns a copy of all stored records in chronological order.
func (r *RingSink) Snapshot() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		// Not wrapped yet - return [0:head]
		result := make([]Record, r.head)
		copy(result, r.records[:r.head])
		return result
	}

	// Wrapped - return [head:capacity] + [0:head]
	result := make([]Record, r.capacity)
	copy(result, r.records[r.head:])
	copy(result[r.capacity-r.head:], r.records[:r.head])
	return result
}

// Len returns the number of stored records.
func (r *RingSink) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.full {
		return r.capacity
	}
	return r.head
}

// Last returns the most recent record.
func (r *RingSink) Last() (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.full && r.head == 0 {
		return Record{}, false
	}
	i := (r.head - 1 + r.capacity) % r.capacity
	return r.records[i], true
}

// Dump writes all records to w in the given form.
func (r *RingSink) Dump(w io.Writer, form Form) error {
	for _, rec := range r.Snapshot() {
		text := form.pick(&rec.Message)
		if rec.Suppressed {
			text = "(hidden) " + text
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every stored record.
func (r *RingSink) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.records)
	r.head = 0
	r.full = false
}
