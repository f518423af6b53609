package diag

import (
	"fmt"
	"sort"
)

// Bag is a capped in-memory collection of messages.
type Bag struct {
	items []Message
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1024
	}
	return &Bag{
		items: make([]Message, 0, min(max, 64)),
		max:   max,
	}
}

// Add добавляет сообщение, учитывая лимит.
// Возвращает false, если сообщение не добавлено (достигнут лимит).
func (b *Bag) Add(m Message) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, m)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одно сообщение с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одно сообщение с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice сообщений.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Message {
	return b.items
}

// Count returns how many messages have severity s.
func (b *Bag) Count(s Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == s {
			n++
		}
	}
	return n
}

// Merge объединяет сообщения из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders messages by severity (desc), keeping arrival order otherwise.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return b.items[i].Severity > b.items[j].Severity
	})
}

// простая дедупликация (по Severity+Plain)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Message, 0, len(b.items))
	for _, m := range b.items {
		key := fmt.Sprintf("%s:%s", m.Severity, m.Plain)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, m)
	}
	b.items = newitems
}

// Reset drops every message, keeping the cap.
func (b *Bag) Reset() {
	b.items = b.items[:0]
}
