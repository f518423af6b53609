package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"chanlog/internal/format"
)

// CheckTextInvariants runs the dual-form invariants on a rendered Text:
// 1) the plain form carries no markup of the styler
// 2) stripping the decorated form yields exactly the plain form
// 3) the decorated form is never shorter than the plain form
func CheckTextInvariants(st format.Styler, t format.Text) error {
	if st == nil {
		return fmt.Errorf("nil styler")
	}
	if st.HasMarkup(t.Plain) {
		return fmt.Errorf("plain form contains markup: %q", t.Plain)
	}
	if got := st.Strip(t.Decorated); got != t.Plain {
		return fmt.Errorf("strip(decorated) != plain:\n  decorated=%q\n  stripped =%q\n  plain    =%q", t.Decorated, got, t.Plain)
	}
	if len(t.Decorated) < len(t.Plain) {
		return fmt.Errorf("decorated shorter than plain: %d < %d", len(t.Decorated), len(t.Plain))
	}
	return nil
}

// CheckLineWidth verifies that no line of s is longer than limit bytes unless
// the line is a single unbreakable element (contains no separator).
func CheckLineWidth(s string, limit int) error {
	lim, err := safecast.Conv[uint32](limit)
	if err != nil {
		return fmt.Errorf("limit overflow: %w", err)
	}
	for i, line := range strings.Split(s, "\n") {
		n, err := safecast.Conv[uint32](len(line))
		if err != nil {
			return fmt.Errorf("line %d length overflow: %w", i, err)
		}
		if n > lim && strings.Contains(line, ", ") {
			return fmt.Errorf("line %d is %d bytes with a breakable separator (limit %d)", i, n, lim)
		}
	}
	return nil
}
