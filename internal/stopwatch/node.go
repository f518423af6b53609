package stopwatch

import (
	"strconv"
	"strings"
	"time"
)

// Node is one named interval timer. Elapsed is meaningful once the node has
// finished.
type Node struct {
	Name     string
	start    time.Time
	elapsed  time.Duration
	running  bool
	active   []*Node
	finished []*Node
}

func newNode(name string, now time.Time) *Node {
	return &Node{Name: name, start: now, running: true}
}

// Running reports whether the node is still timing.
func (n *Node) Running() bool { return n.running }

// Elapsed returns the measured duration of a finished node.
func (n *Node) Elapsed() time.Duration { return n.elapsed }

// deepest returns the deepest running node on the newest-child path, n itself
// when it has no running children.
func (n *Node) deepest() *Node {
	cur := n
	for len(cur.active) > 0 {
		cur = cur.active[len(cur.active)-1]
	}
	return cur
}

// parentOf returns the running ancestor holding target in its running list.
func (n *Node) parentOf(target *Node) *Node {
	for _, c := range n.active {
		if c == target {
			return n
		}
		if p := c.parentOf(target); p != nil {
			return p
		}
	}
	return nil
}

// find searches running descendants depth-first, newest child first.
func (n *Node) find(name string) *Node {
	for i := len(n.active) - 1; i >= 0; i-- {
		c := n.active[i]
		if c.Name == name {
			return c
		}
		if hit := c.find(name); hit != nil {
			return hit
		}
	}
	return nil
}

// finish stops n and all of its running descendants, deepest and newest first.
func (n *Node) finish(now time.Time) {
	for len(n.active) > 0 {
		last := len(n.active) - 1
		c := n.active[last]
		n.active = n.active[:last]
		c.finish(now)
		n.finished = append(n.finished, c)
	}
	if n.running {
		n.elapsed = now.Sub(n.start)
		n.running = false
	}
}

// detach moves the finished child c from the running list to the finished list.
func (n *Node) detach(c *Node) {
	for i, rc := range n.active {
		if rc == c {
			n.active = append(n.active[:i], n.active[i+1:]...)
			break
		}
	}
	n.finished = append(n.finished, c)
}

// Seconds converts d the way reports print it: whole milliseconds, times ten,
// divided by 10000.
func Seconds(d time.Duration) float64 {
	ms := d.Milliseconds()
	return float64(ms*10) / 10000
}

// Result is the finished tree of a stopwatch.
type Result struct {
	Name     string   `json:"name"`
	Seconds  float64  `json:"seconds"`
	Children []Result `json:"children,omitempty"`
}

func (n *Node) result() Result {
	r := Result{Name: n.Name, Seconds: Seconds(n.elapsed)}
	for _, c := range n.finished {
		r.Children = append(r.Children, c.result())
	}
	return r
}

// indentUnit is added once per nesting level in reports.
const indentUnit = "   "

// String renders the report: "<indent>name . . . <seconds> s", children on the
// following lines in finish order.
func (r Result) String() string { return r.Render(nil) }

// Render is String with the seconds passed through paint, when paint is non-nil.
func (r Result) Render(paint func(string) string) string {
	var sb strings.Builder
	r.write(&sb, 0, paint)
	return sb.String()
}

func (r Result) write(sb *strings.Builder, depth int, paint func(string) string) {
	if depth > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(indentUnit, depth))
	sb.WriteString(r.Name)
	sb.WriteString(" . . . ")
	secs := strconv.FormatFloat(r.Seconds, 'f', -1, 64)
	if paint != nil {
		secs = paint(secs)
	}
	sb.WriteString(secs)
	sb.WriteString(" s")
	for _, c := range r.Children {
		c.write(sb, depth+1, paint)
	}
}
