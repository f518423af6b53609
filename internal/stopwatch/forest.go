package stopwatch

import (
	"strconv"
	"sync"
	"time"
)

// Logger receives finished reports and misuse warnings.
type Logger interface {
	Report(r Result)
	Warning(msg string)
}

type nopLogger struct{}

func (nopLogger) Report(Result)  {}
func (nopLogger) Warning(string) {}

// Clock returns the current time.
type Clock func() time.Time

// Forest holds the running root stopwatches in start order.
type Forest struct {
	mu    sync.Mutex
	roots []*Node
	clock Clock
	log   Logger
}

// New creates an empty forest. A nil logger drops output, a nil clock uses time.Now.
func New(log Logger, clock Clock) *Forest {
	if log == nil {
		log = nopLogger{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Forest{clock: clock, log: log}
}

// SetLogger replaces the report destination.
func (f *Forest) SetLogger(log Logger) {
	if log == nil {
		log = nopLogger{}
	}
	f.mu.Lock()
	f.log = log
	f.mu.Unlock()
}

// Start pushes a new running root and returns its name. An empty name picks
// the first unused "Stopwatch N". A name already running as a root is
// reported as a warning and nothing starts.
func (f *Forest) Start(name string) string {
	f.mu.Lock()
	log := f.log
	if name == "" {
		name = f.autoRootName()
	} else if f.rootIndex(name) >= 0 {
		f.mu.Unlock()
		log.Warning(`StartStopwatch("` + name + `") called but stopwatch by name was already running`)
		return ""
	}
	f.roots = append(f.roots, newNode(name, f.clock()))
	f.mu.Unlock()
	return name
}

func (f *Forest) autoRootName() string {
	for i := 1; ; i++ {
		name := "Stopwatch " + strconv.Itoa(i)
		if f.rootIndex(name) < 0 {
			return name
		}
	}
}

func (f *Forest) rootIndex(name string) int {
	for i := len(f.roots) - 1; i >= 0; i-- {
		if f.roots[i].Name == name {
			return i
		}
	}
	return -1
}

// lookup finds a running node by name: roots newest first, then the running
// descendants of each root.
func (f *Forest) lookup(name string) *Node {
	if i := f.rootIndex(name); i >= 0 {
		return f.roots[i]
	}
	for i := len(f.roots) - 1; i >= 0; i-- {
		if hit := f.roots[i].find(name); hit != nil {
			return hit
		}
	}
	return nil
}

// StartSub nests a new stopwatch under the deepest running node of the latest
// root and returns its name. An empty name becomes "Sub Stopwatch N", N being
// one more than the number of running children of that node.
func (f *Forest) StartSub(name string) string {
	f.mu.Lock()
	log := f.log
	if len(f.roots) == 0 {
		f.mu.Unlock()
		if name == "" {
			log.Warning("StartSubStopwatch() was called but no stopwatches were running.")
		} else {
			log.Warning(`StartSubStopwatch("` + name + `") was called but no stopwatches were running.`)
		}
		return ""
	}
	name = f.nest(f.roots[len(f.roots)-1], name)
	f.mu.Unlock()
	return name
}

// StartSubUnder nests name under parent, found anywhere in the forest. A
// missing parent is started as a new root first.
func (f *Forest) StartSubUnder(parent, name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.lookup(parent)
	if p == nil {
		p = newNode(parent, f.clock())
		f.roots = append(f.roots, p)
	}
	return f.nest(p, name)
}

func (f *Forest) nest(under *Node, name string) string {
	host := under.deepest()
	if name == "" {
		name = "Sub Stopwatch " + strconv.Itoa(len(host.active)+1)
	}
	host.active = append(host.active, newNode(name, f.clock()))
	return name
}

// FinishSub stops the deepest running descendant of the latest root.
func (f *Forest) FinishSub() {
	f.mu.Lock()
	log := f.log
	if len(f.roots) == 0 {
		f.mu.Unlock()
		log.Warning("FinishSubStopwatch() was called but no stopwatches were running.")
		return
	}
	ok := f.finishDeepest(f.roots[len(f.roots)-1])
	f.mu.Unlock()
	if !ok {
		log.Warning(noSubsRunning)
	}
}

const noSubsRunning = "FinishSubStopwatch was called but there were no sub-stopwatches running. " +
	"Make sure that the number of StartSubStopwatch and FinishSubStopwatch calls are always equal."

// FinishSubUnder stops the deepest running descendant of parent.
func (f *Forest) FinishSubUnder(parent string) {
	f.mu.Lock()
	log := f.log
	p := f.lookup(parent)
	if p == nil {
		f.mu.Unlock()
		log.Warning(`FinishSubStopwatch("` + parent + `") was called but parent stopwatch by the given name was not found.`)
		return
	}
	ok := f.finishDeepest(p)
	f.mu.Unlock()
	if !ok {
		log.Warning(noSubsRunning)
	}
}

// FinishSubNamed stops the running descendant called name under parent,
// together with anything still running below it.
func (f *Forest) FinishSubNamed(parent, name string) {
	f.mu.Lock()
	log := f.log
	p := f.lookup(parent)
	if p == nil {
		f.mu.Unlock()
		log.Warning(`FinishSubStopwatch("` + parent + `", "` + name + `") was called but parent stopwatch by the given name was not found.`)
		return
	}
	target := p.find(name)
	if target == nil {
		f.mu.Unlock()
		log.Warning(`FinishSubStopwatch("` + name + `") was called but there were no sub-stopwatches with such name.`)
		return
	}
	target.finish(f.clock())
	p.parentOf(target).detach(target)
	f.mu.Unlock()
}

func (f *Forest) finishDeepest(under *Node) bool {
	if len(under.active) == 0 {
		return false
	}
	leaf := under.deepest()
	leaf.finish(f.clock())
	under.parentOf(leaf).detach(leaf)
	return true
}

// Finish stops the latest root with all of its descendants, logs the report
// and forgets the root.
func (f *Forest) Finish() (Result, bool) {
	f.mu.Lock()
	log := f.log
	if len(f.roots) == 0 {
		f.mu.Unlock()
		log.Warning("FinishStopwatch() was called but no stopwatches were running.")
		return Result{}, false
	}
	last := len(f.roots) - 1
	root := f.roots[last]
	f.roots = f.roots[:last]
	r := f.complete(root)
	f.mu.Unlock()
	log.Report(r)
	return r, true
}

// FinishNamed is Finish for the stopwatch called name. A nested match is
// finished and reported on its own, leaving its ancestors running.
func (f *Forest) FinishNamed(name string) (Result, bool) {
	f.mu.Lock()
	log := f.log
	var node *Node
	if i := f.rootIndex(name); i >= 0 {
		node = f.roots[i]
		f.roots = append(f.roots[:i], f.roots[i+1:]...)
	} else {
		for i := len(f.roots) - 1; i >= 0 && node == nil; i-- {
			if hit := f.roots[i].find(name); hit != nil {
				node = hit
				f.roots[i].parentOf(hit).detach(hit)
			}
		}
	}
	if node == nil {
		f.mu.Unlock()
		log.Warning(`FinishStopwatch("` + name + `") was called but no stopwatch by the given name were running.`)
		return Result{}, false
	}
	r := f.complete(node)
	f.mu.Unlock()
	log.Report(r)
	return r, true
}

// FinishAll finishes and reports every root, newest first, and clears the forest.
func (f *Forest) FinishAll() []Result {
	f.mu.Lock()
	log := f.log
	out := make([]Result, 0, len(f.roots))
	for i := len(f.roots) - 1; i >= 0; i-- {
		out = append(out, f.complete(f.roots[i]))
	}
	f.roots = nil
	f.mu.Unlock()
	for _, r := range out {
		log.Report(r)
	}
	return out
}

func (f *Forest) complete(n *Node) Result {
	n.finish(f.clock())
	return n.result()
}

// Running returns the names of the running roots in start order.
func (f *Forest) Running() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.roots))
	for i, r := range f.roots {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of running roots.
func (f *Forest) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.roots)
}

// Reset drops every stopwatch without reporting.
func (f *Forest) Reset() {
	f.mu.Lock()
	f.roots = nil
	f.mu.Unlock()
}
