package engine

import (
	"sync"

	"chanlog/internal/channel"
	"chanlog/internal/diag"
	"chanlog/internal/format"
	"chanlog/internal/sink"
	"chanlog/internal/stopwatch"
	"chanlog/internal/suppress"
	"chanlog/internal/tracker"
)

// core is the state shared by the normal and the critical view of an engine.
type core struct {
	mu     sync.RWMutex
	cfg    Config
	fmt    *format.Formatter
	sink   sink.Sink
	hidden []string

	reg   *channel.Registry
	gate  *suppress.Gate
	files *sink.FileSink

	ensures *diag.DedupCache
	guards  *diag.DedupCache

	lastMu   sync.Mutex
	lastText string
	lastCtx  any

	obsMu     sync.Mutex
	observers []observer
	nextObs   int

	watches  *stopwatch.Forest
	trackers *tracker.Set

	stripped bool
}

type observer struct {
	id int
	fn func(diag.Message)
}

// Engine is the diagnostics facade. The zero value is not usable; create
// engines with New or use Default.
type Engine struct {
	c        *core
	critical bool
}

// New creates an engine from cfg.
func New(cfg Config) *Engine {
	reg := cfg.Registry
	if reg == nil {
		reg = channel.NewRegistry()
	}
	files := cfg.Files
	if files == nil {
		files = sink.NewFileSink("")
	}
	c := &core{
		reg:      reg,
		gate:     suppress.New(reg),
		files:    files,
		ensures:  diag.NewDedupCache(),
		guards:   diag.NewDedupCache(),
		stripped: stripped,
	}
	c.apply(cfg)
	e := &Engine{c: c}
	c.watches = stopwatch.New(stopwatchLog{e}, cfg.Clock)
	c.trackers = tracker.New(trackerLog{e}, c.render)
	return e
}

var std = sync.OnceValue(func() *Engine { return New(DefaultConfig()) })

// Default returns the process-wide engine.
func Default() *Engine { return std() }

func (c *core) apply(cfg Config) {
	if cfg.Registry == nil {
		cfg.Registry = c.reg
	}
	if cfg.Files == nil {
		cfg.Files = c.files
	}
	s := cfg.Sink
	if s == nil {
		s = sink.Nop
	}
	c.mu.Lock()
	c.cfg = cfg
	c.fmt = format.New(cfg.Format)
	c.sink = s
	c.hidden = cfg.hiddenRows()
	c.mu.Unlock()
}

// Critical returns the privileged view of e: never stripped, large font in
// normal builds, CriticalPrefix in stripped builds.
func (e *Engine) Critical() *Engine {
	return &Engine{c: e.c, critical: true}
}

// IsCritical reports whether e is the critical view.
func (e *Engine) IsCritical() bool { return e.critical }

// Configure replaces the settings of e. Registry and file sink are kept
// unless cfg names new ones; the stopwatch clock is fixed by New. Channel
// state, caches and trackers survive.
func (e *Engine) Configure(cfg Config) {
	if cfg.Registry != nil && cfg.Registry != e.c.reg {
		// the gate follows the registry
		e.c.mu.Lock()
		e.c.reg = cfg.Registry
		e.c.gate = suppress.New(cfg.Registry)
		e.c.mu.Unlock()
	}
	if cfg.Files != nil {
		e.c.mu.Lock()
		e.c.files = cfg.Files
		e.c.mu.Unlock()
	}
	e.c.apply(cfg)
}

// Config returns a copy of the current settings.
func (e *Engine) Config() Config {
	e.c.mu.RLock()
	defer e.c.mu.RUnlock()
	return e.c.cfg
}

// SetSink replaces the message destination. Nil drops everything.
func (e *Engine) SetSink(s sink.Sink) {
	cfg := e.Config()
	cfg.Sink = s
	e.c.apply(cfg)
}

// SetFormat replaces the formatter options.
func (e *Engine) SetFormat(opt format.Options) {
	cfg := e.Config()
	cfg.Format = opt
	e.c.apply(cfg)
}

// SetLayout replaces the layout of normal messages.
func (e *Engine) SetLayout(l format.Layout) {
	cfg := e.Config()
	cfg.Layout = l
	e.c.apply(cfg)
}

// Formatter returns the active formatter.
func (e *Engine) Formatter() *format.Formatter {
	e.c.mu.RLock()
	defer e.c.mu.RUnlock()
	return e.c.fmt
}

// Channels returns the channel registry.
func (e *Engine) Channels() *channel.Registry {
	e.c.mu.RLock()
	defer e.c.mu.RUnlock()
	return e.c.reg
}

// EnableChannel forces channel name on.
func (e *Engine) EnableChannel(name string) { e.Channels().Enable(name) }

// DisableChannel forces channel name off.
func (e *Engine) DisableChannel(name string) { e.Channels().Disable(name) }

// IsChannelEnabled reports whether messages on name are shown.
func (e *Engine) IsChannelEnabled(name string) bool { return e.Channels().IsNameEnabled(name) }

// LastMessage returns the plain text and context of the last visible message.
func (e *Engine) LastMessage() (string, any) {
	e.c.lastMu.Lock()
	defer e.c.lastMu.Unlock()
	return e.c.lastText, e.c.lastCtx
}

// OnSuppressed subscribes fn to messages hidden by disabled channels. The
// returned function cancels the subscription.
func (e *Engine) OnSuppressed(fn func(diag.Message)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	c := e.c
	c.obsMu.Lock()
	c.nextObs++
	id := c.nextObs
	c.observers = append(c.observers, observer{id: id, fn: fn})
	c.obsMu.Unlock()
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *core) notify(m diag.Message) {
	c.obsMu.Lock()
	obs := make([]observer, len(c.observers))
	copy(obs, c.observers)
	c.obsMu.Unlock()
	for _, o := range obs {
		o.fn(m)
	}
}

// AppendToFile writes text to a log file, see sink.FileSink.Append.
func (e *Engine) AppendToFile(text, path string, policy sink.ClearPolicy) error {
	return e.files().Append(text, path, policy)
}

// ClearLogFile removes a log file, optionally keeping a "-prev" backup.
func (e *Engine) ClearLogFile(path string, backup bool) error {
	return e.files().Clear(path, backup)
}

// LogFilePath returns the file AppendToFile writes for path.
func (e *Engine) LogFilePath(path string) string { return e.files().Resolve(path) }

func (e *Engine) files() *sink.FileSink {
	e.c.mu.RLock()
	defer e.c.mu.RUnlock()
	return e.c.files
}

// Reset forgets channels, dedup sites, the last message, observers,
// stopwatches and trackers. Settings are kept.
func (e *Engine) Reset() {
	c := e.c
	c.reg.Reset()
	c.ensures.Reset()
	c.guards.Reset()
	c.lastMu.Lock()
	c.lastText, c.lastCtx = "", nil
	c.lastMu.Unlock()
	c.obsMu.Lock()
	c.observers = nil
	c.obsMu.Unlock()
	c.watches.Reset()
	c.trackers.Clear()
	c.trackers.ClearDisplayed()
}

// snapshot is the per-call view of the settings.
type snapshot struct {
	cfg    Config
	fmt    *format.Formatter
	sink   sink.Sink
	hidden []string
	reg    *channel.Registry
	gate   *suppress.Gate
	files  *sink.FileSink
}

func (c *core) snapshot() snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot{
		cfg:    c.cfg,
		fmt:    c.fmt,
		sink:   c.sink,
		hidden: c.hidden,
		reg:    c.reg,
		gate:   c.gate,
		files:  c.files,
	}
}

// render is the tracker value renderer.
func (c *core) render(v any) string {
	return c.snapshot().fmt.FormatAny(v, true).Plain
}
