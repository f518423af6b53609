package engine

import (
	"os"

	"chanlog/internal/channel"
	"chanlog/internal/format"
	"chanlog/internal/sink"
	"chanlog/internal/stopwatch"
)

// CriticalLogFile receives critical messages in stripped builds when
// AlwaysIncludeInBuilds is set.
const CriticalLogFile = "Player.log"

// CriticalPrefix opens critical messages in stripped builds.
const CriticalPrefix = "Critical!!\n"

// Config holds engine-wide settings.
type Config struct {
	// Sink receives every message; nil drops them.
	Sink sink.Sink
	// Format configures the text formatter.
	Format format.Options
	// Layout is applied to normal messages.
	Layout format.Layout

	// UseLargeFont renders critical messages with LayoutLargeFont in normal builds.
	UseLargeFont bool
	// AlwaysIncludeInBuilds also writes critical messages to CriticalLogFile in stripped builds.
	AlwaysIncludeInBuilds bool
	// IncludeCriticalPrefixInBuilds prepends CriticalPrefix in stripped builds.
	IncludeCriticalPrefixInBuilds bool

	// HideStackRows lists substrings of frames dropped from captured stacks,
	// in addition to the engine's own frames.
	HideStackRows []string

	// Registry is the channel registry; nil creates a fresh one.
	Registry *channel.Registry
	// Files resolves AppendToFile paths; nil uses sink.DefaultLogDir.
	Files *sink.FileSink
	// Clock drives stopwatches; nil uses time.Now.
	Clock stopwatch.Clock
}

// DefaultConfig writes plain text with a severity tag to stderr.
func DefaultConfig() Config {
	return Config{
		Sink:                          sink.NewStreamSink(os.Stderr, sink.WithForm(sink.FormPlain), sink.WithSeverityTag()),
		Format:                        format.DefaultOptions(),
		Layout:                        format.LayoutClean,
		UseLargeFont:                  true,
		AlwaysIncludeInBuilds:         true,
		IncludeCriticalPrefixInBuilds: true,
	}
}

// engineFrames are always hidden from captured stacks.
var engineFrames = []string{
	"chanlog/internal/engine.(*Engine)",
	"chanlog/internal/engine.(*core)",
}

func (c Config) hiddenRows() []string {
	rows := make([]string, 0, len(engineFrames)+len(c.HideStackRows))
	rows = append(rows, engineFrames...)
	return append(rows, c.HideStackRows...)
}

// Option adjusts a single logging call. Options may appear anywhere among the
// logged values and are not rendered.
type Option func(*call)

type call struct {
	ctx    any
	fields []string
}

// WithContext attaches an object reference to the message.
func WithContext(ctx any) Option {
	return func(c *call) { c.ctx = ctx }
}

// WithFields limits LogState to the named fields.
func WithFields(names ...string) Option {
	return func(c *call) { c.fields = append(c.fields, names...) }
}

// splitArgs separates options from the values to render.
func splitArgs(args []any) ([]any, call) {
	var c call
	n := 0
	for _, a := range args {
		if opt, ok := a.(Option); ok {
			if opt != nil {
				opt(&c)
			}
			continue
		}
		n++
	}
	if n == len(args) {
		return args, c
	}
	values := make([]any, 0, n)
	for _, a := range args {
		if _, ok := a.(Option); !ok {
			values = append(values, a)
		}
	}
	return values, c
}
