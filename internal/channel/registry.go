package channel

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// DefaultPalette is the colour rotation applied to channels created without an explicit colour.
var DefaultPalette = []string{
	"#008080", "magenta", "#800000", "green", "#FFA500", "#800080", "blue", "yellow", "#A52A2A",
}

type entry struct {
	name  string
	state State
	color string
}

// Registry owns channel identities and their enabled state.
// Slot 0 of entries is reserved so that an ID doubles as the slice index.
type Registry struct {
	mu             sync.RWMutex
	byName         map[string]ID
	entries        []entry
	allByDefault   bool
	ignoreUnlisted bool
	palette        []string
	nextColor      int
	observers      []func(*Registry)
}

// NewRegistry returns an empty registry with every channel enabled by default.
func NewRegistry() *Registry {
	return &Registry{
		byName:       make(map[string]ID),
		entries:      []entry{{}},
		allByDefault: true,
		palette:      append([]string(nil), DefaultPalette...),
	}
}

// Canonical returns the lookup form of a channel name.
func Canonical(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// GetOrCreate returns the channel called name, registering it on first use.
// An empty name yields the "no channel" sentinel.
func (r *Registry) GetOrCreate(name string) Channel {
	name = Canonical(name)
	if name == "" {
		return Channel{}
	}
	r.mu.RLock()
	id, ok := r.byName[name]
	if ok {
		ch := r.snapshotLocked(id)
		r.mu.RUnlock()
		return ch
	}
	r.mu.RUnlock()

	r.mu.Lock()
	id = r.ensureLocked(name)
	ch := r.snapshotLocked(id)
	r.mu.Unlock()
	return ch
}

// ByID looks a channel up by id. Unknown ids return the "no channel" sentinel and false.
func (r *Registry) ByID(id ID) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.validLocked(id) {
		return Channel{}, false
	}
	return r.snapshotLocked(id), true
}

// Lookup returns the channel called name without creating it.
func (r *Registry) Lookup(name string) (Channel, bool) {
	name = Canonical(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return Channel{}, false
	}
	return r.snapshotLocked(id), true
}

// Exists reports whether name has been registered.
func (r *Registry) Exists(name string) bool {
	name = Canonical(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Enable forces the channel on, creating it if needed.
func (r *Registry) Enable(name string) { r.SetState(name, ForceEnabled) }

// Disable forces the channel off, creating it if needed.
func (r *Registry) Disable(name string) { r.SetState(name, ForceDisabled) }

// SetEnabled is Enable or Disable depending on enabled.
func (r *Registry) SetEnabled(name string, enabled bool) {
	if enabled {
		r.Enable(name)
		return
	}
	r.Disable(name)
}

// SetState records an explicit override (or Default) for the channel.
func (r *Registry) SetState(name string, s State) {
	name = Canonical(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	id := r.ensureLocked(name)
	e := &r.entries[id]
	before := e.state.Resolve(r.allByDefault)
	e.state = s
	changed := before != s.Resolve(r.allByDefault)
	obs := r.observersLocked(changed)
	r.mu.Unlock()
	r.notify(obs)
}

// IsEnabled reports whether the channel id is visible.
// None and unknown ids are not restricting channels and report true.
func (r *Registry) IsEnabled(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.validLocked(id) {
		return true
	}
	return r.entries[id].state.Resolve(r.allByDefault)
}

// IsNameEnabled reports whether the named channel is visible. Unregistered names
// resolve against the registry default.
func (r *Registry) IsNameEnabled(name string) bool {
	name = Canonical(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return r.allByDefault
	}
	return r.entries[id].state.Resolve(r.allByDefault)
}

// IsEitherEnabled is the OR of the restricting channels among id1 and id2.
// When neither is a restricting channel the pair counts as enabled.
func (r *Registry) IsEitherEnabled(id1, id2 ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restricting := false
	for _, id := range [2]ID{id1, id2} {
		if !r.validLocked(id) {
			continue
		}
		restricting = true
		if r.entries[id].state.Resolve(r.allByDefault) {
			return true
		}
	}
	return !restricting
}

// SetColor overrides the colour tag used in decorated prefixes.
func (r *Registry) SetColor(name, color string) {
	name = Canonical(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	id := r.ensureLocked(name)
	r.entries[id].color = color
	r.mu.Unlock()
}

// Color returns the colour tag of the named channel, registering it if needed.
func (r *Registry) Color(name string) string {
	return r.GetOrCreate(name).Color
}

// SetPalette replaces the colour rotation used for new channels.
func (r *Registry) SetPalette(colors []string) {
	if len(colors) == 0 {
		return
	}
	r.mu.Lock()
	r.palette = append([]string(nil), colors...)
	r.nextColor = (len(r.entries) - 1) % len(r.palette)
	r.mu.Unlock()
}

// AllEnabledByDefault reports the registry-wide default for channels in Default state.
func (r *Registry) AllEnabledByDefault() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allByDefault
}

// SetAllEnabledByDefault changes the default applied to channels without an override.
func (r *Registry) SetAllEnabledByDefault(v bool) {
	r.mu.Lock()
	changed := false
	if r.allByDefault != v {
		for _, e := range r.entries[1:] {
			if e.state == Default {
				changed = true
				break
			}
		}
	}
	r.allByDefault = v
	obs := r.observersLocked(changed)
	r.mu.Unlock()
	r.notify(obs)
}

// IgnoreUnlisted reports whether bracketed prefixes must name registered channels.
func (r *Registry) IgnoreUnlisted() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ignoreUnlisted
}

// SetIgnoreUnlisted toggles IgnoreUnlisted.
func (r *Registry) SetIgnoreUnlisted(v bool) {
	r.mu.Lock()
	r.ignoreUnlisted = v
	r.mu.Unlock()
}

// OnChange registers fn to run whenever the effective enabled set changes.
// The callback runs without the registry lock held.
func (r *Registry) OnChange(fn func(*Registry)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// Names returns all registered channel names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// All returns snapshots of every registered channel sorted by name.
func (r *Registry) All() []Channel {
	r.mu.RLock()
	out := make([]Channel, 0, len(r.entries)-1)
	for i := 1; i < len(r.entries); i++ {
		out = append(out, r.snapshotLocked(ID(i)))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) - 1
}

// Reset forgets every override and colour, keeping identities stable.
func (r *Registry) Reset() {
	r.mu.Lock()
	changed := false
	for i := 1; i < len(r.entries); i++ {
		if r.entries[i].state != Default {
			changed = true
		}
		r.entries[i].state = Default
	}
	r.allByDefault = true
	r.ignoreUnlisted = false
	obs := r.observersLocked(changed)
	r.mu.Unlock()
	r.notify(obs)
}

func (r *Registry) ensureLocked(name string) ID {
	if id, ok := r.byName[name]; ok {
		return id
	}
	color := ""
	if len(r.palette) > 0 {
		color = r.palette[r.nextColor]
		r.nextColor = (r.nextColor + 1) % len(r.palette)
	}
	r.entries = append(r.entries, entry{name: name, color: color})
	slot, err := safecast.Conv[uint32](len(r.entries) - 1)
	if err != nil {
		panic(fmt.Errorf("channel id overflow: %w", err))
	}
	id := ID(slot)
	r.byName[name] = id
	return id
}

func (r *Registry) validLocked(id ID) bool {
	return id != None && int(id) < len(r.entries)
}

func (r *Registry) snapshotLocked(id ID) Channel {
	e := r.entries[id]
	return Channel{
		ID:      id,
		Name:    e.name,
		State:   e.state,
		Color:   e.color,
		Enabled: e.state.Resolve(r.allByDefault),
	}
}

func (r *Registry) observersLocked(changed bool) []func(*Registry) {
	if !changed || len(r.observers) == 0 {
		return nil
	}
	return append([]func(*Registry){}, r.observers...)
}

func (r *Registry) notify(obs []func(*Registry)) {
	for _, fn := range obs {
		fn(r)
	}
}
