package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"chanlog/internal/format"
)

// FileName is the settings file looked up by Find.
const FileName = "chanlog.toml"

// ErrNotFound is returned by Discover when no settings file exists.
var ErrNotFound = errors.New("no " + FileName + " found")

// Settings mirrors chanlog.toml.
type Settings struct {
	UseLargeFont                  bool     `toml:"use_large_font"`
	AlwaysIncludeInBuilds         bool     `toml:"always_include_in_builds"`
	IncludeCriticalPrefixInBuilds bool     `toml:"include_critical_prefix_in_builds"`
	DefaultFormatting             string   `toml:"default_formatting"`
	MaxLineLength                 int      `toml:"max_length_before_line_splitting"`
	Colorize                      bool     `toml:"colorize"`
	Style                         string   `toml:"style"`
	NameValueSeparator            string   `toml:"name_value_separator"`
	MultipleEntrySeparator        string   `toml:"multiple_entry_separator"`
	AllChannelsEnabledByDefault   bool     `toml:"all_channels_enabled_by_default"`
	IgnoreUnlistedChannels        bool     `toml:"ignore_unlisted_channels"`
	LogDir                        string   `toml:"log_dir"`
	HideStackTraceRows            []string `toml:"hide_stack_trace_rows"`

	Colors   ColorSettings     `toml:"colors"`
	Channels []ChannelSettings `toml:"channel"`

	defined map[string]bool
}

// ColorSettings holds the per-role colour tags.
type ColorSettings struct {
	True      string `toml:"true"`
	False     string `toml:"false"`
	String    string `toml:"string"`
	Numeric   string `toml:"numeric"`
	Separator string `toml:"separator"`
}

// ChannelSettings preconfigures one channel. A missing enabled key leaves the
// channel on the global default.
type ChannelSettings struct {
	Name    string `toml:"name"`
	Enabled *bool  `toml:"enabled,omitempty"`
	Color   string `toml:"color,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	opt := format.DefaultOptions()
	return Settings{
		UseLargeFont:                  true,
		AlwaysIncludeInBuilds:         true,
		IncludeCriticalPrefixInBuilds: true,
		DefaultFormatting:             format.LayoutClean.String(),
		MaxLineLength:                 opt.MaxLineLength,
		Colorize:                      opt.Colorize,
		Style:                         opt.Styler.Name(),
		NameValueSeparator:            opt.NameValueSeparator,
		MultipleEntrySeparator:        opt.EntrySeparator,
		AllChannelsEnabledByDefault:   true,
		Colors: ColorSettings{
			True:      opt.Colors.True,
			False:     opt.Colors.False,
			String:    opt.Colors.String,
			Numeric:   opt.Colors.Numeric,
			Separator: opt.Colors.Separator,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Unknown keys and invalid values are errors.
func Load(path string) (Settings, error) {
	s := Default()
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Settings{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	s.defined = make(map[string]bool)
	for _, k := range meta.Keys() {
		s.defined[k.String()] = true
	}
	return s, nil
}

// Discover finds and loads the settings file above startDir. It returns the
// defaults and ErrNotFound when there is none.
func Discover(startDir string) (Settings, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Default(), "", err
	}
	if !ok {
		return Default(), "", ErrNotFound
	}
	s, err := Load(path)
	return s, path, err
}

// IsDefined reports whether the loaded file set key ("style", "colors.true").
// Default settings define nothing.
func (s Settings) IsDefined(key string) bool { return s.defined[key] }

// Validate checks enumerations and limits.
func (s Settings) Validate() error {
	if _, err := format.ParseLayout(s.DefaultFormatting); err != nil {
		return fmt.Errorf("default_formatting: %w", err)
	}
	if _, err := format.ParseStyler(s.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if s.MaxLineLength <= 0 {
		return fmt.Errorf("max_length_before_line_splitting must be positive, got %d", s.MaxLineLength)
	}
	seen := make(map[string]struct{}, len(s.Channels))
	for i, ch := range s.Channels {
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			return fmt.Errorf("channel #%d: missing name", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("channel %q: defined twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}
