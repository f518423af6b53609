package config

import (
	"errors"
	"fmt"

	"chanlog/internal/channel"
	"chanlog/internal/engine"
	"chanlog/internal/format"
	"chanlog/internal/sink"
)

// Options converts the formatting keys into formatter options and the layout
// of normal messages.
func (s Settings) Options() (format.Options, format.Layout, error) {
	layout, err := format.ParseLayout(s.DefaultFormatting)
	if err != nil {
		return format.Options{}, 0, err
	}
	st, err := format.ParseStyler(s.Style)
	if err != nil {
		return format.Options{}, 0, err
	}
	opt := format.DefaultOptions()
	opt.Styler = st
	opt.Colorize = s.Colorize
	opt.MaxLineLength = s.MaxLineLength
	if s.NameValueSeparator != "" {
		opt.NameValueSeparator = s.NameValueSeparator
	}
	if s.MultipleEntrySeparator != "" {
		opt.EntrySeparator = s.MultipleEntrySeparator
	}
	opt.Colors = mergeColors(opt.Colors, s.Colors)
	return opt, layout, nil
}

// empty roles keep the built-in tag
func mergeColors(base format.Colors, c ColorSettings) format.Colors {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.True, c.True)
	pick(&base.False, c.False)
	pick(&base.String, c.String)
	pick(&base.Numeric, c.Numeric)
	pick(&base.Separator, c.Separator)
	return base
}

// Apply pushes s into e: formatter, critical flags, stack filters, log
// directory and channel table. Settings not named by the file keep their
// defaults; channels not listed keep their runtime state.
func (s Settings) Apply(e *engine.Engine) error {
	if err := s.Validate(); err != nil {
		return err
	}
	opt, layout, err := s.Options()
	if err != nil {
		return err
	}
	cfg := e.Config()
	cfg.Format = opt
	cfg.Layout = layout
	cfg.UseLargeFont = s.UseLargeFont
	cfg.AlwaysIncludeInBuilds = s.AlwaysIncludeInBuilds
	cfg.IncludeCriticalPrefixInBuilds = s.IncludeCriticalPrefixInBuilds
	cfg.HideStackRows = append([]string(nil), s.HideStackTraceRows...)
	if s.LogDir != "" {
		cfg.Files = sink.NewFileSink(s.LogDir)
	}
	e.Configure(cfg)

	reg := e.Channels()
	reg.SetAllEnabledByDefault(s.AllChannelsEnabledByDefault)
	reg.SetIgnoreUnlisted(s.IgnoreUnlistedChannels)
	for _, ch := range s.Channels {
		if ch.Enabled != nil {
			reg.SetEnabled(ch.Name, *ch.Enabled)
		} else {
			reg.SetState(ch.Name, channel.Default)
		}
		if ch.Color != "" {
			reg.SetColor(ch.Name, ch.Color)
		}
	}
	return nil
}

// LoadInto discovers the settings file above startDir and applies it to e.
// A missing file applies nothing and is not an error. The returned path is
// empty in that case.
func LoadInto(e *engine.Engine, startDir string) (string, error) {
	s, path, err := Discover(startDir)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", nil
	case err != nil:
		return path, err
	}
	if err := s.Apply(e); err != nil {
		return path, fmt.Errorf("%s: failed to apply settings: %w", path, err)
	}
	return path, nil
}
