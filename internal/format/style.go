package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

// Styler owns the markup vocabulary used by the decorated form.
type Styler interface {
	// Name identifies the styler in configuration ("rich", "ansi", "plain").
	Name() string
	// Paint wraps s in the colour identified by tag.
	Paint(tag, s string) string
	// Large renders s in the large-font layout.
	Large(size int, s string) string
	// Strip removes every markup sequence this styler produces.
	Strip(s string) string
	// StartsWithMarkup reports whether s opens with a markup sequence.
	StartsWithMarkup(s string) bool
	// HasMarkup reports whether s contains any markup sequence.
	HasMarkup(s string) bool
}

// ParseStyler converts a configuration name to a Styler.
func ParseStyler(name string) (Styler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rich", "richtext":
		return RichText{}, nil
	case "ansi":
		return ANSI{}, nil
	case "plain", "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("invalid style: %q (expected: rich|ansi|plain)", name)
	}
}

// RichText emits <color=..> and <size=..> tags.
type RichText struct{}

var richTagRE = regexp.MustCompile(`</?(?:color|size|b|i)(?:=[^<>]*)?>`)

func (RichText) Name() string { return "rich" }

func (RichText) Paint(tag, s string) string {
	if tag == "" || s == "" {
		return s
	}
	return "<color=" + tag + ">" + s + "</color>"
}

func (RichText) Large(size int, s string) string {
	if size <= 0 || s == "" {
		return s
	}
	return "<size=" + strconv.Itoa(size) + ">" + s + "</size>"
}

func (RichText) Strip(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	// "<<b>b>" leaves a tag behind after one pass
	for {
		out := richTagRE.ReplaceAllString(s, "")
		if out == s {
			return out
		}
		s = out
	}
}

func (RichText) StartsWithMarkup(s string) bool {
	if !strings.HasPrefix(s, "<") {
		return false
	}
	loc := richTagRE.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

func (RichText) HasMarkup(s string) bool {
	return strings.Contains(s, "<") && richTagRE.MatchString(s)
}

// ANSI emits terminal escape sequences through fatih/color.
type ANSI struct{}

var ansiNamed = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"grey":      color.FgHiBlack,
	"gray":      color.FgHiBlack,
	"silver":    color.FgWhite,
	"orange":    color.FgHiYellow,
	"brown":     color.FgYellow,
	"teal":      color.FgCyan,
	"darkblue":  color.FgBlue,
	"lightblue": color.FgHiBlue,
	"maroon":    color.FgRed,
	"olive":     color.FgYellow,
	"purple":    color.FgMagenta,
}

func (ANSI) Name() string { return "ansi" }

func (ANSI) Paint(tag, s string) string {
	if tag == "" || s == "" {
		return s
	}
	c := ansiColor(tag)
	if c == nil {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func (ANSI) Large(_ int, s string) string {
	if s == "" {
		return s
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}

func (ANSI) Strip(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansi.Strip(s)
}

func (ANSI) StartsWithMarkup(s string) bool {
	return strings.HasPrefix(s, "\x1b")
}

func (ANSI) HasMarkup(s string) bool {
	return strings.Contains(s, "\x1b")
}

func ansiColor(tag string) *color.Color {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if attr, ok := ansiNamed[tag]; ok {
		return color.New(attr)
	}
	if r, g, b, ok := parseHex(tag); ok {
		return color.RGB(r, g, b)
	}
	return nil
}

func parseHex(tag string) (r, g, b int, ok bool) {
	hex, found := strings.CutPrefix(tag, "#")
	if !found || (len(hex) != 6 && len(hex) != 8) {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// None produces no markup; decorated equals plain.
type None struct{}

func (None) Name() string                 { return "plain" }
func (None) Paint(_, s string) string     { return s }
func (None) Large(_ int, s string) string { return s }
func (None) Strip(s string) string        { return s }
func (None) StartsWithMarkup(string) bool { return false }
func (None) HasMarkup(string) bool        { return false }
