// Package suppress decides whether a message is hidden by the channel tags it
// starts with.
package suppress

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Channels is the part of the channel registry the gate consults.
type Channels interface {
	Exists(name string) bool
	IsNameEnabled(name string) bool
	IgnoreUnlisted() bool
}

// Gate decides whether a composed message is hidden by its leading channel tags.
type Gate struct {
	ch Channels
}

// New returns a gate over ch.
func New(ch Channels) *Gate {
	return &Gate{ch: ch}
}

// HasChannelPrefix reports whether text opens with something the gate treats
// as a channel tag: "[" followed by a letter or digit, a closing "]" that is
// not the last character, and (with IgnoreUnlisted) a registered name.
//
// A first "]" at the very end means the whole text is one bracketed token
// (array or JSON-looking output) and is never a prefix.
func (g *Gate) HasChannelPrefix(text string) bool {
	if len(text) <= 4 || text[0] != '[' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[1:])
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return false
	}
	end := strings.IndexByte(text, ']')
	if end < 0 || end == len(text)-1 {
		return false
	}
	if g.ch != nil && g.ch.IgnoreUnlisted() && !g.ch.Exists(text[1:end]) {
		return false
	}
	return true
}

// ShouldHide reports whether every leading channel tag of text names a
// disabled channel. Any enabled tag wins.
func (g *Gate) ShouldHide(text string) bool {
	if g == nil || g.ch == nil || !g.HasChannelPrefix(text) {
		return false
	}
	hide := false
	for _, name := range leadingTags(text) {
		if g.ch.IsNameEnabled(name) {
			return false
		}
		hide = true
	}
	return hide
}

// Tags returns the names of the consecutive leading "[name]" groups.
func (g *Gate) Tags(text string) []string {
	if !g.HasChannelPrefix(text) {
		return nil
	}
	return leadingTags(text)
}

// leadingTags scans "[a][b] rest" into {"a", "b"}, stopping at the first
// closing bracket that is not directly followed by "[".
func leadingTags(text string) []string {
	var names []string
	i := 0
	for i < len(text) && text[i] == '[' {
		end := strings.IndexByte(text[i:], ']')
		if end < 0 {
			break
		}
		names = append(names, text[i+1:i+end])
		i += end + 1
	}
	return names
}
