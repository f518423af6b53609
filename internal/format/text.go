package format

import "strings"

// Text is a rendering in both forms. Plain never contains markup;
// stripping the active styler's markup from Decorated yields Plain.
type Text struct {
	Plain     string
	Decorated string
}

// Same returns a Text whose two forms are s.
func Same(s string) Text { return Text{Plain: s, Decorated: s} }

// IsEmpty reports whether both forms are empty.
func (t Text) IsEmpty() bool { return t.Plain == "" && t.Decorated == "" }

// Concat appends u to t form by form.
func (t Text) Concat(u Text) Text {
	return Text{Plain: t.Plain + u.Plain, Decorated: t.Decorated + u.Decorated}
}

// String returns the plain form.
func (t Text) String() string { return t.Plain }

// textBuilder grows both forms in lockstep.
type textBuilder struct {
	plain strings.Builder
	deco  strings.Builder
}

func (b *textBuilder) text(t Text) {
	b.plain.WriteString(t.Plain)
	b.deco.WriteString(t.Decorated)
}

// same writes s unchanged into both forms.
func (b *textBuilder) same(s string) {
	b.plain.WriteString(s)
	b.deco.WriteString(s)
}

// styled writes s into plain and painted into decorated.
func (b *textBuilder) styled(s, painted string) {
	b.plain.WriteString(s)
	b.deco.WriteString(painted)
}

func (b *textBuilder) Text() Text {
	return Text{Plain: b.plain.String(), Decorated: b.deco.String()}
}
