// Package format renders values into two synchronised forms: plain text and
// decorated text carrying styler markup.
//
// Назначение: closed Value variants (Of adapts Go values at the boundary),
// number/collection/vector rules, channel prefixes, multi-value joining,
// positional templating and the plain-text highlighter.
// Не делает: решений о подавлении сообщений и IO.
//
// Every Text produced here satisfies Styler.Strip(Decorated) == Plain.
package format
