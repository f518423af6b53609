package format

// maxHighlightLength bounds the highlighter; longer texts pass through unchanged.
const maxHighlightLength = 1920

// Highlight colours numbers, quoted strings, single characters, the words
// true/false/null and '=' / ':' separators inside already-plain text. Text that
// already contains markup is returned as is.
func (f *Formatter) Highlight(text string) Text {
	if len(text) >= maxHighlightLength || f.st.HasMarkup(text) {
		return Text{Plain: f.st.Strip(text), Decorated: text}
	}
	if _, plain := f.st.(None); plain {
		return Same(text)
	}
	c := f.opt.Colors
	var b textBuilder
	n := len(text)
	for i := 0; i < n; {
		ch := text[i]
		switch {
		case ch == '"':
			end := indexFrom(text, i+1, '"')
			if end < 0 {
				b.same(text[i:])
				return b.Text()
			}
			tok := text[i : end+1]
			b.styled(tok, f.st.Paint(c.String, tok))
			i = end + 1
		case ch == '\'' && i+2 < n && text[i+2] == '\'' && !isWordByte(prev(text, i)):
			tok := text[i : i+3]
			b.styled(tok, f.st.Paint(c.String, tok))
			i += 3
		case isDigit(ch) || (ch == '-' && i+1 < n && isDigit(text[i+1]) && !isWordByte(prev(text, i))):
			if isWordByte(prev(text, i)) {
				j := scanWord(text, i)
				b.same(text[i:j])
				i = j
				continue
			}
			j := scanNumber(text, i)
			tok := text[i:j]
			b.styled(tok, f.st.Paint(c.Numeric, tok))
			i = j
		case isLetter(ch) || ch == '_':
			j := scanWord(text, i)
			word := text[i:j]
			switch word {
			case "true", "True":
				b.styled(word, f.st.Paint(c.True, word))
			case "false", "False", "null":
				b.styled(word, f.st.Paint(c.False, word))
			default:
				b.same(word)
			}
			i = j
		case ch == '=' || ch == ':':
			tok := text[i : i+1]
			b.styled(tok, f.st.Paint(c.Separator, tok))
			i++
		default:
			j := i + 1
			for j < n && !interesting(text[j]) {
				j++
			}
			b.same(text[i:j])
			i = j
		}
	}
	return b.Text()
}

func interesting(c byte) bool {
	return c == '"' || c == '\'' || c == '-' || c == '=' || c == ':' || c == '_' || isDigit(c) || isLetter(c)
}

func indexFrom(s string, from int, c byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func prev(s string, i int) byte {
	if i == 0 {
		return ' '
	}
	return s[i-1]
}

func scanWord(s string, i int) int {
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return i
}

func scanNumber(s string, i int) int {
	if s[i] == '-' {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80 }

func isWordByte(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }
