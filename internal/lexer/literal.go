package lexer

import (
	"strings"
	"unicode/utf8"
)

// StringValue returns the cooked value of a TokString token: delimiters
// stripped and escape sequences processed. Escape validity was checked
// during lexing; anything malformed here is passed through literally.
func StringValue(source []byte, tok Token) string {
	raw := source[tok.Span.Start+1 : tok.Span.End-1]
	return unescape(string(raw))
}

// TextBlockValue returns the cooked value of a TokTextBlock token.
// The opening '"""' plus its newline and the closing '"""' are stripped,
// incidental leading whitespace (the minimum indentation over non-blank
// lines and the closing delimiter line) is removed from every line, and
// escape sequences are processed.
func TextBlockValue(source []byte, tok Token) string {
	raw := string(source[tok.Span.Start+3 : tok.Span.End-3])
	raw = strings.TrimPrefix(raw, "\r")
	raw = strings.TrimPrefix(raw, "\n")
	lines := strings.Split(raw, "\n")

	// The last line holds only the indentation of the closing delimiter.
	closingIndent := len(lines[len(lines)-1])
	content := lines[:len(lines)-1]

	indent := closingIndent
	for _, line := range content {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); n < indent {
			indent = n
		}
	}

	var b strings.Builder
	for i, line := range content {
		if i > 0 {
			b.WriteByte('\n')
		}
		line = strings.TrimSuffix(line, "\r")
		if len(line) >= indent {
			line = line[indent:]
		} else {
			line = strings.TrimLeft(line, " \t")
		}
		b.WriteString(line)
	}
	return unescape(b.String())
}

// DocCommentText returns the text content of a TokDocComment token with
// the '///' marker and at most one following space removed.
func DocCommentText(source []byte, tok Token) string {
	raw := string(source[tok.Span.Start:tok.Span.End])
	raw = strings.TrimPrefix(raw, "///")
	raw = strings.TrimPrefix(raw, " ")
	return strings.TrimSuffix(raw, "\r")
}

// NumberText returns the raw text of a TokNumber token.
func NumberText(source []byte, tok Token) string {
	return string(source[tok.Span.Start:tok.Span.End])
}

// IsFloatText reports whether number text denotes a float
// (contains a fraction or exponent).
func IsFloatText(text string) bool {
	return strings.ContainsAny(text, ".eE")
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\n':
			// Line continuation: the backslash-newline pair vanishes.
		case 'u':
			if i+4 < len(s) {
				r := rune(0)
				valid := true
				for _, h := range []byte(s[i+1 : i+5]) {
					v, ok := hexVal(h)
					if !ok {
						valid = false
						break
					}
					r = r<<4 | rune(v)
				}
				if valid {
					b.WriteRune(r)
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			// Lexer already reported this; keep the input recognizable.
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return strings.ToValidUTF8(out, string(utf8.RuneError))
	}
	return out
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
