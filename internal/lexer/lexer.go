package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gosmithy/gosmithy/internal/types"
)

// Lexer tokenizes Smithy IDL source text.
type Lexer struct {
	source      []byte
	pos         int
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.SpanDiagnostic {
	return slices.Clone(l.diagnostics)
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	estimatedTokens := max(len(l.source)/6, 64)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() Token {
	start := l.pos
	b, ok := l.peek()
	if !ok {
		return l.emit(TokEOF, start)
	}

	switch {
	case isWs(b):
		for {
			c, ok := l.peek()
			if !ok || !isWs(c) {
				break
			}
			l.pos++
		}
		return l.emit(TokWs, start)
	case b == '/':
		return l.lexComment(start)
	case b == '"':
		return l.lexString(start)
	case b == '-' || isDigit(b):
		return l.lexNumber(start)
	case isIdentStart(b):
		for {
			c, ok := l.peek()
			if !ok || !isIdentPart(c) {
				break
			}
			l.pos++
		}
		return l.emit(TokIdentifier, start)
	}

	l.pos++
	switch b {
	case '@':
		return l.emit(TokAt, start)
	case ':':
		return l.emit(TokColon, start)
	case '=':
		return l.emit(TokEqual, start)
	case '.':
		return l.emit(TokDot, start)
	case '#':
		return l.emit(TokPound, start)
	case '$':
		return l.emit(TokDollar, start)
	case '{':
		return l.emit(TokLBrace, start)
	case '}':
		return l.emit(TokRBrace, start)
	case '[':
		return l.emit(TokLBracket, start)
	case ']':
		return l.emit(TokRBracket, start)
	case '(':
		return l.emit(TokLParen, start)
	case ')':
		return l.emit(TokRParen, start)
	}

	l.error(start, fmt.Sprintf("unexpected character %q", b))
	return l.emit(TokError, start)
}

func (l *Lexer) emit(kind TokenKind, start int) Token {
	tok := NewToken(kind, types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)))
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", kind.Name()),
			slog.Int("start", start),
			slog.Int("end", l.pos))
	}
	return tok
}

func (l *Lexer) error(start int, msg string) {
	l.diagnostics = append(l.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagSyntax,
		Span:     types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)),
		Message:  msg,
	})
}

func (l *Lexer) errorCode(start int, code, msg string) {
	l.diagnostics = append(l.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     code,
		Span:     types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)),
		Message:  msg,
	})
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

// lexComment lexes '//' and '///' comments through end of line.
// A lone '/' is not a valid token.
func (l *Lexer) lexComment(start int) Token {
	if c, ok := l.peekAt(1); !ok || c != '/' {
		l.pos++
		l.error(start, "unexpected character '/'")
		return l.emit(TokError, start)
	}
	kind := TokComment
	l.pos += 2
	if c, ok := l.peek(); ok && c == '/' {
		kind = TokDocComment
		l.pos++
	}
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			break
		}
		l.pos++
	}
	return l.emit(kind, start)
}

// lexString lexes a quoted string or a triple-quoted text block.
// The returned span includes the delimiters.
func (l *Lexer) lexString(start int) Token {
	if c1, ok1 := l.peekAt(1); ok1 && c1 == '"' {
		if c2, ok2 := l.peekAt(2); ok2 && c2 == '"' {
			return l.lexTextBlock(start)
		}
		// Empty string "".
		l.pos += 2
		return l.emit(TokString, start)
	}
	l.pos++ // opening quote
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			l.errorCode(start, types.DiagUnclosedString, "unclosed string literal")
			return l.emit(TokError, start)
		}
		if c == '\\' {
			l.lexEscape()
			continue
		}
		l.pos++
		if c == '"' {
			return l.emit(TokString, start)
		}
	}
}

// lexTextBlock lexes a '"""' text block. The opening delimiter must be
// followed by a newline per the IDL grammar.
func (l *Lexer) lexTextBlock(start int) Token {
	l.pos += 3
	if c, ok := l.peek(); ok && c == '\r' {
		l.pos++
	}
	c, ok := l.peek()
	if !ok || c != '\n' {
		l.errorCode(start, types.DiagSyntax, "text block opening delimiter must be followed by a newline")
		return l.emit(TokError, start)
	}
	l.pos++
	for {
		c, ok := l.peek()
		if !ok {
			l.errorCode(start, types.DiagUnclosedString, "unclosed text block")
			return l.emit(TokError, start)
		}
		if c == '\\' {
			l.lexEscape()
			continue
		}
		if c == '"' {
			if c1, ok1 := l.peekAt(1); ok1 && c1 == '"' {
				if c2, ok2 := l.peekAt(2); ok2 && c2 == '"' {
					l.pos += 3
					return l.emit(TokTextBlock, start)
				}
			}
		}
		l.pos++
	}
}

// lexEscape consumes a backslash escape sequence, validating it.
func (l *Lexer) lexEscape() {
	start := l.pos
	l.pos++ // backslash
	c, ok := l.peek()
	if !ok {
		l.errorCode(start, types.DiagInvalidEscape, "incomplete escape sequence")
		return
	}
	l.pos++
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return
	case '\n':
		// Escaped newline (line continuation) is valid in text blocks.
		return
	case 'u':
		for i := 0; i < 4; i++ {
			h, ok := l.peek()
			if !ok || !isHexDigit(h) {
				l.errorCode(start, types.DiagInvalidEscape, "invalid unicode escape")
				return
			}
			l.pos++
		}
		return
	default:
		l.errorCode(start, types.DiagInvalidEscape, fmt.Sprintf("invalid escape character %q", c))
	}
}

// lexNumber lexes a signed decimal number with optional fraction and exponent.
func (l *Lexer) lexNumber(start int) Token {
	if c, _ := l.peek(); c == '-' {
		l.pos++
		if c, ok := l.peek(); !ok || !isDigit(c) {
			l.errorCode(start, types.DiagInvalidNumber, "expected digit after '-'")
			return l.emit(TokError, start)
		}
	}
	l.consumeDigits()
	if c, ok := l.peek(); ok && c == '.' {
		// Only a digit after '.' makes this a float; '1.foo' is a number
		// followed by DOT (shape IDs never start with a digit, so the
		// ambiguity only arises in malformed input).
		if c1, ok1 := l.peekAt(1); ok1 && isDigit(c1) {
			l.pos++
			l.consumeDigits()
		}
	}
	if c, ok := l.peek(); ok && (c == 'e' || c == 'E') {
		i := 1
		if s, ok1 := l.peekAt(1); ok1 && (s == '+' || s == '-') {
			i = 2
		}
		if d, ok2 := l.peekAt(i); ok2 && isDigit(d) {
			l.pos += i
			l.consumeDigits()
		} else {
			l.pos++
			l.errorCode(start, types.DiagInvalidNumber, "malformed exponent")
			return l.emit(TokError, start)
		}
	}
	return l.emit(TokNumber, start)
}

func (l *Lexer) consumeDigits() {
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.pos++
	}
}

func isWs(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == ','
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
