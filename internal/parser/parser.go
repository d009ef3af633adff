// Package parser parses Smithy IDL source text into an AST.
//
// The parser is a recursive-descent cursor over the lexer's token stream.
// Statement-level errors are recorded as diagnostics and parsing resumes at
// the next statement; errors inside a single declaration's trait or value
// grammar are fatal to that declaration and unwind to the statement loop.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/lexer"
	"github.com/gosmithy/gosmithy/internal/types"
)

// MaxNestingLevel bounds recursive value nesting (objects, arrays, and
// structured trait bodies). Exceeding it is a resource-limit failure
// rather than a stack overflow.
const MaxNestingLevel = 64

// Parser converts a token stream into an AST file with diagnostics.
type Parser struct {
	path     string
	source   []byte
	lex      *lexer.Lexer
	buf      [3]lexer.Token // lookahead buffer: buf[0]=current, buf[1]=peek(1), buf[2]=peek(2)
	eofToken lexer.Token

	file     *ast.File
	resolver ReferenceResolver

	intern      map[string]string
	pendingDocs []string
	nesting     int

	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging. Pass nil for resolver to use the
// default resolver, which records bare identifiers as forward references
// on the parsed file.
func New(path string, source []byte, resolver ReferenceResolver, logger *slog.Logger) *Parser {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	lex := lexer.New(source, lexLogger)
	eofSpan := types.NewSpan(types.ByteOffset(len(source)), types.ByteOffset(len(source)))
	p := &Parser{
		path:     path,
		source:   source,
		lex:      lex,
		eofToken: lexer.NewToken(lexer.TokEOF, eofSpan),
		file:     &ast.File{Path: path},
		intern:   make(map[string]string),
		Logger:   types.Logger{L: logger},
	}
	if resolver == nil {
		resolver = &forwardRefResolver{file: p.file}
	}
	p.resolver = resolver
	p.buf[0] = lex.NextToken()
	p.buf[1] = lex.NextToken()
	p.buf[2] = lex.NextToken()
	p.Log(slog.LevelDebug, "parser initialized", slog.String("path", path))
	return p
}

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) peek() lexer.Token {
	return p.buf[0]
}

func (p *Parser) peekNth(n int) lexer.Token {
	if n < len(p.buf) {
		return p.buf[n]
	}
	return p.eofToken
}

func (p *Parser) advance() lexer.Token {
	tok := p.buf[0]
	p.buf[0] = p.buf[1]
	p.buf[1] = p.buf[2]
	p.buf[2] = p.lex.NextToken()
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

// expect consumes and returns the current token if it has the given kind,
// or fails with a syntax diagnostic at the current location.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *types.SpanDiagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	diag := p.makeError(fmt.Sprintf("expected %s, found %s", kind.Name(), p.peek().Kind.Name()))
	return lexer.Token{}, &diag
}

// expectCurrent validates the current token against a set of acceptable
// kinds without consuming it. The failure message names the full set.
func (p *Parser) expectCurrent(kinds ...lexer.TokenKind) *types.SpanDiagnostic {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name()
	}
	diag := p.makeError(fmt.Sprintf("expected one of %s, found %s",
		strings.Join(names, ", "), cur.Name()))
	return &diag
}

func (p *Parser) currentSpan() types.Span {
	return p.peek().Span
}

func (p *Parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

// internString deduplicates identifier and key strings, which repeat
// heavily across a model.
func (p *Parser) internString(s string) string {
	if interned, ok := p.intern[s]; ok {
		return interned
	}
	p.intern[s] = s
	return s
}

// skipWs advances past whitespace and non-doc comments.
func (p *Parser) skipWs() {
	for p.peek().Kind.IsTrivia() {
		p.advance()
	}
}

// skipWsAndDocs advances past whitespace, comments, and doc comments,
// accumulating doc comment text for a later takePendingDocText call.
func (p *Parser) skipWsAndDocs() {
	for {
		kind := p.peek().Kind
		if kind.IsTrivia() {
			p.advance()
			continue
		}
		if kind == lexer.TokDocComment {
			tok := p.advance()
			p.pendingDocs = append(p.pendingDocs, lexer.DocCommentText(p.source, tok))
			continue
		}
		return
	}
}

// takePendingDocText returns the accumulated doc comment text and clears
// the pending buffer. ok is false if no doc text was accumulated.
func (p *Parser) takePendingDocText() (string, bool) {
	if len(p.pendingDocs) == 0 {
		return "", false
	}
	text := strings.Join(p.pendingDocs, "\n")
	p.pendingDocs = p.pendingDocs[:0]
	return text, true
}

// increaseNesting bumps the shared nesting counter, failing with a
// resource-limit diagnostic once MaxNestingLevel is exceeded. Callers must
// pair every successful call with deferDecreaseNesting so the counter
// unwinds on all exit paths.
func (p *Parser) increaseNesting() *types.SpanDiagnostic {
	p.nesting++
	if p.nesting > MaxNestingLevel {
		diag := types.SpanDiagnostic{
			Severity: types.SeverityFatal,
			Code:     types.DiagNestingLimit,
			Span:     p.currentSpan(),
			Message:  fmt.Sprintf("value exceeds maximum nesting depth of %d", MaxNestingLevel),
		}
		p.nesting--
		return &diag
	}
	return nil
}

func (p *Parser) decreaseNesting() {
	p.nesting--
}

// recordParseError appends a structural parse error unconditionally.
func (p *Parser) recordParseError(diag types.SpanDiagnostic) {
	p.file.Diagnostics = append(p.file.Diagnostics, diag)
}

func (p *Parser) makeError(message string) types.SpanDiagnostic {
	return p.makeErrorAt(p.currentSpan(), message)
}

func (p *Parser) makeErrorAt(span types.Span, message string) types.SpanDiagnostic {
	return types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagSyntax,
		Span:     span,
		Message:  message,
	}
}

// numberNode converts a TokNumber token into a NumberNode located at loc.
func (p *Parser) numberNode(tok lexer.Token, loc types.Span) (ast.Node, *types.SpanDiagnostic) {
	text := lexer.NumberText(p.source, tok)
	n := &ast.NumberNode{Text: text, Loc: loc}
	if lexer.IsFloatText(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			diag := types.SpanDiagnostic{
				Severity: types.SeverityError,
				Code:     types.DiagInvalidNumber,
				Span:     tok.Span,
				Message:  fmt.Sprintf("invalid number literal %q", text),
			}
			return nil, &diag
		}
		n.IsFloat = true
		n.Float = f
		return n, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// Out of int64 range: keep the value as a float.
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			diag := types.SpanDiagnostic{
				Severity: types.SeverityError,
				Code:     types.DiagInvalidNumber,
				Span:     tok.Span,
				Message:  fmt.Sprintf("invalid number literal %q", text),
			}
			return nil, &diag
		}
		n.IsFloat = true
		n.Float = f
		return n, nil
	}
	n.Int = i
	return n, nil
}
