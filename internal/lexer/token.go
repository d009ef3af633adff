// Package lexer provides tokenization for Smithy IDL source text.
package lexer

import (
	"github.com/gosmithy/gosmithy/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// TokenKind identifies a token type.
//
// Whitespace, comments, and doc comments are real tokens: the parser decides
// where they are significant (a doc comment binds to the next declaration,
// and `@foo (x)` is not the same as `@foo(x)`).
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Insignificant trivia ===

	// TokWs is a run of spaces, tabs, newlines, and commas.
	// Commas are optional separators in the IDL and carry no meaning.
	TokWs
	// TokComment is a '//' line comment that is not a doc comment.
	TokComment
	// TokDocComment is a '///' documentation comment line.
	TokDocComment

	// === Literals and identifiers ===

	// TokIdentifier is an identifier ([A-Za-z_][A-Za-z0-9_]*).
	TokIdentifier
	// TokNumber is a decimal number literal (integer or float, signed).
	TokNumber
	// TokString is a quoted string literal ("...").
	TokString
	// TokTextBlock is a triple-quoted text block ("""...""").
	TokTextBlock

	// === Punctuation ===

	// TokAt is '@'.
	TokAt
	// TokColon is ':'.
	TokColon
	// TokEqual is '='.
	TokEqual
	// TokDot is '.'.
	TokDot
	// TokPound is '#'.
	TokPound
	// TokDollar is '$'.
	TokDollar
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
)

// Name returns a stable human-readable name for this token kind,
// used in "expected ..." diagnostics.
func (k TokenKind) Name() string {
	switch k {
	case TokError:
		return "ERROR"
	case TokEOF:
		return "EOF"
	case TokWs:
		return "WHITESPACE"
	case TokComment:
		return "COMMENT"
	case TokDocComment:
		return "DOC_COMMENT"
	case TokIdentifier:
		return "IDENTIFIER"
	case TokNumber:
		return "NUMBER"
	case TokString:
		return "STRING"
	case TokTextBlock:
		return "TEXT_BLOCK"
	case TokAt:
		return "AT"
	case TokColon:
		return "COLON"
	case TokEqual:
		return "EQUAL"
	case TokDot:
		return "DOT"
	case TokPound:
		return "POUND"
	case TokDollar:
		return "DOLLAR"
	case TokLBrace:
		return "LBRACE"
	case TokRBrace:
		return "RBRACE"
	case TokLBracket:
		return "LBRACKET"
	case TokRBracket:
		return "RBRACKET"
	case TokLParen:
		return "LPAREN"
	case TokRParen:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// IsTrivia returns true if this token is insignificant whitespace or a
// non-doc comment.
func (k TokenKind) IsTrivia() bool {
	return k == TokWs || k == TokComment
}
