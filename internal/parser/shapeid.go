package parser

import (
	"github.com/gosmithy/gosmithy/internal/lexer"
	"github.com/gosmithy/gosmithy/internal/types"
)

// parseShapeID parses a possibly-relative shape ID:
//
//	[namespace.parts#]name[$member]
//
// The tokens of an ID must be contiguous in the source; whitespace ends
// the ID. Returns the raw ID text, which the assembler later resolves
// against the namespace and use tables.
func (p *Parser) parseShapeID() (string, types.Span, *types.SpanDiagnostic) {
	first, diag := p.expect(lexer.TokIdentifier)
	if diag != nil {
		return "", types.Span{}, diag
	}
	span := first.Span

	sawDot := false
	for p.adjacent(span) && p.check(lexer.TokDot) {
		dot := p.advance()
		span.End = dot.Span.End
		part, diag := p.expectAdjacentIdent(span)
		if diag != nil {
			return "", types.Span{}, diag
		}
		span.End = part.Span.End
		sawDot = true
	}

	sawPound := false
	if p.adjacent(span) && p.check(lexer.TokPound) {
		pound := p.advance()
		span.End = pound.Span.End
		name, diag := p.expectAdjacentIdent(span)
		if diag != nil {
			return "", types.Span{}, diag
		}
		span.End = name.Span.End
		sawPound = true
	}
	if sawDot && !sawPound {
		diag := p.makeErrorAt(span, "expected '#' after namespace in shape ID")
		return "", types.Span{}, &diag
	}

	if p.adjacent(span) && p.check(lexer.TokDollar) {
		dollar := p.advance()
		span.End = dollar.Span.End
		member, diag := p.expectAdjacentIdent(span)
		if diag != nil {
			return "", types.Span{}, diag
		}
		span.End = member.Span.End
	}

	return p.internString(p.text(span)), span, nil
}

// parseNamespaceName parses a dotted namespace: ident ('.' ident)*.
func (p *Parser) parseNamespaceName() (string, types.Span, *types.SpanDiagnostic) {
	first, diag := p.expect(lexer.TokIdentifier)
	if diag != nil {
		return "", types.Span{}, diag
	}
	span := first.Span
	for p.adjacent(span) && p.check(lexer.TokDot) {
		dot := p.advance()
		span.End = dot.Span.End
		part, diag := p.expectAdjacentIdent(span)
		if diag != nil {
			return "", types.Span{}, diag
		}
		span.End = part.Span.End
	}
	return p.internString(p.text(span)), span, nil
}

// adjacent reports whether the current token starts exactly where the
// given span ends, with no intervening trivia.
func (p *Parser) adjacent(span types.Span) bool {
	return p.peek().Span.Start == span.End
}

func (p *Parser) expectAdjacentIdent(span types.Span) (lexer.Token, *types.SpanDiagnostic) {
	if !p.check(lexer.TokIdentifier) || !p.adjacent(span) {
		diag := p.makeError("expected identifier to continue shape ID")
		return lexer.Token{}, &diag
	}
	return p.advance(), nil
}

// splitShapeID splits raw shape ID text into namespace, name, and member
// parts. Empty namespace means the ID is relative.
func splitShapeID(id string) (namespace, name, member string) {
	name = id
	for i := 0; i < len(name); i++ {
		if name[i] == '#' {
			namespace = name[:i]
			name = name[i+1:]
			break
		}
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '$' {
			member = name[i+1:]
			name = name[:i]
			break
		}
	}
	return namespace, name, member
}
