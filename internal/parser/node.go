package parser

import (
	"fmt"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/lexer"
	"github.com/gosmithy/gosmithy/internal/types"
)

// parseNode parses one value: an object, array, string, text block,
// number, keyword, or bare identifier routed through the resolver.
func (p *Parser) parseNode() (ast.Node, *types.SpanDiagnostic) {
	return p.parseNodeAt(p.currentSpan())
}

// parseNodeAt is parseNode with an explicit location for the produced
// node, used when a containing construct (a trait application) owns the
// reported location.
func (p *Parser) parseNodeAt(loc types.Span) (ast.Node, *types.SpanDiagnostic) {
	switch p.peek().Kind {
	case lexer.TokLBrace:
		p.advance()
		return p.parseObjectNode(loc)
	case lexer.TokLBracket:
		p.advance()
		return p.parseArrayNode(loc)
	case lexer.TokString:
		tok := p.advance()
		return &ast.StringNode{Value: lexer.StringValue(p.source, tok), Loc: loc}, nil
	case lexer.TokTextBlock:
		tok := p.advance()
		return &ast.StringNode{Value: lexer.TextBlockValue(p.source, tok), Loc: loc}, nil
	case lexer.TokNumber:
		tok := p.advance()
		return p.numberNode(tok, loc)
	case lexer.TokIdentifier:
		tok := p.advance()
		name := p.internString(p.text(tok.Span))
		return p.resolver.ResolveBareIdentifier(name, loc), nil
	default:
		diag := p.expectCurrent(lexer.TokLBrace, lexer.TokLBracket, lexer.TokString,
			lexer.TokTextBlock, lexer.TokNumber, lexer.TokIdentifier)
		return nil, diag
	}
}

// parseObjectNode parses the entries of an object after the opening brace
// was consumed. Keys are identifiers or quoted strings; duplicates are a
// fatal error at the colliding key's location.
func (p *Parser) parseObjectNode(loc types.Span) (ast.Node, *types.SpanDiagnostic) {
	if diag := p.increaseNesting(); diag != nil {
		return nil, diag
	}
	defer p.decreaseNesting()

	obj := &ast.ObjectNode{Loc: loc}
	seen := make(map[string]struct{})
	p.skipWsAndDocs()
	for !p.check(lexer.TokRBrace) {
		if diag := p.expectCurrent(lexer.TokIdentifier, lexer.TokString); diag != nil {
			return nil, diag
		}
		key, keySpan, diag := p.parseNodeKey()
		if diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		if _, diag := p.expect(lexer.TokColon); diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		value, diag := p.parseNode()
		if diag != nil {
			return nil, diag
		}
		if _, dup := seen[key]; dup {
			diag := p.duplicateMemberError(key, keySpan)
			return nil, &diag
		}
		seen[key] = struct{}{}
		obj.Entries = append(obj.Entries, ast.ObjectEntry{
			Key:   ast.StringNode{Value: key, Loc: keySpan},
			Value: value,
		})
		p.skipWsAndDocs()
	}
	p.advance() // closing brace
	return obj, nil
}

// parseArrayNode parses the elements of an array after the opening
// bracket was consumed.
func (p *Parser) parseArrayNode(loc types.Span) (ast.Node, *types.SpanDiagnostic) {
	if diag := p.increaseNesting(); diag != nil {
		return nil, diag
	}
	defer p.decreaseNesting()

	arr := &ast.ArrayNode{Loc: loc}
	p.skipWsAndDocs()
	for !p.check(lexer.TokRBracket) {
		if p.isEOF() {
			diag := p.makeError("unclosed array")
			return nil, &diag
		}
		elem, diag := p.parseNode()
		if diag != nil {
			return nil, diag
		}
		arr.Elems = append(arr.Elems, elem)
		p.skipWsAndDocs()
	}
	p.advance() // closing bracket
	return arr, nil
}

// parseNodeKey reads an object key: a quoted string or an identifier.
func (p *Parser) parseNodeKey() (string, types.Span, *types.SpanDiagnostic) {
	tok := p.advance()
	switch tok.Kind {
	case lexer.TokString:
		return lexer.StringValue(p.source, tok), tok.Span, nil
	case lexer.TokIdentifier:
		return p.internString(p.text(tok.Span)), tok.Span, nil
	default:
		diag := p.makeErrorAt(tok.Span,
			fmt.Sprintf("expected object key, found %s", tok.Kind.Name()))
		return "", types.Span{}, &diag
	}
}

func (p *Parser) duplicateMemberError(key string, span types.Span) types.SpanDiagnostic {
	return types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagDuplicateMember,
		Span:     span,
		Message:  fmt.Sprintf("duplicate member %q", key),
	}
}
