// Package parser builds the Block-ASM syntax tree from a token sequence.
//
// The parser is a single cursor over the tokens plus a context stack. The
// root context accepts metadata constructs and section headers; a section
// context accepts properties and, inside targets, items; an item context
// accepts item properties until `end`. Errors never stop the parser: every
// diagnostic is collected and the (possibly incomplete) tree is returned
// alongside them.
package parser

import (
	"log/slog"
	"slices"

	"github.com/kytekode/basm/internal/ast"
	"github.com/kytekode/basm/internal/lexer"
	"github.com/kytekode/basm/internal/types"
)

// expectation is a property or metadata node waiting for its value.
type expectation struct {
	node     *ast.Node
	keyword  string
	line     int
	rule     *valueRule // nil while a typed value may still take an annotation
	typed    bool
	needName bool // a quoted name must come before the value
	topLevel bool // metadata payload
}

// Parser holds the state of one parse.
type Parser struct {
	tokens      []lexer.Token
	root        *ast.Node
	stack       []*frame
	pending     *expectation
	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Parser over the given tokens.
// Pass nil for logger to disable logging.
func New(tokens []lexer.Token, logger *slog.Logger) *Parser {
	p := &Parser{
		tokens: tokens,
		Logger: types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("tokens", len(tokens)))
	return p
}

// Parse parses tokens with a fresh Parser.
func Parse(tokens []lexer.Token) (*ast.Node, []types.Diagnostic) {
	return New(tokens, nil).Parse()
}

// Diagnostics returns a copy of the diagnostics from the last Parse.
func (p *Parser) Diagnostics() []types.Diagnostic {
	return slices.Clone(p.diagnostics)
}

// Parse consumes every token and returns the tree rooted at a Root node.
// A tree returned together with diagnostics is advisory only.
func (p *Parser) Parse() (*ast.Node, []types.Diagnostic) {
	p.reset()
	for _, tok := range p.tokens {
		p.step(tok)
	}
	p.finish()
	p.Log(slog.LevelDebug, "parse complete",
		slog.Int("nodes", p.root.Count()),
		slog.Int("diagnostics", len(p.diagnostics)))
	return p.root, slices.Clone(p.diagnostics)
}

func (p *Parser) reset() {
	p.root = ast.NewRoot()
	p.stack = p.stack[:0]
	p.pending = nil
	p.diagnostics = p.diagnostics[:0]
}

func (p *Parser) step(tok lexer.Token) {
	if p.pending != nil {
		p.fulfil(tok)
		return
	}
	p.dispatch(tok)
}

func (p *Parser) dispatch(tok lexer.Token) {
	top := p.top()
	switch {
	case top == nil:
		p.dispatchRoot(tok)
	case top.ctx.isSection():
		p.dispatchSection(top, tok)
	default:
		p.dispatchItem(top, tok)
	}
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// === Root context ===

func (p *Parser) dispatchRoot(tok lexer.Token) {
	switch tok.Kind {
	case lexer.TokKeyword:
		kind, ok := metadataKinds[tok.Keyword()]
		if !ok {
			p.unexpectedTopLevel(tok)
			return
		}
		node := ast.NewNode(kind, tok.Line)
		p.root.Append(node)
		p.pending = &expectation{
			node:     node,
			keyword:  tok.Text,
			line:     tok.Line,
			rule:     ruleString,
			topLevel: true,
		}
	case lexer.TokLiteral:
		switch tok.Literal() {
		case lexer.LitTarget:
			p.openSection(ctxTarget, ast.KindTarget, tok)
		case lexer.LitMonitor:
			p.openSection(ctxMonitor, ast.KindMonitor, tok)
		default:
			p.unexpectedTopLevel(tok)
		}
	case lexer.TokPunctuator:
		p.unexpectedTopLevel(tok)
	}
}

func (p *Parser) openSection(ctx contextKind, kind ast.Kind, tok lexer.Token) {
	node := ast.NewNode(kind, tok.Line)
	node.Append(ast.NewLeaf(ast.KindStringData, tok.Inner(), tok.Line))
	p.root.Append(node)
	p.push(&frame{ctx: ctx, node: node, line: tok.Line, name: tok.Inner()})
}

// === Section context ===

func (p *Parser) dispatchSection(top *frame, tok lexer.Token) {
	switch tok.Kind {
	case lexer.TokKeyword:
		kw := tok.Keyword()
		if opener, ok := itemOpeners[kw]; ok && top.ctx == ctxTarget {
			node := ast.NewNode(opener.kind, tok.Line)
			top.node.Append(node)
			p.push(&frame{ctx: opener.ctx, node: node, line: tok.Line, name: tok.Text})
			return
		}
		if spec, ok := properties[top.ctx][kw]; ok {
			p.openProperty(top, spec, tok)
			return
		}
		p.unexpectedIn(top, tok)
	case lexer.TokLiteral:
		if isHeader(tok) {
			p.unclosedSection(top)
			p.pop()
			p.dispatchRoot(tok)
			return
		}
		p.unexpectedIn(top, tok)
	case lexer.TokPunctuator:
		switch tok.Text {
		case lexer.PunctSemicolon:
		case lexer.PunctSectionEnd:
			p.pop()
		default:
			p.unexpectedIn(top, tok)
		}
	}
}

// === Item context ===

func (p *Parser) dispatchItem(top *frame, tok lexer.Token) {
	switch tok.Kind {
	case lexer.TokKeyword:
		kw := tok.Keyword()
		if spec, ok := properties[top.ctx][kw]; ok {
			p.openProperty(top, spec, tok)
			return
		}
		if _, ok := itemOpeners[kw]; ok {
			p.unclosedItem(top)
			p.pop()
			p.dispatch(tok)
			return
		}
		p.unexpectedIn(top, tok)
	case lexer.TokLiteral:
		if isHeader(tok) {
			p.unclosedItem(top)
			p.pop()
			p.dispatch(tok)
			return
		}
		p.unexpectedIn(top, tok)
	case lexer.TokPunctuator:
		switch tok.Text {
		case lexer.PunctSemicolon:
		case lexer.PunctEnd:
			p.pop()
		case lexer.PunctSectionEnd:
			p.unclosedItem(top)
			p.pop()
			p.dispatch(tok)
		}
	}
}

// === Values ===

func (p *Parser) openProperty(top *frame, spec propSpec, tok lexer.Token) {
	node := ast.NewNode(spec.kind, tok.Line)
	top.node.Append(node)
	p.pending = &expectation{
		node:     node,
		keyword:  tok.Text,
		line:     tok.Line,
		rule:     spec.rule,
		typed:    spec.rule == nil,
		needName: spec.named,
	}
}

// fulfil feeds tok to the pending expectation.
func (p *Parser) fulfil(tok lexer.Token) {
	e := p.pending

	if e.topLevel {
		p.pending = nil
		if tok.Literal() == lexer.LitString {
			e.node.Append(ast.NewLeaf(ast.KindStringData, tok.Inner(), tok.Line))
			return
		}
		// The metadata node stays childless and the token is dropped.
		p.unexpectedTopLevel(tok)
		return
	}

	if e.needName {
		if tok.Literal() == lexer.LitString {
			e.node.Append(ast.NewLeaf(ast.KindStringData, tok.Inner(), tok.Line))
			e.needName = false
			return
		}
		p.invalid(e, "a quoted name", tok)
		return
	}

	if e.typed && e.rule == nil {
		if rule, ok := annotations[tok.Keyword()]; ok && tok.Kind == lexer.TokKeyword {
			e.rule = rule
			return
		}
		e.rule = ruleInferred
	}

	if kind, value, ok := e.rule.leaf(tok); ok {
		e.node.Append(ast.NewLeaf(kind, value, tok.Line))
		p.pending = nil
		return
	}
	p.invalid(e, e.rule.want, tok)
}

// invalid reports a value of the wrong shape. Keywords, punctuators and
// section headers are dispatched again in the current context; other
// literals are dropped.
func (p *Parser) invalid(e *expectation, want string, tok lexer.Token) {
	p.pending = nil
	p.report(types.DiagInvalidValue, tok.Line,
		"Expected %s for `%s`, found `%s`", want, e.keyword, tok.Text)
	if tok.Kind != lexer.TokLiteral || isHeader(tok) {
		p.dispatch(tok)
	}
}

func isHeader(tok lexer.Token) bool {
	lit := tok.Literal()
	return lit == lexer.LitTarget || lit == lexer.LitMonitor
}

// === Stack ===

func (p *Parser) push(f *frame) {
	p.stack = append(p.stack, f)
	if p.TraceEnabled() {
		p.Trace("push context",
			slog.String("context", f.ctx.String()),
			slog.String("name", f.name),
			slog.Int("line", f.line),
			slog.Int("depth", len(p.stack)))
	}
}

func (p *Parser) pop() {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if p.TraceEnabled() {
		p.Trace("pop context",
			slog.String("context", f.ctx.String()),
			slog.Int("depth", len(p.stack)))
	}
}

// finish reports whatever the end of input left open.
func (p *Parser) finish() {
	if e := p.pending; e != nil {
		p.report(types.DiagMissingValue, e.line, "`%s` is missing its value", e.keyword)
		p.pending = nil
	}
	for len(p.stack) > 0 {
		top := p.top()
		if top.ctx.isSection() {
			p.unclosedSection(top)
		} else {
			p.unclosedItem(top)
		}
		p.pop()
	}
}

// === Diagnostics ===

func (p *Parser) report(code string, line int, format string, args ...any) {
	d := types.Newf(types.StageParse, code, line, format, args...)
	p.diagnostics = append(p.diagnostics, d)
	p.Log(slog.LevelDebug, "parse diagnostic",
		slog.String("code", code),
		slog.Int("line", line))
}

func (p *Parser) unexpectedTopLevel(tok lexer.Token) {
	p.report(types.DiagUnexpectedToken, tok.Line, "Found unexpected token `%s` at top level", tok.Text)
}

func (p *Parser) unexpectedIn(top *frame, tok lexer.Token) {
	p.report(types.DiagUnexpectedToken, tok.Line, "Found unexpected token `%s` in %s", tok.Text, top.describe())
}

func (p *Parser) unclosedItem(top *frame) {
	p.report(types.DiagUnclosedItem, top.line, "Found unclosed `%s` opened on line %d", top.name, top.line)
}

func (p *Parser) unclosedSection(top *frame) {
	p.report(types.DiagUnclosedSection, top.line,
		"Found unclosed %s section `%s` opened on line %d", top.ctx, top.name, top.line)
}
