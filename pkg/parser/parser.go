// Package parser implements a parser for the builder script language.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anthonybishopric/graphwidgets/pkg/ast"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/lexer"
	"github.com/anthonybishopric/graphwidgets/pkg/token"
)

// Parser parses builder scripts into an AST.
type Parser struct {
	lexer    *lexer.Lexer
	filename string

	// Current token
	pos token.Position
	tok token.Token
	lit string

	Errors []Error
}

// Error represents a parser error.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// New creates a new Parser for the given lexer.
func New(l *lexer.Lexer, filename string) *Parser {
	p := &Parser{lexer: l, filename: filename}
	p.next()
	return p
}

func (p *Parser) next() {
	p.pos, p.tok, p.lit = p.lexer.Scan()
}

func (p *Parser) error(pos token.Position, msg string) {
	p.Errors = append(p.Errors, Error{Pos: pos, Msg: msg})
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.error(pos, fmt.Sprintf(format, args...))
}

// isID returns true if the current token can be a node id.
func (p *Parser) isID() bool {
	return p.tok == token.IDENT || p.tok == token.STRING
}

// skipToTerminator drops the rest of a broken command.
func (p *Parser) skipToTerminator() {
	for !p.tok.IsTerminator() {
		p.next()
	}
}

// Parse parses a complete script.
func (p *Parser) Parse() (*ast.Script, error) {
	s := p.parseScript()

	var allErrors []error
	for _, e := range p.lexer.Errors {
		allErrors = append(allErrors, e)
	}
	for _, e := range p.Errors {
		allErrors = append(allErrors, e)
	}

	if len(allErrors) > 0 {
		var msgs []string
		for _, e := range allErrors {
			msgs = append(msgs, e.Error())
		}
		return s, fmt.Errorf("parse errors:\n%s", strings.Join(msgs, "\n"))
	}

	return s, nil
}

// parseScript parses: { [ command ] ( NEWLINE | ';' ) } EOF
func (p *Parser) parseScript() *ast.Script {
	s := &ast.Script{Filename: p.filename}

	for p.tok != token.EOF {
		if p.tok == token.NEWLINE || p.tok == token.SEMICOLON {
			p.next()
			continue
		}
		cmd := p.parseCommand()
		if cmd != nil {
			s.Commands = append(s.Commands, cmd)
		}
		if !p.tok.IsTerminator() {
			p.errorf(p.pos, "expected end of command, got %s", p.describe())
			p.skipToTerminator()
		}
	}

	return s
}

func (p *Parser) describe() string {
	if p.lit != "" {
		return fmt.Sprintf("%s %q", p.tok, p.lit)
	}
	return p.tok.String()
}

func (p *Parser) parseCommand() ast.Command {
	pos := p.pos
	switch p.tok {
	case token.MODE:
		p.next()
		return p.parseMode(pos)
	case token.DIRECTED, token.UNDIRECTED:
		// bare "directed" / "undirected", like the toggle buttons
		return p.parseMode(pos)
	case token.NODE:
		p.next()
		ids := p.parseIDList("node")
		if ids == nil {
			return nil
		}
		return &ast.AddNodeCmd{Position: pos, IDs: ids}
	case token.REMOVE:
		p.next()
		ids := p.parseIDList("remove")
		if ids == nil {
			return nil
		}
		return &ast.RemoveNodeCmd{Position: pos, IDs: ids}
	case token.EDGE:
		p.next()
		return p.parseEdge(pos)
	case token.PIN:
		p.next()
		return p.parsePin(pos)
	case token.RELEASE:
		p.next()
		if !p.isID() {
			p.errorf(p.pos, "release: expected node id, got %s", p.describe())
			return nil
		}
		return &ast.ReleaseCmd{Position: pos, ID: p.parseIdent()}
	case token.IDENT:
		p.errorf(pos, "unknown command %q", p.lit)
		p.skipToTerminator()
		return nil
	default:
		p.errorf(pos, "unexpected %s at start of command", p.describe())
		p.skipToTerminator()
		return nil
	}
}

// parseMode parses: ( 'directed' | 'undirected' )
func (p *Parser) parseMode(pos token.Position) ast.Command {
	var m graph.Mode
	switch p.tok {
	case token.DIRECTED:
		m = graph.Directed
	case token.UNDIRECTED:
		m = graph.Undirected
	default:
		p.errorf(p.pos, "mode: expected directed or undirected, got %s", p.describe())
		return nil
	}
	p.next()
	return &ast.ModeCmd{Position: pos, Mode: m}
}

// parseIDList parses: ID { ID }
func (p *Parser) parseIDList(cmd string) []*ast.Ident {
	var ids []*ast.Ident
	for p.isID() {
		ids = append(ids, p.parseIdent())
	}
	if len(ids) == 0 {
		p.errorf(p.pos, "%s: expected node id, got %s", cmd, p.describe())
	}
	return ids
}

// parseEdge parses: ID [ edgeop ] ID { edgeop ID }
func (p *Parser) parseEdge(pos token.Position) ast.Command {
	if !p.isID() {
		p.errorf(p.pos, "edge: expected source id, got %s", p.describe())
		return nil
	}
	cmd := &ast.AddEdgeCmd{Position: pos}
	cmd.Chain = append(cmd.Chain, p.parseIdent())

	if p.isID() {
		cmd.Chain = append(cmd.Chain, p.parseIdent())
	}
	for p.tok == token.ARROW || p.tok == token.DASHDASH {
		p.next()
		if !p.isID() {
			p.errorf(p.pos, "edge: expected target id, got %s", p.describe())
			return nil
		}
		cmd.Chain = append(cmd.Chain, p.parseIdent())
	}

	if len(cmd.Chain) < 2 {
		p.errorf(p.pos, "edge: expected target id, got %s", p.describe())
		return nil
	}
	return cmd
}

// parsePin parses: ID NUMBER NUMBER
func (p *Parser) parsePin(pos token.Position) ast.Command {
	if !p.isID() {
		p.errorf(p.pos, "pin: expected node id, got %s", p.describe())
		return nil
	}
	cmd := &ast.PinCmd{Position: pos, ID: p.parseIdent()}

	var ok bool
	if cmd.X, ok = p.parseFloat("x"); !ok {
		return nil
	}
	if cmd.Y, ok = p.parseFloat("y"); !ok {
		return nil
	}
	return cmd
}

func (p *Parser) parseFloat(what string) (float64, bool) {
	if p.tok != token.IDENT {
		p.errorf(p.pos, "pin: expected %s coordinate, got %s", what, p.describe())
		return 0, false
	}
	v, err := strconv.ParseFloat(p.lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.errorf(p.pos, "pin: invalid %s coordinate %q", what, p.lit)
		p.next()
		return 0, false
	}
	p.next()
	return v, true
}

func (p *Parser) parseIdent() *ast.Ident {
	id := &ast.Ident{
		Position: p.pos,
		Name:     p.lit,
		Quoted:   p.tok == token.STRING,
	}
	p.next()
	return id
}
