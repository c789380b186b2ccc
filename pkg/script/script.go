// Package script provides high-level functions for parsing builder scripts.
package script

import (
	"fmt"
	"io"
	"os"

	"github.com/anthonybishopric/graphwidgets/pkg/ast"
	"github.com/anthonybishopric/graphwidgets/pkg/lexer"
	"github.com/anthonybishopric/graphwidgets/pkg/parser"
)

// Parse parses script source and returns the AST.
func Parse(filename string, src []byte) (*ast.Script, error) {
	l := lexer.New(filename, src)
	p := parser.New(l, filename)
	return p.Parse()
}

// ParseLine parses a single interactive command line.
func ParseLine(line string) (*ast.Script, error) {
	return Parse("", []byte(line))
}

// ParseFile reads and parses a script file. The name "-" reads stdin.
func ParseFile(name string) (*ast.Script, error) {
	var (
		src []byte
		err error
	)
	if name == "" || name == "-" {
		src, err = io.ReadAll(os.Stdin)
		name = "<stdin>"
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(name, src)
}
