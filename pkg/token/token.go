// Package token defines the lexical tokens of the builder script language.
package token

import "fmt"

// Token represents a lexical token in a builder script.
type Token int

const (
	ILLEGAL Token = iota
	EOF
	COMMENT
	NEWLINE // end of a command line

	// Literals
	IDENT  // word or number; ids stay raw so the edit model can validate them
	STRING // "quoted string"

	// Operators and delimiters
	SEMICOLON // ;
	ARROW     // ->
	DASHDASH  // --

	// Keywords
	keyword_beg
	MODE       // mode
	NODE       // node
	REMOVE     // remove
	EDGE       // edge
	PIN        // pin
	RELEASE    // release
	DIRECTED   // directed
	UNDIRECTED // undirected
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",
	NEWLINE: "NEWLINE",

	IDENT:  "IDENT",
	STRING: "STRING",

	SEMICOLON: ";",
	ARROW:     "->",
	DASHDASH:  "--",

	MODE:       "mode",
	NODE:       "node",
	REMOVE:     "remove",
	EDGE:       "edge",
	PIN:        "pin",
	RELEASE:    "release",
	DIRECTED:   "directed",
	UNDIRECTED: "undirected",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t >= 0 && int(t) < len(tokens) {
		return tokens[t]
	}
	return fmt.Sprintf("Token(%d)", t)
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keyword_beg && t < keyword_end
}

// IsTerminator reports whether t ends a command.
func (t Token) IsTerminator() bool {
	return t == NEWLINE || t == SEMICOLON || t == EOF
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		keywords[tokens[i]] = i
	}
	keywords["rm"] = REMOVE
}

// Lookup returns the token associated with a given identifier string.
// If the string is a keyword, the keyword token is returned.
// Otherwise, IDENT is returned.
func Lookup(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Position represents a position in source code.
type Position struct {
	Filename string
	Offset   int // byte offset
	Line     int // 1-indexed line number
	Column   int // 1-indexed column number
}

// String returns a string representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid.
func (p Position) IsValid() bool {
	return p.Line > 0
}
