// Package lexer implements a lexer for the builder script language.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anthonybishopric/graphwidgets/pkg/token"
)

// Lexer tokenizes builder script source.
type Lexer struct {
	src      []byte
	ch       rune // current character
	offset   int  // current byte offset
	rdOffset int  // reading offset (position after current character)
	line     int
	column   int

	filename string
	Errors   []Error
}

// Error represents a lexer error.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// New creates a new Lexer for the given source.
func New(filename string, src []byte) *Lexer {
	l := &Lexer{
		src:      src,
		filename: filename,
		line:     1,
		column:   0,
	}
	l.next() // initialize ch
	return l
}

// next reads the next character into l.ch.
func (l *Lexer) next() {
	if l.rdOffset >= len(l.src) {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.ch = -1 // EOF
		l.offset = len(l.src)
		return
	}
	l.offset = l.rdOffset
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	r, w := utf8.DecodeRune(l.src[l.rdOffset:])
	l.rdOffset += w
	l.column++
	l.ch = r
}

// peek returns the next character without advancing.
func (l *Lexer) peek() rune {
	if l.rdOffset >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRune(l.src[l.rdOffset:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) error(pos token.Position, msg string) {
	l.Errors = append(l.Errors, Error{Pos: pos, Msg: msg})
}

// skipBlanks skips spaces and tabs; newlines are tokens.
func (l *Lexer) skipBlanks() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != -1 {
		l.next()
	}
}

func (l *Lexer) skipBlockComment() bool {
	// Already consumed /*
	for {
		if l.ch == -1 {
			return false // unterminated
		}
		if l.ch == '*' && l.peek() == '/' {
			l.next() // consume *
			l.next() // consume /
			return true
		}
		l.next()
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}

func (l *Lexer) scanIdent() string {
	start := l.offset
	for isAlphaNumeric(l.ch) {
		l.next()
	}
	return string(l.src[start:l.offset])
}

// scanNumber scans a number and any letters glued to it, so that "3abc"
// stays one literal and is rejected as a whole by the edit model.
func (l *Lexer) scanNumber() string {
	start := l.offset

	if l.ch == '-' {
		l.next()
	}
	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	for isAlphaNumeric(l.ch) || l.ch == '.' {
		l.next()
	}

	return string(l.src[start:l.offset])
}

func (l *Lexer) scanString() (string, bool) {
	// Already consumed opening "
	var sb strings.Builder
	for {
		if l.ch == -1 || l.ch == '\n' {
			return sb.String(), false // unterminated
		}
		if l.ch == '"' {
			l.next() // consume closing "
			return sb.String(), true
		}
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune(l.ch)
			}
		} else {
			sb.WriteRune(l.ch)
		}
		l.next()
	}
}

// Scan returns the next token.
func (l *Lexer) Scan() (pos token.Position, tok token.Token, lit string) {
	l.skipBlanks()

	pos = l.pos()

	for {
		if l.ch == '/' && l.peek() == '/' {
			l.skipLineComment()
			pos = l.pos()
			continue
		}
		if l.ch == '/' && l.peek() == '*' {
			l.next() // consume /
			l.next() // consume *
			if !l.skipBlockComment() {
				l.error(pos, "unterminated block comment")
			}
			l.skipBlanks()
			pos = l.pos()
			continue
		}
		if l.ch == '#' {
			l.skipLineComment()
			pos = l.pos()
			continue
		}
		break
	}

	switch {
	case l.ch == -1:
		tok = token.EOF

	case l.ch == '\n':
		tok = token.NEWLINE
		l.next()

	case isLetter(l.ch):
		lit = l.scanIdent()
		tok = token.Lookup(strings.ToLower(lit))
		if tok != token.IDENT {
			lit = ""
		}

	case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peek())):
		lit = l.scanNumber()
		tok = token.IDENT

	case l.ch == '.' && isDigit(l.peek()):
		lit = l.scanNumber()
		tok = token.IDENT

	case l.ch == '"':
		l.next() // consume opening "
		var ok bool
		lit, ok = l.scanString()
		if !ok {
			l.error(pos, "unterminated string")
		}
		tok = token.STRING

	case l.ch == ';':
		tok = token.SEMICOLON
		l.next()

	case l.ch == '-':
		l.next()
		if l.ch == '>' {
			tok = token.ARROW
			l.next()
		} else if l.ch == '-' {
			tok = token.DASHDASH
			l.next()
		} else {
			l.error(pos, "unexpected character: -")
			tok = token.ILLEGAL
		}

	default:
		if unicode.IsPrint(l.ch) {
			l.error(pos, "unexpected character: "+string(l.ch))
		} else {
			l.error(pos, "unexpected character")
		}
		tok = token.ILLEGAL
		l.next()
	}

	return
}
