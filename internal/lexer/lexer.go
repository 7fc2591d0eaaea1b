// Package lexer converts expression source text into tokens.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/risor-io/expr/internal/token"
)

const eof = -1

// Lexer produces tokens on demand from a single-line expression. It holds
// no per-token allocations; tokens are offsets into the input.
type Lexer struct {
	input   string
	start   int // start of the current token
	current int // current read position
	width   int // width of the last rune read
	message string
}

// New returns a Lexer over the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Reset points the lexer at new input, reusing the Lexer value.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.start = 0
	l.current = 0
	l.width = 0
	l.message = ""
}

// Input returns the text being scanned.
func (l *Lexer) Input() string { return l.input }

// Message returns the diagnostic for the most recent ILLEGAL token.
func (l *Lexer) Message() string { return l.message }

// Next returns the next token. Once the input is exhausted every call
// returns an EOF token positioned at the end of the input.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()
	l.start = l.current

	ch := l.nextRune()
	switch ch {
	case eof:
		return token.Token{Type: token.EOF, Start: len(l.input)}
	case '(':
		return l.newToken(token.LPAREN)
	case ')':
		return l.newToken(token.RPAREN)
	case ',':
		return l.newToken(token.COMMA)
	case '+':
		return l.newToken(token.PLUS)
	case '-':
		return l.newToken(token.MINUS)
	case '*':
		return l.newToken(token.ASTERISK)
	case '/':
		return l.newToken(token.SLASH)
	case '%':
		return l.newToken(token.MOD)
	case '^':
		return l.newToken(token.CARET)
	case '$':
		return l.newToken(token.DOLLAR)
	case '&':
		return l.newToken(token.AMPERSAND)
	case '|':
		return l.newToken(token.PIPE)
	case '=':
		return l.newToken(token.EQ)
	case '!':
		if l.acceptRune('=') {
			return l.newToken(token.NOT_EQ)
		}
		return l.newToken(token.BANG)
	case '<':
		if l.acceptRune('=') {
			return l.newToken(token.LT_EQUALS)
		}
		return l.newToken(token.LT)
	case '>':
		if l.acceptRune('=') {
			return l.newToken(token.GT_EQUALS)
		}
		return l.newToken(token.GT)
	case '\'', '"':
		return l.scanString(ch)
	}
	if isDigit(ch) {
		return l.scanNumber()
	}
	if unicode.IsLetter(ch) {
		return l.scanIdentifier()
	}
	if ch == 0 {
		return l.error("Unexpected character '\\0'")
	}
	return l.error(fmt.Sprintf("Unexpected character '%c'", ch))
}

// scanString reads a quoted string. The opening quote has been consumed.
// The token covers both quotes; escapes are left for the compiler to
// decode, but an escaped quote does not terminate the literal.
func (l *Lexer) scanString(quote rune) token.Token {
	for {
		switch l.nextRune() {
		case quote:
			return l.newToken(token.STRING)
		case '\\':
			if l.nextRune() != eof {
				continue
			}
			return l.error("Unterminated string")
		case eof:
			return l.error("Unterminated string")
		}
	}
}

// scanNumber reads digits with an optional fraction. A fraction is only
// taken when the dot is followed by a digit or an f suffix, and a trailing
// f marks a 32-bit decimal.
func (l *Lexer) scanNumber() token.Token {
	l.acceptAll(isDigit)
	if l.peek() != '.' {
		return l.newToken(token.INT)
	}
	next := l.peekAt(1)
	if !isDigit(next) && next != 'f' {
		return l.newToken(token.INT)
	}
	l.nextRune() // '.'
	l.acceptAll(isDigit)
	if l.acceptRune('f') {
		return l.newToken(token.FLOAT32)
	}
	return l.newToken(token.FLOAT)
}

func (l *Lexer) scanIdentifier() token.Token {
	l.acceptAll(isIdentifierRune)
	return l.newToken(token.LookupIdentifier(l.input[l.start:l.current]))
}

func (l *Lexer) newToken(typ token.Type) token.Token {
	return token.Token{Type: typ, Start: l.start, Len: l.current - l.start}
}

func (l *Lexer) error(msg string) token.Token {
	l.message = msg
	return l.newToken(token.ILLEGAL)
}

func (l *Lexer) skipWhitespace() {
	for l.current < len(l.input) {
		switch l.input[l.current] {
		case ' ', '\t':
			l.current++
		default:
			return
		}
	}
}

func (l *Lexer) nextRune() rune {
	if l.current >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt looks n bytes ahead. Only used for ASCII lookahead.
func (l *Lexer) peekAt(n int) rune {
	i := l.current + n
	if i >= len(l.input) {
		return eof
	}
	return rune(l.input[i])
}

func (l *Lexer) acceptRune(r rune) bool {
	if l.peek() == r {
		l.current++
		return true
	}
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) {
	for {
		r := l.nextRune()
		if r == eof {
			return
		}
		if !isValid(r) {
			l.current -= l.width
			return
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
