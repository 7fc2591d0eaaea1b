package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/internal/token"
)

type expected struct {
	typ     token.Type
	literal string
}

func scanAll(t *testing.T, input string, tests []expected) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		require.Equal(t, tt.typ, tok.Type, "tests[%d] type", i)
		require.Equal(t, tt.literal, tok.Literal(input), "tests[%d] literal", i)
	}
}

func TestOperators(t *testing.T) {
	scanAll(t, "( ) , + - * / % ^ $ ! = != < <= > >= & |", []expected{
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.COMMA, ","},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.MOD, "%"},
		{token.CARET, "^"},
		{token.DOLLAR, "$"},
		{token.BANG, "!"},
		{token.EQ, "="},
		{token.NOT_EQ, "!="},
		{token.LT, "<"},
		{token.LT_EQUALS, "<="},
		{token.GT, ">"},
		{token.GT_EQUALS, ">="},
		{token.AMPERSAND, "&"},
		{token.PIPE, "|"},
		{token.EOF, ""},
	})
}

func TestCompactOperators(t *testing.T) {
	scanAll(t, "1<=2!=!3", []expected{
		{token.INT, "1"},
		{token.LT_EQUALS, "<="},
		{token.INT, "2"},
		{token.NOT_EQ, "!="},
		{token.BANG, "!"},
		{token.INT, "3"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	scanAll(t, "42 3.14 2.5f 1.f 7.", []expected{
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.FLOAT32, "2.5f"},
		{token.FLOAT32, "1.f"},
		{token.INT, "7"},
		{token.ILLEGAL, "."},
		{token.EOF, ""},
	})
}

func TestIdentifiersAndKeywords(t *testing.T) {
	scanAll(t, "ABS true FALSE nan my_fn2 $Foo", []expected{
		{token.IDENT, "ABS"},
		{token.TRUE, "true"},
		{token.FALSE, "FALSE"},
		{token.NAN, "nan"},
		{token.IDENT, "my_fn2"},
		{token.DOLLAR, "$"},
		{token.IDENT, "Foo"},
		{token.EOF, ""},
	})
}

func TestStrings(t *testing.T) {
	scanAll(t, `'abc' "x y" 'it\'s'`, []expected{
		{token.STRING, "'abc'"},
		{token.STRING, `"x y"`},
		{token.STRING, `'it\'s'`},
		{token.EOF, ""},
	})
}

func TestUnterminatedString(t *testing.T) {
	l := New(`1 + 'abc`)
	require.Equal(t, token.INT, l.Next().Type)
	require.Equal(t, token.PLUS, l.Next().Type)
	tok := l.Next()
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "Unterminated string", l.Message())
	require.Equal(t, 4, tok.Start)
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("1 # 2")
	l.Next()
	tok := l.Next()
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "Unexpected character '#'", l.Message())
	require.Equal(t, 2, tok.Start)
	require.Equal(t, 1, tok.Len)

	l = New("\x00")
	require.Equal(t, token.ILLEGAL, l.Next().Type)
	require.Equal(t, `Unexpected character '\0'`, l.Message())
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New("  1  ")
	require.Equal(t, token.INT, l.Next().Type)
	for i := 0; i < 3; i++ {
		tok := l.Next()
		require.Equal(t, token.EOF, tok.Type)
		require.Equal(t, 5, tok.Start)
	}
}

func TestTokenOffsets(t *testing.T) {
	l := New("\tSUM( 1,22 )")
	tok := l.Next()
	require.Equal(t, token.Token{Type: token.IDENT, Start: 1, Len: 3}, tok)
	require.Equal(t, token.Token{Type: token.LPAREN, Start: 4, Len: 1}, l.Next())
	require.Equal(t, token.Token{Type: token.INT, Start: 6, Len: 1}, l.Next())
	require.Equal(t, token.Token{Type: token.COMMA, Start: 7, Len: 1}, l.Next())
	require.Equal(t, token.Token{Type: token.INT, Start: 8, Len: 2}, l.Next())
}

func TestReset(t *testing.T) {
	l := New("1")
	l.Next()
	l.Reset("TRUE")
	require.Equal(t, token.TRUE, l.Next().Type)
	require.Equal(t, "TRUE", l.Input())
}
