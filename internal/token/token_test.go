package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, kw := range keywords {
		require.Equal(t, kw.typ, LookupIdentifier(kw.word))
	}
	require.Equal(t, TRUE, LookupIdentifier("true"))
	require.Equal(t, TRUE, LookupIdentifier("tRuE"))
	require.Equal(t, FALSE, LookupIdentifier("False"))
	require.Equal(t, NAN, LookupIdentifier("nan"))
	require.Equal(t, NAN, LookupIdentifier("NAN"))
	require.Equal(t, IDENT, LookupIdentifier("TRUTH"))
	require.Equal(t, IDENT, LookupIdentifier("NA"))
	require.Equal(t, IDENT, LookupIdentifier("SIN"))
}

func TestLiteral(t *testing.T) {
	src := "ABS(-12)"
	tok := Token{Type: IDENT, Start: 0, Len: 3}
	require.Equal(t, "ABS", tok.Literal(src))
	require.Equal(t, 3, tok.End())

	eof := Token{Type: EOF, Start: len(src), Len: 0}
	require.Equal(t, "", eof.Literal(src))
}

func TestTypeNames(t *testing.T) {
	for i := 0; i < Count; i++ {
		require.NotEmpty(t, Type(i).String(), "type %d", i)
	}
	require.Equal(t, "!=", NOT_EQ.String())
	require.Equal(t, "UNKNOWN", Type(200).String())
}
