// Package token defines the token kinds produced when lexing an expression.
package token

// Type identifies the kind of a token.
type Type uint8

// Token represents one token lexed from the input. It is a view into the
// source text, never a copy.
type Token struct {
	Type  Type
	Start int // byte offset within the source
	Len   int // length in bytes
}

// End returns the byte offset immediately after the token.
func (t Token) End() int {
	return t.Start + t.Len
}

// Literal returns the source text covered by the token.
func (t Token) Literal(source string) string {
	if t.Start >= len(source) {
		return ""
	}
	end := t.End()
	if end > len(source) {
		end = len(source)
	}
	return source[t.Start:end]
}

// Token types
const (
	ILLEGAL Type = iota
	EOF

	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	PLUS      // +
	MINUS     // -
	ASTERISK  // *
	SLASH     // /
	MOD       // %
	CARET     // ^
	DOLLAR    // $
	BANG      // !
	EQ        // =
	NOT_EQ    // !=
	LT        // <
	LT_EQUALS // <=
	GT        // >
	GT_EQUALS // >=
	AMPERSAND // &
	PIPE      // |

	IDENT
	STRING
	INT
	FLOAT   // 64-bit decimal literal
	FLOAT32 // 32-bit decimal literal, written with an f suffix
	TRUE
	FALSE
	NAN

	count
)

// Count is the number of token types, for sizing tables indexed by Type.
const Count = int(count)

var names = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	MOD:       "%",
	CARET:     "^",
	DOLLAR:    "$",
	BANG:      "!",
	EQ:        "=",
	NOT_EQ:    "!=",
	LT:        "<",
	LT_EQUALS: "<=",
	GT:        ">",
	GT_EQUALS: ">=",
	AMPERSAND: "&",
	PIPE:      "|",
	IDENT:     "IDENT",
	STRING:    "STRING",
	INT:       "INT",
	FLOAT:     "FLOAT",
	FLOAT32:   "FLOAT32",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	NAN:       "NaN",
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

// Reserved identifiers, matched case-insensitively.
var keywords = []struct {
	word string
	typ  Type
}{
	{"TRUE", TRUE},
	{"FALSE", FALSE},
	{"NaN", NAN},
}

// LookupIdentifier returns the literal type for a reserved identifier, or
// IDENT if the identifier is not reserved.
func LookupIdentifier(identifier string) Type {
	for _, kw := range keywords {
		if len(identifier) == len(kw.word) && equalFold(identifier, kw.word) {
			return kw.typ
		}
	}
	return IDENT
}

// ASCII-only fold; reserved words are ASCII.
func equalFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
