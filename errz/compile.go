package errz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// SnippetLeft is the number of characters shown left of the error token.
	SnippetLeft = 64
	// SnippetRight is the number of characters shown right of the error token.
	SnippetRight = 16

	snippetIndent = 4
)

// CompileError describes a lexical or syntactic failure in an expression.
type CompileError struct {
	Message string
	Source  string
	Offset  int // byte offset of the offending token
	Column  int // 1-indexed character column of the offending token
	Length  int // caret width in characters, at least 1
	// Snippet is the clipped source segment containing the token.
	Snippet string
	// Caret is the underline positioned beneath the token within Snippet.
	Caret       string
	Suggestions []Suggestion
}

// NewCompileError builds a CompileError for the token at byte offset with
// the given byte length. An offset at or past the end of the source points
// at the end of input and is underlined with a single caret. The snippet
// window, column and caret are measured in characters.
func NewCompileError(source string, offset, length int, message string) *CompileError {
	if offset >= len(source) {
		offset = len(source)
		length = 1
	}
	for offset > 0 && offset < len(source) && !utf8.RuneStart(source[offset]) {
		offset--
	}
	tokenEnd := min(offset+max(length, 0), len(source))
	for tokenEnd < len(source) && !utf8.RuneStart(source[tokenEnd]) {
		tokenEnd++
	}
	width := max(utf8.RuneCountInString(source[offset:tokenEnd]), 1)

	start := offset
	for n := 0; n < SnippetLeft && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(source[:start])
		start -= size
	}
	end := tokenEnd
	for n := 0; n < SnippetRight && end < len(source); n++ {
		_, size := utf8.DecodeRuneInString(source[end:])
		end += size
	}
	return &CompileError{
		Message: message,
		Source:  source,
		Offset:  offset,
		Column:  utf8.RuneCountInString(source[:offset]) + 1,
		Length:  width,
		Snippet: source[start:end],
		Caret:   strings.Repeat(" ", utf8.RuneCountInString(source[start:offset])) + strings.Repeat("^", width),
	}
}

// WithSuggestions attaches "did you mean" candidates to the error.
func (e *CompileError) WithSuggestions(s []Suggestion) *CompileError {
	e.Suggestions = s
	return e
}

// Hint returns the formatted suggestions, or an empty string.
func (e *CompileError) Hint() string {
	return FormatSuggestions(e.Suggestions)
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("compile error: %s (column %d)", e.Message, e.Column)
	if hint := e.Hint(); hint != "" {
		msg += " " + hint
	}
	return msg
}

// FriendlyErrorMessage renders the error with the clipped source snippet
// and a caret underline sized to the offending token.
func (e *CompileError) FriendlyErrorMessage() string {
	var b strings.Builder
	indent := strings.Repeat(" ", snippetIndent)
	fmt.Fprintf(&b, "Error: %s\n", e.Message)
	fmt.Fprintf(&b, "Column: %d\n", e.Column)
	b.WriteString(indent)
	b.WriteString(e.Snippet)
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(e.Caret)
	if hint := e.Hint(); hint != "" {
		b.WriteString("\n")
		b.WriteString(hint)
	}
	return b.String()
}
