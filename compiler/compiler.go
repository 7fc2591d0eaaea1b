// Package compiler translates expression source text directly into bytecode.
//
// # Single-Pass Compilation
//
// There is no syntax tree. The compiler pulls tokens from the lexer and
// parses them with a precedence-climbing (Pratt) parser: each token type has
// an optional prefix handler, an optional infix handler and a binding
// precedence (see rules.go). Handlers emit instructions as soon as their
// operands have been emitted, so the instruction stream is produced in
// evaluation order.
//
// Short-circuit operators emit a conditional forward jump with a placeholder
// operand which is patched once the right-hand operand has been emitted.
//
// # Functions
//
// Function calls are resolved at compile time through a FunctionResolver,
// which maps a name to the numeric id encoded in the CALL instruction.
// Unknown names are compile errors.
//
// # Reuse
//
// A Compiler keeps its instruction and string buffers between compiles. It
// must not be used from multiple goroutines at once.
package compiler

import (
	"fmt"
	"math"

	"github.com/risor-io/expr/bytecode"
	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/internal/buffer"
	"github.com/risor-io/expr/internal/lexer"
	"github.com/risor-io/expr/internal/token"
	"github.com/risor-io/expr/op"
)

const (
	// MaxArgs is the maximum number of arguments a function call can have.
	MaxArgs = 255

	// Placeholder is a temporary jump operand, always replaced before
	// compilation is complete.
	Placeholder = uint16(math.MaxUint16)

	defaultCodeSize = 64
)

// FunctionResolver maps function names to the ids encoded in CALL
// instructions. Lookups are expected to ignore case.
type FunctionResolver interface {
	FunctionID(name string) (uint32, bool)
}

// FunctionLister is optionally implemented by a FunctionResolver to
// provide "did you mean" suggestions for unknown function names.
type FunctionLister interface {
	FunctionNames() []string
}

// Config holds compiler configuration options.
type Config struct {
	// NumericMode controls how numeric literals are typed.
	NumericMode NumericMode

	// Functions resolves function names. If nil, any call is an error.
	Functions FunctionResolver

	// MaxCodeSize caps the instruction stream in bytes. Zero means no cap.
	MaxCodeSize int
}

// Compiler compiles expressions into bytecode.
type Compiler struct {
	cfg    Config
	lexer  *lexer.Lexer
	source string

	previous token.Token
	current  token.Token

	instructions *buffer.List[byte]
	strings      []string
	stringIndex  map[string]uint32

	// Set when emitting fails; reported when compilation completes.
	failure error
}

// Compile compiles src with a new Compiler and returns durable bytecode.
// Pass nil for cfg to use default settings.
func Compile(src string, cfg *Config) (*bytecode.Code, error) {
	return New(cfg).Compile(src)
}

// New creates and returns a new Compiler. Pass nil for cfg to use defaults.
func New(cfg *Config) *Compiler {
	c := &Compiler{
		lexer:       lexer.New(""),
		stringIndex: map[string]uint32{},
	}
	if cfg != nil {
		c.cfg = *cfg
	}
	size := defaultCodeSize
	if c.cfg.MaxCodeSize > 0 && c.cfg.MaxCodeSize < size {
		size = c.cfg.MaxCodeSize
	}
	c.instructions = buffer.NewList[byte](size, c.cfg.MaxCodeSize)
	return c
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() Config {
	return c.cfg
}

// Compile compiles src and returns bytecode that owns its storage and may
// be cached and shared.
func (c *Compiler) Compile(src string) (*bytecode.Code, error) {
	if err := c.compile(src); err != nil {
		return nil, err
	}
	return bytecode.NewCode(src, c.instructions.Items(), c.strings), nil
}

// CompileTransient compiles src and returns bytecode that views the
// compiler's buffers. The result is only valid until the next call to
// Compile or CompileTransient on this compiler.
func (c *Compiler) CompileTransient(src string) (*bytecode.Code, error) {
	if err := c.compile(src); err != nil {
		return nil, err
	}
	return bytecode.NewTransientCode(src, c.instructions.Items(), c.strings), nil
}

func (c *Compiler) reset(src string) {
	c.source = src
	c.lexer.Reset(src)
	c.previous = token.Token{}
	c.current = token.Token{}
	c.instructions.Reset()
	for i := range c.strings {
		c.strings[i] = ""
	}
	c.strings = c.strings[:0]
	clear(c.stringIndex)
	c.failure = nil
}

func (c *Compiler) compile(src string) error {
	c.reset(src)
	if err := c.advance(); err != nil {
		return err
	}
	if c.current.Type != token.EOF {
		if err := c.parseExpression(); err != nil {
			return err
		}
		if c.current.Type != token.EOF {
			if c.current.Type == token.RPAREN {
				return c.errorAtCurrent("Unexpected ')'")
			}
			return c.errorAtCurrent("Orphaned expression; expected an operator or end of input")
		}
	}
	c.emit(op.Return)
	return c.failure
}

// advance moves to the next token, failing on lexical errors.
func (c *Compiler) advance() error {
	c.previous = c.current
	c.current = c.lexer.Next()
	if c.current.Type == token.ILLEGAL {
		return c.errorAtCurrent(c.lexer.Message())
	}
	return nil
}

func (c *Compiler) check(typ token.Type) bool {
	return c.current.Type == typ
}

func (c *Compiler) match(typ token.Type) (bool, error) {
	if !c.check(typ) {
		return false, nil
	}
	return true, c.advance()
}

func (c *Compiler) consume(typ token.Type, message string) error {
	if c.check(typ) {
		return c.advance()
	}
	return c.errorAtCurrent(message)
}

func (c *Compiler) literal(tok token.Token) string {
	return tok.Literal(c.source)
}

func (c *Compiler) errorAt(tok token.Token, message string) *errz.CompileError {
	if tok.Type == token.EOF {
		return errz.NewCompileError(c.source, len(c.source), 1, message)
	}
	return errz.NewCompileError(c.source, tok.Start, tok.Len, message)
}

func (c *Compiler) errorAtCurrent(message string) error {
	return c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) error {
	return c.errorAt(c.previous, message)
}

func (c *Compiler) fail(format string, args ...any) {
	if c.failure == nil {
		c.failure = c.errorAt(c.current, fmt.Sprintf(format, args...))
	}
}
