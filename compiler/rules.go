package compiler

import (
	"fmt"

	"github.com/risor-io/expr/errz"
	"github.com/risor-io/expr/internal/token"
	"github.com/risor-io/expr/op"
)

// precedence is the binding power of an infix operator, lowest first.
type precedence uint8

const (
	precNone precedence = iota
	precOr              // |
	precAnd             // &
	precEquality        // = !=
	precComparison      // < <= > >=
	precTerm            // + -
	precFactor          // * / % ^
	precUnary           // ! -
	precCall            // ()
	precPrimary
)

type parseFn func(c *Compiler) error

type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

// rules is indexed by token type. It is filled once by init and only read
// afterwards.
var rules [token.Count]parseRule

func init() {
	rules = [token.Count]parseRule{
		token.LPAREN:    {prefix: (*Compiler).grouping},
		token.MINUS:     {prefix: (*Compiler).unary, infix: (*Compiler).binary, prec: precTerm},
		token.PLUS:      {infix: (*Compiler).binary, prec: precTerm},
		token.ASTERISK:  {infix: (*Compiler).binary, prec: precFactor},
		token.SLASH:     {infix: (*Compiler).binary, prec: precFactor},
		token.MOD:       {infix: (*Compiler).binary, prec: precFactor},
		token.CARET:     {infix: (*Compiler).binary, prec: precFactor},
		token.BANG:      {prefix: (*Compiler).unary},
		token.EQ:        {infix: (*Compiler).binary, prec: precEquality},
		token.NOT_EQ:    {infix: (*Compiler).binary, prec: precEquality},
		token.LT:        {infix: (*Compiler).binary, prec: precComparison},
		token.LT_EQUALS: {infix: (*Compiler).binary, prec: precComparison},
		token.GT:        {infix: (*Compiler).binary, prec: precComparison},
		token.GT_EQUALS: {infix: (*Compiler).binary, prec: precComparison},
		token.AMPERSAND: {infix: (*Compiler).and, prec: precAnd},
		token.PIPE:      {infix: (*Compiler).or, prec: precOr},
		token.DOLLAR:    {prefix: (*Compiler).parameter},
		token.IDENT:     {prefix: (*Compiler).call},
		token.STRING:    {prefix: (*Compiler).str},
		token.INT:       {prefix: (*Compiler).integer},
		token.FLOAT:     {prefix: (*Compiler).decimal},
		token.FLOAT32:   {prefix: (*Compiler).decimal},
		token.TRUE:      {prefix: (*Compiler).constant},
		token.FALSE:     {prefix: (*Compiler).constant},
		token.NAN:       {prefix: (*Compiler).constant},
	}
}

var binaryOps = map[token.Type]op.Code{
	token.PLUS:      op.Add,
	token.MINUS:     op.Sub,
	token.ASTERISK:  op.Mul,
	token.SLASH:     op.Div,
	token.MOD:       op.Mod,
	token.CARET:     op.Xor,
	token.EQ:        op.Equal,
	token.NOT_EQ:    op.NotEqual,
	token.LT:        op.Less,
	token.LT_EQUALS: op.LessEqual,
	token.GT:        op.Greater,
	token.GT_EQUALS: op.GreaterEqual,
}

func (c *Compiler) parseExpression() error {
	return c.parsePrecedence(precOr)
}

func (c *Compiler) parsePrecedence(prec precedence) error {
	if err := c.advance(); err != nil {
		return err
	}
	prefix := rules[c.previous.Type].prefix
	if prefix == nil {
		return c.errorAtPrevious("Expected expression")
	}
	if err := prefix(c); err != nil {
		return err
	}
	for prec <= rules[c.current.Type].prec {
		if err := c.advance(); err != nil {
			return err
		}
		if err := rules[c.previous.Type].infix(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) grouping() error {
	if err := c.parseExpression(); err != nil {
		return err
	}
	return c.consume(token.RPAREN, "Expected ')' after expression")
}

func (c *Compiler) unary() error {
	operator := c.previous.Type
	if operator == token.MINUS && c.current.Type == token.INT && c.literal(c.current) == minInt64Magnitude {
		return c.minInt64()
	}
	if err := c.parsePrecedence(precUnary); err != nil {
		return err
	}
	switch operator {
	case token.MINUS:
		c.emit(op.Neg)
	case token.BANG:
		c.emit(op.Not)
	}
	return nil
}

func (c *Compiler) binary() error {
	operator := c.previous.Type
	if err := c.parsePrecedence(rules[operator].prec + 1); err != nil {
		return err
	}
	c.emit(binaryOps[operator])
	return nil
}

// and compiles "left & right". When left is falsey the jump skips right
// and left remains on the stack as the result.
func (c *Compiler) and() error {
	jump := c.emitJump(op.JumpIfFalse)
	c.emit(op.Pop)
	if err := c.parsePrecedence(precAnd); err != nil {
		return err
	}
	return c.patchJump(jump)
}

// or compiles "left | right", the mirror of and.
func (c *Compiler) or() error {
	jump := c.emitJump(op.JumpIfTrue)
	c.emit(op.Pop)
	if err := c.parsePrecedence(precOr); err != nil {
		return err
	}
	return c.patchJump(jump)
}

func (c *Compiler) parameter() error {
	switch c.current.Type {
	case token.IDENT, token.TRUE, token.FALSE, token.NAN:
	default:
		return c.errorAtCurrent("Expected identifier after '$'")
	}
	if err := c.advance(); err != nil {
		return err
	}
	name := c.literal(c.previous)
	c.emit(op.LoadParam, uint64(c.stringIndexOf(name)))
	if c.check(token.LPAREN) {
		return c.errorAtCurrent(fmt.Sprintf("Parameter '$%s' cannot be called", name))
	}
	return nil
}

func (c *Compiler) call() error {
	nameToken := c.previous
	name := c.literal(nameToken)
	if !c.check(token.LPAREN) {
		return c.errorAt(nameToken, fmt.Sprintf("Unexpected identifier '%s'", name))
	}
	id, err := c.resolve(nameToken, name)
	if err != nil {
		return err
	}
	if err := c.advance(); err != nil {
		return err
	}
	argc, err := c.argumentList()
	if err != nil {
		return err
	}
	c.emit(op.Call, uint64(argc), uint64(id))
	return nil
}

func (c *Compiler) resolve(nameToken token.Token, name string) (uint32, error) {
	if c.cfg.Functions != nil {
		if id, ok := c.cfg.Functions.FunctionID(name); ok {
			return id, nil
		}
	}
	cerr := c.errorAt(nameToken, fmt.Sprintf("'%s' is not a function", name))
	if lister, ok := c.cfg.Functions.(FunctionLister); ok {
		cerr.WithSuggestions(errz.SuggestSimilar(name, lister.FunctionNames()))
	}
	return 0, cerr
}

func (c *Compiler) argumentList() (int, error) {
	argc := 0
	if !c.check(token.RPAREN) {
		for {
			if err := c.parseExpression(); err != nil {
				return 0, err
			}
			if argc == MaxArgs {
				return 0, c.errorAtPrevious(fmt.Sprintf(
					"Too many arguments supplied to function (max %d)", MaxArgs))
			}
			argc++
			ok, err := c.match(token.COMMA)
			if err != nil {
				return 0, err
			}
			if !ok {
				break
			}
		}
	}
	if err := c.consume(token.RPAREN, "Expected ')' after argument list"); err != nil {
		return 0, err
	}
	return argc, nil
}

func (c *Compiler) constant() error {
	switch c.previous.Type {
	case token.TRUE:
		c.emit(op.True)
	case token.FALSE:
		c.emit(op.False)
	case token.NAN:
		c.emitFloat64(nan)
	}
	return nil
}
