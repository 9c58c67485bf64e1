package vm

import (
	"strconv"

	"github.com/funvibe/funlet/internal/token"
)

// Precedence orders operator binding, loosest first. Expression parsing
// enters at ASSIGNMENT; LOWEST marks tokens that neither start nor
// continue an expression.
type Precedence byte

const (
	LOWEST      Precedence = iota
	ASSIGNMENT             // =
	EQUALS                 // == !=
	LESSGREATER            // < > <= >=
	SUM                    // + -
	PRODUCT                // * /
	PREFIX                 // ! -
)

type parseFn func(c *Compiler, canAssign bool)

// parseRule pairs a token type with its expression roles: how it begins an
// expression (prefix), how it continues one (infix), and how tightly its
// infix form binds.
type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// parseRules drives compilePrecedence. Token types missing from the map
// take the zero rule: no handlers, LOWEST precedence. Populated in init
// rather than a composite literal: the handlers reach back into the map
// through ruleFor, which the initialization-order check calls a cycle.
var parseRules map[token.TokenType]parseRule

func init() {
	parseRules = map[token.TokenType]parseRule{
		token.LPAREN:   {prefix: (*Compiler).grouping},
		token.MINUS:    {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: SUM},
		token.PLUS:     {infix: (*Compiler).binary, precedence: SUM},
		token.SLASH:    {infix: (*Compiler).binary, precedence: PRODUCT},
		token.ASTERISK: {infix: (*Compiler).binary, precedence: PRODUCT},
		token.BANG:     {prefix: (*Compiler).unary},
		token.EQ:       {infix: (*Compiler).binary, precedence: EQUALS},
		token.NOT_EQ:   {infix: (*Compiler).binary, precedence: EQUALS},
		token.LT:       {infix: (*Compiler).binary, precedence: LESSGREATER},
		token.GT:       {infix: (*Compiler).binary, precedence: LESSGREATER},
		token.LTE:      {infix: (*Compiler).binary, precedence: LESSGREATER},
		token.GTE:      {infix: (*Compiler).binary, precedence: LESSGREATER},
		token.NUMBER:   {prefix: (*Compiler).number},
		token.STRING:   {prefix: (*Compiler).stringLiteral},
		token.IDENT:    {prefix: (*Compiler).variable},
		token.NIL:      {prefix: (*Compiler).literal},
		token.TRUE:     {prefix: (*Compiler).literal},
		token.FALSE:    {prefix: (*Compiler).literal},
	}
}

func ruleFor(kind token.TokenType) parseRule {
	return parseRules[kind]
}

func (c *Compiler) expression() {
	c.compilePrecedence(ASSIGNMENT)
}

// compilePrecedence parses one expression at binding power prec or
// tighter: a single prefix reduction, then every infix operator that binds
// at least as tightly, the right operand of each compiled one level higher
// for left associativity.
func (c *Compiler) compilePrecedence(prec Precedence) {
	c.advance()
	prefix := ruleFor(c.previous.Type).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= ASSIGNMENT
	prefix(c, canAssign)

	for prec <= ruleFor(c.current.Type).precedence {
		c.advance()
		ruleFor(c.previous.Type).infix(c, canAssign)
	}

	// An '=' still sitting here means the left side was not assignable.
	if canAssign && c.match(token.ASSIGN) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) number(canAssign bool) {
	value, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(NumVal(value))
}

func (c *Compiler) stringLiteral(canAssign bool) {
	lexeme := c.previous.Lexeme
	// Strip the surrounding quotes; the scanner kept them in the lexeme.
	c.emitConstant(StrVal(lexeme[1 : len(lexeme)-1]))
}

func (c *Compiler) literal(canAssign bool) {
	switch c.previous.Type {
	case token.NIL:
		c.emit(OP_NIL)
	case token.TRUE:
		c.emit(OP_TRUE)
	case token.FALSE:
		c.emit(OP_FALSE)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	op := c.previous.Type
	c.compilePrecedence(PREFIX)

	switch op {
	case token.MINUS:
		c.emit(OP_NEG)
	case token.BANG:
		c.emit(OP_NOT)
	}
}

// binary compiles the right operand then the operator. The comparison
// forms without an opcode of their own become an opcode pair: one extra
// dispatch buys a smaller instruction set.
func (c *Compiler) binary(canAssign bool) {
	op := c.previous.Type
	c.compilePrecedence(ruleFor(op).precedence + 1)

	switch op {
	case token.PLUS:
		c.emit(OP_ADD)
	case token.MINUS:
		c.emit(OP_SUB)
	case token.ASTERISK:
		c.emit(OP_MUL)
	case token.SLASH:
		c.emit(OP_DIV)
	case token.EQ:
		c.emit(OP_EQ)
	case token.NOT_EQ:
		c.emit(OP_EQ)
		c.emit(OP_NOT)
	case token.GT:
		c.emit(OP_GT)
	case token.LT:
		c.emit(OP_LT)
	case token.GTE:
		c.emit(OP_LT)
		c.emit(OP_NOT)
	case token.LTE:
		c.emit(OP_GT)
		c.emit(OP_NOT)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// namedVariable compiles a read of the named variable or, when an '='
// follows in assignment position, a write. Locals resolve to stack slots
// at compile time; anything unresolved is a global, looked up by name at
// run time.
func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	getOp, setOp := OP_GET_LOCAL, OP_SET_LOCAL
	arg := c.resolveLocal(name.Lexeme)
	if arg == -1 {
		getOp, setOp = OP_GET_GLOBAL, OP_SET_GLOBAL
		arg = c.identifierConstant(name)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.expression()
		c.emitArg(setOp, arg)
		return
	}
	c.emitArg(getOp, arg)
}
