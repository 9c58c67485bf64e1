package vm

import "github.com/funvibe/funlet/internal/token"

// declaration is the top of the statement grammar. Splitting var off from
// statement keeps a bare declaration out of `if` bodies, where a
// conditionally-executed local would corrupt the static stack layout.
func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

// varDeclaration compiles `var NAME;` and `var NAME = EXPR;`. At global
// scope the value is stored under its name at run time; inside a block the
// value simply stays on the stack as the new local's slot.
func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.ASSIGN) {
		c.expression()
	} else {
		c.emit(OP_NIL)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

// parseVariable consumes the variable name, declares it, and returns the
// name's constant-pool index for globals (locals need no constant).
func (c *Compiler) parseVariable(message string) int {
	c.consume(token.IDENT, message)

	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) defineVariable(global int) {
	if c.scopeDepth > 0 {
		c.markReady()
		return
	}
	c.emitArg(OP_DEFINE_GLOBAL, global)
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emit(OP_PRINT)
}

// expressionStatement evaluates an expression for its effect and discards
// the result: every statement leaves the stack at its pre-statement depth.
func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emit(OP_POP)
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

// ifStatement compiles `if (EXPR) STATEMENT`. The branch peeks at the
// condition, so the value stays on the stack through the body; the single
// OP_POP at the join, which is also the branch target, removes it on both
// paths. While the body compiles, an unnamed reserved slot stands in for
// the condition value so locals declared in nested blocks resolve to the
// right stack offsets.
func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	skip := c.emitJump(OP_JUMP_IF_FALSE)
	c.reserveSlot()
	c.statement()

	c.patchJump(skip)
	c.emit(OP_POP)
	c.releaseSlot()
}
