package vm

import "github.com/funvibe/funlet/internal/token"

// beginScope starts a new scope.
func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope ends the current scope and pops every local declared in it,
// keeping the compile-time local list aligned with the runtime stack.
func (c *Compiler) endScope() {
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		c.emit(OP_POP)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// reserveSlot appends an unnamed local covering a value the emitted code
// keeps on the stack across statements (the pending `if` condition). The
// empty name can never match an identifier, so the slot is unresolvable;
// it only keeps later slot indices honest.
func (c *Compiler) reserveSlot() {
	c.locals = append(c.locals, Local{Depth: c.scopeDepth, Ready: true})
}

// releaseSlot drops the most recent reserved slot. The caller emits the
// matching OP_POP.
func (c *Compiler) releaseSlot() {
	c.locals = c.locals[:len(c.locals)-1]
}

// addLocal records a new local in the current scope; its slot is its
// position in the list. The local starts not Ready: reads are illegal
// until the initializer has been compiled.
func (c *Compiler) addLocal(name string) {
	if len(c.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, Local{Name: name, Depth: c.scopeDepth})
}

// declareVariable reserves a local slot for the name just consumed.
// Global declarations are late-bound by name and need nothing here.
func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}

	name := c.previous.Lexeme
	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.Depth < c.scopeDepth {
			break
		}
		if local.Name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

// markReady flips the newest local to initialized once its initializer has
// been compiled.
func (c *Compiler) markReady() {
	c.locals[len(c.locals)-1].Ready = true
}

// resolveLocal looks up a local by name, innermost-first so shadowing
// finds the nearest declaration, and returns its stack slot or -1 when the
// name must be treated as a global.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].Name == name {
			if !c.locals[i].Ready {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// identifierConstant interns the token's lexeme into the constant pool for
// runtime name lookup.
func (c *Compiler) identifierConstant(tok token.Token) int {
	return c.chunk.AddConstant(StrVal(tok.Lexeme))
}

// emit helpers; every instruction is attributed to the line of the token
// that produced it.

func (c *Compiler) emit(op Opcode) int {
	return c.chunk.WriteOp(op, 0, c.previous.Line)
}

func (c *Compiler) emitArg(op Opcode, arg int) int {
	return c.chunk.WriteOp(op, arg, c.previous.Line)
}

func (c *Compiler) emitConstant(value Value) {
	c.emitArg(OP_CONST, c.chunk.AddConstant(value))
}

// emitJump writes a branch with a placeholder target and returns its
// offset for patchJump.
func (c *Compiler) emitJump(op Opcode) int {
	return c.emitArg(op, -1)
}

// patchJump points the branch at offset to the next instruction to be
// emitted. Targets are absolute instruction indices.
func (c *Compiler) patchJump(offset int) {
	c.chunk.Code[offset].Arg = c.chunk.Len()
}
