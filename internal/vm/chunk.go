package vm

// Instr is one decoded instruction: an opcode plus its operand. Arg holds
// a constant-pool index, a local stack slot or an absolute jump target
// depending on Op; it is 0 for operand-less instructions.
type Instr struct {
	Op  Opcode
	Arg int
}

// Chunk represents a compiled unit of bytecode.
type Chunk struct {
	// Code is the append-only instruction log. Instructions are never
	// removed, but an emitted instruction's Arg may be patched in place
	// (forward-jump backpatching).
	Code []Instr
	// Constants is the literal pool referenced by index. Append-only and
	// not deduplicated: equal literals occupy distinct slots.
	Constants []Value
	// Lines maps instruction offsets to source lines, run-length encoded.
	// Exactly one entry per instruction: Lines.Len() == len(Code).
	Lines RunLength[int]
}

// NewChunk creates an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// WriteOp appends an instruction and records its source line, returning
// the instruction's offset (used later for backpatching).
func (c *Chunk) WriteOp(op Opcode, arg int, line int) int {
	c.Code = append(c.Code, Instr{Op: op, Arg: arg})
	c.Lines.Push(line)
	return len(c.Code) - 1
}

// AddConstant appends value to the constant pool and returns its index.
func (c *Chunk) AddConstant(value Value) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// Len reports the number of instructions written so far, which is also the
// offset the next instruction will occupy.
func (c *Chunk) Len() int {
	return len(c.Code)
}

// Line reports the source line of the instruction at offset.
func (c *Chunk) Line(offset int) int {
	return c.Lines.Get(offset)
}
