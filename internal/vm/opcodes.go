// Package vm implements the bytecode compiler and virtual machine for
// funlet: a single pass from tokens to a Chunk, then a stack-based
// dispatch loop over it.
package vm

// Opcode represents a single VM instruction tag.
type Opcode byte

const (
	// Stack manipulation
	OP_CONST Opcode = iota // Push constant from pool
	OP_NIL                 // Push nil
	OP_TRUE                // Push true
	OP_FALSE               // Push false
	OP_POP                 // Discard top of stack

	// Arithmetic; OP_ADD doubles as string concatenation
	OP_ADD // +
	OP_SUB // -
	OP_MUL // *
	OP_DIV // /
	OP_NEG // Unary minus

	// Comparison; <=, >= and != compile as GT/LT/EQ followed by NOT
	OP_EQ // ==
	OP_GT // >
	OP_LT // <

	// Logic
	OP_NOT // !

	// Variables
	OP_GET_LOCAL     // Get local variable by stack slot
	OP_SET_LOCAL     // Set local variable by stack slot
	OP_GET_GLOBAL    // Get global variable by name
	OP_DEFINE_GLOBAL // Define global variable by name
	OP_SET_GLOBAL    // Set global variable by name

	// Control flow
	OP_JUMP_IF_FALSE // Jump to target if top of stack is falsey (peeks)

	// Output
	OP_PRINT // Pop and print with trailing newline

	OP_RETURN // End of execution
)

// OpcodeNames maps opcodes to their string names (for disassembly and
// tracing).
var OpcodeNames = map[Opcode]string{
	OP_CONST: "CONST",
	OP_NIL:   "NIL",
	OP_TRUE:  "TRUE",
	OP_FALSE: "FALSE",
	OP_POP:   "POP",

	OP_ADD: "ADD",
	OP_SUB: "SUB",
	OP_MUL: "MUL",
	OP_DIV: "DIV",
	OP_NEG: "NEG",

	OP_EQ: "EQ",
	OP_GT: "GT",
	OP_LT: "LT",

	OP_NOT: "NOT",

	OP_GET_LOCAL:     "GET_LOCAL",
	OP_SET_LOCAL:     "SET_LOCAL",
	OP_GET_GLOBAL:    "GET_GLOBAL",
	OP_DEFINE_GLOBAL: "DEFINE_GLOBAL",
	OP_SET_GLOBAL:    "SET_GLOBAL",

	OP_JUMP_IF_FALSE: "JUMP_IF_FALSE",

	OP_PRINT: "PRINT",

	OP_RETURN: "RETURN",
}
