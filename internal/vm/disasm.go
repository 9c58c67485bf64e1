package vm

import (
	"fmt"
	"io"
	"strings"
)

// Disassemble returns a human-readable listing of the chunk.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("== %s ==\n", name))
	for offset := range chunk.Code {
		writeInstruction(&sb, chunk, offset)
	}

	return sb.String()
}

// DisassembleInstr writes the single instruction at offset to w, in the
// same form Disassemble uses. The VM trace mode prints through this.
func DisassembleInstr(w io.Writer, chunk *Chunk, offset int) {
	var sb strings.Builder
	writeInstruction(&sb, chunk, offset)
	fmt.Fprint(w, sb.String())
}

func writeInstruction(sb *strings.Builder, chunk *Chunk, offset int) {
	sb.WriteString(fmt.Sprintf("%04d ", offset))

	// Repeating source lines render as a continuation marker.
	if offset > 0 && chunk.Line(offset) == chunk.Line(offset-1) {
		sb.WriteString("   | ")
	} else {
		sb.WriteString(fmt.Sprintf("%4d ", chunk.Line(offset)))
	}

	instr := chunk.Code[offset]
	name := OpcodeNames[instr.Op]
	if name == "" {
		name = fmt.Sprintf("UNKNOWN(%d)", instr.Op)
	}

	switch instr.Op {
	case OP_CONST, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL:
		constantInstruction(sb, name, chunk, instr)
	case OP_GET_LOCAL, OP_SET_LOCAL:
		slotInstruction(sb, name, instr)
	case OP_JUMP_IF_FALSE:
		jumpInstruction(sb, name, instr)
	default:
		simpleInstruction(sb, name)
	}
}

func simpleInstruction(sb *strings.Builder, name string) {
	sb.WriteString(fmt.Sprintf("%s\n", name))
}

func constantInstruction(sb *strings.Builder, name string, chunk *Chunk, instr Instr) {
	if instr.Arg >= 0 && instr.Arg < len(chunk.Constants) {
		sb.WriteString(fmt.Sprintf("%-16s %4d '%s'\n", name, instr.Arg, chunk.Constants[instr.Arg].Inspect()))
	} else {
		sb.WriteString(fmt.Sprintf("%-16s %4d (invalid)\n", name, instr.Arg))
	}
}

func slotInstruction(sb *strings.Builder, name string, instr Instr) {
	sb.WriteString(fmt.Sprintf("%-16s %4d\n", name, instr.Arg))
}

func jumpInstruction(sb *strings.Builder, name string, instr Instr) {
	sb.WriteString(fmt.Sprintf("%-16s -> %d\n", name, instr.Arg))
}
