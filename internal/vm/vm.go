package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Stack sizing. The stack starts small and grows on demand up to the hard
// cap; blowing the cap is a runtime error, not a crash.
const (
	InitialStackSize     = 256
	MaxStackSize         = 65536
	StackGrowthIncrement = 256
)

// Statuses surfaced by Interpret. The human-readable diagnostics have
// already been written to the error output by the time either is returned.
var (
	ErrCompile = errors.New("compile error")
	ErrRuntime = errors.New("runtime error")
)

var (
	errStackOverflow  = errors.New("stack overflow")
	errStackUnderflow = errors.New("stack underflow")
)

// VM executes compiled chunks. The global table persists for the lifetime
// of the instance across Interpret calls, so an interactive session
// accumulates state line by line; the chunk, instruction pointer and
// operand stack are per-call and reset on every error.
type VM struct {
	chunk *Chunk
	ip    int

	stack []Value
	sp    int

	globals map[string]Value

	out    io.Writer // program output (print)
	errOut io.Writer // compile and runtime diagnostics
	trace  io.Writer // per-instruction tracing, nil when off
}

func New() *VM {
	return &VM{
		stack:   make([]Value, InitialStackSize),
		globals: make(map[string]Value),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects program output.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetErrorOutput redirects diagnostics.
func (vm *VM) SetErrorOutput(w io.Writer) {
	vm.errOut = w
}

// SetTrace enables per-instruction execution tracing to w; nil disables.
func (vm *VM) SetTrace(w io.Writer) {
	vm.trace = w
}

// Global reads a global variable by name.
func (vm *VM) Global(name string) (Value, bool) {
	v, ok := vm.globals[name]
	return v, ok
}

// Interpret compiles and executes source. It returns nil on success,
// ErrCompile when compilation failed and ErrRuntime when execution
// aborted. Compiler state is fresh on every call; globals carry over.
func (vm *VM) Interpret(source string) error {
	chunk, err := Compile(source, vm.errOut)
	if err != nil {
		return err
	}
	return vm.RunChunk(chunk)
}

// RunChunk executes an already-compiled chunk, for callers that
// disassemble or otherwise inspect the bytecode between compilation
// and execution. Globals persist from earlier calls on this instance.
func (vm *VM) RunChunk(chunk *Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.resetStack()
	return vm.run()
}

func (vm *VM) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, errStackOverflow) {
				err = vm.runtimeError("Stack overflow.")
				return
			}
			panic(r)
		}
	}()

	for {
		if vm.trace != nil {
			vm.traceInstruction()
		}

		instr := vm.chunk.Code[vm.ip]
		vm.ip++

		switch instr.Op {
		case OP_CONST:
			vm.push(vm.chunk.Constants[instr.Arg])

		case OP_NIL:
			vm.push(NilVal())

		case OP_TRUE:
			vm.push(BoolVal(true))

		case OP_FALSE:
			vm.push(BoolVal(false))

		case OP_POP:
			vm.pop()

		case OP_GET_LOCAL:
			vm.push(vm.stack[instr.Arg])

		case OP_SET_LOCAL:
			// Assignment is an expression: the value stays on top.
			vm.stack[instr.Arg] = vm.peek(0)

		case OP_GET_GLOBAL:
			name := vm.chunk.Constants[instr.Arg].AsStr()
			value, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(value)

		case OP_DEFINE_GLOBAL:
			name := vm.chunk.Constants[instr.Arg].AsStr()
			vm.globals[name] = vm.pop()

		case OP_SET_GLOBAL:
			// Assigning to a never-declared global is an error; only
			// var creates names.
			name := vm.chunk.Constants[instr.Arg].AsStr()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)

		case OP_EQ:
			b := vm.pop()
			a := vm.pop()
			vm.push(BoolVal(a.Equals(b)))

		case OP_ADD:
			b, a := vm.peek(0), vm.peek(1)
			switch {
			case a.IsNum() && b.IsNum():
				vm.pop()
				vm.pop()
				vm.push(NumVal(a.AsNum() + b.AsNum()))
			case a.IsStr() && b.IsStr():
				vm.pop()
				vm.pop()
				vm.push(StrVal(a.AsStr() + b.AsStr()))
			default:
				return vm.runtimeError("Operands must be two numbers or two strings.")
			}

		case OP_SUB, OP_MUL, OP_DIV, OP_GT, OP_LT:
			if !vm.peek(0).IsNum() || !vm.peek(1).IsNum() {
				return vm.runtimeError("Operands must be numbers.")
			}
			b := vm.pop().AsNum()
			a := vm.pop().AsNum()
			switch instr.Op {
			case OP_SUB:
				vm.push(NumVal(a - b))
			case OP_MUL:
				vm.push(NumVal(a * b))
			case OP_DIV:
				vm.push(NumVal(a / b))
			case OP_GT:
				vm.push(BoolVal(a > b))
			case OP_LT:
				vm.push(BoolVal(a < b))
			}

		case OP_NOT:
			vm.push(BoolVal(vm.pop().IsFalsey()))

		case OP_NEG:
			if !vm.peek(0).IsNum() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(NumVal(-vm.pop().AsNum()))

		case OP_PRINT:
			fmt.Fprintln(vm.out, vm.pop().Inspect())

		case OP_JUMP_IF_FALSE:
			// Peeks; the condition value stays for the join-point pop.
			if vm.peek(0).IsFalsey() {
				vm.ip = instr.Arg
			}

		case OP_RETURN:
			return nil

		default:
			return vm.runtimeError("Unknown opcode %d.", instr.Op)
		}
	}
}

// runtimeError reports a runtime fault: the message, then the source line
// of the failing instruction (the one ip already moved past). The stack is
// reset so the instance stays reusable; globals are untouched.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	fmt.Fprintf(vm.errOut, format+"\n", args...)
	fmt.Fprintf(vm.errOut, "[line %d] in script\n", vm.chunk.Line(vm.ip-1))
	vm.resetStack()
	return ErrRuntime
}

// traceInstruction prints the stack contents and the next instruction in
// disassembly form.
func (vm *VM) traceInstruction() {
	fmt.Fprint(vm.trace, "          ")
	for i := 0; i < vm.sp; i++ {
		fmt.Fprintf(vm.trace, "[ %s ]", vm.stack[i].Inspect())
	}
	fmt.Fprintln(vm.trace)
	DisassembleInstr(vm.trace, vm.chunk, vm.ip)
}

// Stack operations

func (vm *VM) push(v Value) {
	if vm.sp >= len(vm.stack) {
		if vm.sp >= MaxStackSize {
			panic(errStackOverflow)
		}
		growBy := StackGrowthIncrement
		if len(vm.stack) > growBy {
			growBy = len(vm.stack)
		}
		next := make([]Value, len(vm.stack)+growBy)
		copy(next, vm.stack[:vm.sp])
		vm.stack = next
	}
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() Value {
	if vm.sp <= 0 {
		panic(errStackUnderflow)
	}
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) Value {
	idx := vm.sp - 1 - distance
	if idx < 0 {
		panic(errStackUnderflow)
	}
	return vm.stack[idx]
}

func (vm *VM) resetStack() {
	vm.sp = 0
}
