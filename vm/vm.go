// Package vm implements the stack-based bytecode interpreter: it fetches
// and decodes one instruction at a time from a chunk.Chunk, dispatches on
// opcode, and mutates the operand stack and a globals table accordingly.
package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"lumen/chunk"
	"lumen/compiler"
	"lumen/value"
)

// InterpretResult reports how an Interpret call ended, mirroring the
// run/compile/runtime three-way split the CLI uses to pick an exit code.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is the runtime environment bytecode executes in. One VM can run
// many chunks in sequence: the REPL keeps a single VM alive across
// lines so that global variables defined on one line are visible on the
// next, while the operand stack and instruction pointer are reset for
// each new chunk.
type VM struct {
	chunk   *chunk.Chunk
	ip      int
	stack   *stack
	globals map[string]value.Value
	stdout  io.Writer
}

// New returns a VM with empty globals, ready to interpret. stdout
// defaults to os.Stdout; override it via SetOutput for tests.
func New() *VM {
	return &VM{
		stack:   newStack(),
		globals: make(map[string]value.Value),
		stdout:  os.Stdout,
	}
}

// SetOutput redirects where OP_PRINT writes, for tests that want to
// capture program output instead of letting it go to the real stdout.
func (vm *VM) SetOutput(w io.Writer) {
	vm.stdout = w
}

// Interpret compiles source and, if compilation succeeds, runs the
// resulting chunk. Compile errors are returned without ever reaching the
// VM loop; a runtime error aborts execution mid-chunk.
func (vm *VM) Interpret(source string) (InterpretResult, []error) {
	c, ok, errs := compiler.Compile(source)
	if !ok {
		return InterpretCompileError, errs
	}

	result, err := vm.run(c)
	if err != nil {
		return result, []error{err}
	}
	return result, nil
}

func (vm *VM) run(c *chunk.Chunk) (InterpretResult, error) {
	vm.chunk = c
	vm.ip = 0
	vm.stack.reset()

	for {
		instruction := vm.ip
		op := chunk.OpCode(vm.chunk.Code[vm.ip])

		switch op {
		case chunk.OpReturn:
			return InterpretOK, nil

		case chunk.OpConstant:
			idx := vm.chunk.Code[vm.ip+1]
			if err := vm.stack.push(vm.chunk.Constants[idx]); err != nil {
				return vm.runtimeError(instruction, err.Error())
			}
			vm.ip += 2

		case chunk.OpNil:
			vm.stack.push(value.Nil)
			vm.ip++

		case chunk.OpTrue:
			vm.stack.push(value.Bool(true))
			vm.ip++

		case chunk.OpFalse:
			vm.stack.push(value.Bool(false))
			vm.ip++

		case chunk.OpPop:
			vm.stack.pop()
			vm.ip++

		case chunk.OpPopN:
			n := vm.chunk.Code[vm.ip+1]
			for i := byte(0); i < n; i++ {
				vm.stack.pop()
			}
			vm.ip += 2

		case chunk.OpNegate:
			operand := vm.stack.peek(0)
			if !operand.IsNumber() {
				return vm.runtimeError(instruction, "Operand must be a number.")
			}
			vm.stack.pop()
			vm.stack.push(value.Number(-operand.AsNumber()))
			vm.ip++

		case chunk.OpNot:
			vm.stack.push(value.Bool(!vm.stack.pop().Truthy()))
			vm.ip++

		case chunk.OpAdd:
			b, a := vm.stack.peek(0), vm.stack.peek(1)
			switch {
			case a.IsNumber() && b.IsNumber():
				vm.stack.pop()
				vm.stack.pop()
				vm.stack.push(value.Number(a.AsNumber() + b.AsNumber()))
			case a.IsString() && b.IsString():
				vm.stack.pop()
				vm.stack.pop()
				vm.stack.push(value.String(a.AsString() + b.AsString()))
			default:
				return vm.runtimeError(instruction, "Operands must be two numbers or two strings.")
			}
			vm.ip++

		case chunk.OpSubtract:
			if err := vm.numericBinary(instruction, func(a, b float64) float64 { return a - b }); err != nil {
				return InterpretRuntimeError, err
			}
			vm.ip++

		case chunk.OpMultiply:
			b, a := vm.stack.peek(0), vm.stack.peek(1)
			switch {
			case a.IsNumber() && b.IsNumber():
				vm.stack.pop()
				vm.stack.pop()
				vm.stack.push(value.Number(a.AsNumber() * b.AsNumber()))
			case a.IsString() && b.IsNumber():
				vm.stack.pop()
				vm.stack.pop()
				vm.stack.push(value.String(value.Repeat(a.AsString(), b.AsNumber())))
			case a.IsNumber() && b.IsString():
				vm.stack.pop()
				vm.stack.pop()
				vm.stack.push(value.String(value.Repeat(b.AsString(), a.AsNumber())))
			default:
				return vm.runtimeError(instruction, "Operands must be two numbers, or a string and a number.")
			}
			vm.ip++

		case chunk.OpDivide:
			if err := vm.numericBinary(instruction, func(a, b float64) float64 { return a / b }); err != nil {
				return InterpretRuntimeError, err
			}
			vm.ip++

		case chunk.OpEqual:
			b, a := vm.stack.pop(), vm.stack.pop()
			vm.stack.push(value.Bool(a.Equal(b)))
			vm.ip++

		case chunk.OpGreater:
			if err := vm.comparisonBinary(instruction,
				func(a, b float64) bool { return a > b },
				func(a, b string) bool { return a > b }); err != nil {
				return InterpretRuntimeError, err
			}
			vm.ip++

		case chunk.OpLess:
			if err := vm.comparisonBinary(instruction,
				func(a, b float64) bool { return a < b },
				func(a, b string) bool { return a < b }); err != nil {
				return InterpretRuntimeError, err
			}
			vm.ip++

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, vm.stack.pop().String())
			vm.ip++

		case chunk.OpDefineGlobal:
			name := vm.chunk.Constants[vm.chunk.Code[vm.ip+1]].AsString()
			vm.globals[name] = vm.stack.peek(0)
			vm.stack.pop()
			vm.ip += 2

		case chunk.OpGetGlobal:
			name := vm.chunk.Constants[vm.chunk.Code[vm.ip+1]].AsString()
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(instruction, "Undefined variable '%s'.", name)
			}
			vm.stack.push(v)
			vm.ip += 2

		case chunk.OpSetGlobal:
			name := vm.chunk.Constants[vm.chunk.Code[vm.ip+1]].AsString()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(instruction, "Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.stack.peek(0)
			vm.ip += 2

		case chunk.OpGetLocal:
			slot := vm.chunk.Code[vm.ip+1]
			vm.stack.push(vm.stack.values[slot])
			vm.ip += 2

		case chunk.OpSetLocal:
			slot := vm.chunk.Code[vm.ip+1]
			vm.stack.values[slot] = vm.stack.peek(0)
			vm.ip += 2

		case chunk.OpJump:
			offset := binary.BigEndian.Uint16(vm.chunk.Code[vm.ip+1 : vm.ip+3])
			vm.ip += 3 + int(offset)

		case chunk.OpJumpIfFalse:
			offset := binary.BigEndian.Uint16(vm.chunk.Code[vm.ip+1 : vm.ip+3])
			if !vm.stack.peek(0).Truthy() {
				vm.ip += 3 + int(offset)
			} else {
				vm.ip += 3
			}

		case chunk.OpLoop:
			offset := binary.BigEndian.Uint16(vm.chunk.Code[vm.ip+1 : vm.ip+3])
			vm.ip += 3 - int(offset)

		default:
			return vm.runtimeError(instruction, "unknown opcode %d", op)
		}
	}
}

func (vm *VM) numericBinary(instruction int, op func(a, b float64) float64) error {
	b, a := vm.stack.peek(0), vm.stack.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		_, err := vm.runtimeError(instruction, "Operands must be numbers.")
		return err
	}
	vm.stack.pop()
	vm.stack.pop()
	vm.stack.push(value.Number(op(a.AsNumber(), b.AsNumber())))
	return nil
}

// comparisonBinary implements OP_GREATER/OP_LESS: both operands must be
// numbers, or both must be strings (lexical ordering).
func (vm *VM) comparisonBinary(instruction int, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) error {
	b, a := vm.stack.peek(0), vm.stack.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(value.Bool(numCmp(a.AsNumber(), b.AsNumber())))
		return nil
	case a.IsString() && b.IsString():
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(value.Bool(strCmp(a.AsString(), b.AsString())))
		return nil
	default:
		_, err := vm.runtimeError(instruction, "Operands must be two numbers or two strings.")
		return err
	}
}

func (vm *VM) runtimeError(instruction int, format string, args ...any) (InterpretResult, error) {
	return InterpretRuntimeError, RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    vm.chunk.LineAt(instruction),
	}
}
