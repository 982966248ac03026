// Package debug disassembles a chunk.Chunk into the human-readable
// listing the "disasm" CLI subcommand prints, one instruction per line
// with its source line number and any operand.
package debug

import (
	"encoding/binary"
	"fmt"
	"strings"

	"lumen/chunk"
)

// DisassembleChunk renders every instruction in c under a banner
// carrying name (typically the source file path, or "repl").
func DisassembleChunk(c *chunk.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)

	offset := 0
	for offset < len(c.Code) {
		var line string
		line, offset = DisassembleInstruction(c, offset)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset and
// returns the offset of the next instruction.
func DisassembleInstruction(c *chunk.Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && c.LineAt(offset) == c.LineAt(offset-1) {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.LineAt(offset))
	}

	op := chunk.OpCode(c.Code[offset])
	switch op {
	case chunk.OpReturn, chunk.OpNegate, chunk.OpAdd, chunk.OpSubtract,
		chunk.OpMultiply, chunk.OpDivide, chunk.OpNil, chunk.OpTrue,
		chunk.OpFalse, chunk.OpNot, chunk.OpEqual, chunk.OpGreater,
		chunk.OpLess, chunk.OpPrint, chunk.OpPop:
		b.WriteString(op.String())
		return b.String(), offset + 1

	case chunk.OpConstant, chunk.OpDefineGlobal, chunk.OpGetGlobal, chunk.OpSetGlobal:
		idx := c.Code[offset+1]
		fmt.Fprintf(&b, "%-16s %4d '%s'", op.String(), idx, c.Constants[idx].String())
		return b.String(), offset + 2

	case chunk.OpGetLocal, chunk.OpSetLocal, chunk.OpPopN:
		slot := c.Code[offset+1]
		fmt.Fprintf(&b, "%-16s %4d", op.String(), slot)
		return b.String(), offset + 2

	case chunk.OpJump, chunk.OpJumpIfFalse:
		delta := binary.BigEndian.Uint16(c.Code[offset+1 : offset+3])
		fmt.Fprintf(&b, "%-16s %4d -> %d", op.String(), offset, offset+3+int(delta))
		return b.String(), offset + 3

	case chunk.OpLoop:
		delta := binary.BigEndian.Uint16(c.Code[offset+1 : offset+3])
		fmt.Fprintf(&b, "%-16s %4d -> %d", op.String(), offset, offset+3-int(delta))
		return b.String(), offset + 3

	default:
		fmt.Fprintf(&b, "Unknown opcode %d", op)
		return b.String(), offset + 1
	}
}
