// Package chunk implements the bytecode container (the "Chunk") and the
// typed emitter helpers that append opcodes, operands, and jump
// placeholders into it.
//
// A Chunk is deliberately dumb: it has no notion of scopes, precedence,
// or grammar. It is an append-only byte buffer plus a u8-indexed
// constant pool, exactly as the compiler hands it off to the VM.
package chunk

import (
	"encoding/binary"
	"fmt"

	"lumen/value"
)

// maxConstants bounds the constant pool at 256 entries: the constant
// index operand is a single byte.
const maxConstants = 256

// Chunk is a compiled unit: code bytes plus a constant pool. Lines holds
// one source line number per byte in Code, used to report runtime error
// locations precisely instead of falling back to line 0.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int
}

// New returns an empty Chunk ready for emission.
func New() *Chunk {
	return &Chunk{}
}

// WriteByte appends a single raw byte, tagged with the source line that
// produced it.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends a bare opcode (no operand).
func (c *Chunk) WriteOp(op OpCode, line int) {
	c.WriteByte(byte(op), line)
}

// WriteOpByte appends an opcode followed by a single-byte operand (used
// for constant-pool indices, local slots, and pop counts).
func (c *Chunk) WriteOpByte(op OpCode, operand byte, line int) {
	c.WriteOp(op, line)
	c.WriteByte(operand, line)
}

// WriteOpUint16 appends an opcode followed by a big-endian 16-bit
// operand (used for jump and loop distances).
func (c *Chunk) WriteOpUint16(op OpCode, operand uint16, line int) {
	c.WriteOp(op, line)
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], operand)
	c.WriteByte(buf[0], line)
	c.WriteByte(buf[1], line)
}

// AddConstant appends a value to the constant pool and returns its
// index. The reference implementation does not de-duplicate; neither
// does this one.
func (c *Chunk) AddConstant(v value.Value) (byte, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return byte(len(c.Constants) - 1), nil
}

// EmitConstant adds v to the constant pool and emits OP_CONSTANT idx.
func (c *Chunk) EmitConstant(v value.Value, line int) error {
	idx, err := c.AddConstant(v)
	if err != nil {
		return err
	}
	c.WriteOpByte(OpConstant, idx, line)
	return nil
}

// EmitJump writes opcode followed by a two-byte 0xFF 0xFF placeholder
// and returns the offset of the first placeholder byte, for later use
// with PatchJump. op must be OpJump or OpJumpIfFalse.
func (c *Chunk) EmitJump(op OpCode, line int) int {
	c.WriteOp(op, line)
	c.WriteByte(0xFF, line)
	c.WriteByte(0xFF, line)
	return len(c.Code) - 2
}

// PatchJump overwrites the two-byte placeholder at offset (as returned
// by EmitJump) with the big-endian distance from just past the
// placeholder to the current end of the chunk.
func (c *Chunk) PatchJump(offset int) error {
	delta := len(c.Code) - offset - 2
	if delta < 0 || delta > 0xFFFF {
		return fmt.Errorf("jump distance %d out of 16-bit range", delta)
	}
	binary.BigEndian.PutUint16(c.Code[offset:offset+2], uint16(delta))
	return nil
}

// EmitLoop writes OP_LOOP followed by the big-endian distance the VM
// must subtract from its instruction pointer to branch back to target.
func (c *Chunk) EmitLoop(target int, line int) error {
	// +3 accounts for the opcode and the two operand bytes that
	// WriteOpUint16 is about to append; target is the byte offset the VM
	// should land on after decoding this instruction.
	delta := len(c.Code) + 3 - target
	if delta < 0 || delta > 0xFFFF {
		return fmt.Errorf("loop distance %d out of 16-bit range", delta)
	}
	c.WriteOpUint16(OpLoop, uint16(delta), line)
	return nil
}

// EmitReturn writes OP_RETURN.
func (c *Chunk) EmitReturn(line int) {
	c.WriteOp(OpReturn, line)
}

// LineAt returns the source line recorded for the byte at offset, or 0
// if no line table entry exists there.
func (c *Chunk) LineAt(offset int) int {
	if offset < 0 || offset >= len(c.Lines) {
		return 0
	}
	return c.Lines[offset]
}
