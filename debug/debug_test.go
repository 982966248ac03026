package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/chunk"
	"lumen/value"
)

func TestDisassembleConstantInstruction(t *testing.T) {
	c := chunk.New()
	_ = c.EmitConstant(value.Number(5), 1)
	c.EmitReturn(1)

	out := DisassembleChunk(c, "test")
	assert.Contains(t, out, "== test ==")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_RETURN")
}

func TestDisassembleJumpShowsTarget(t *testing.T) {
	c := chunk.New()
	jump := c.EmitJump(chunk.OpJump, 1)
	c.WriteOp(chunk.OpNil, 1)
	_ = c.PatchJump(jump)

	out := DisassembleChunk(c, "test")
	assert.Contains(t, out, "OP_JUMP")
	assert.Contains(t, out, "->")
}

func TestDisassembleSameLineCollapsesToPipe(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpNil, 3)
	c.WriteOp(chunk.OpTrue, 3)

	out := DisassembleChunk(c, "test")
	assert.Contains(t, out, "   | ")
}
