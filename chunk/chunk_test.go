package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/value"
)

func TestOpcodeByteValuesMatchExternalContract(t *testing.T) {
	assert.EqualValues(t, 0, OpReturn)
	assert.EqualValues(t, 1, OpConstant)
	assert.EqualValues(t, 2, OpNegate)
	assert.EqualValues(t, 3, OpAdd)
	assert.EqualValues(t, 4, OpSubtract)
	assert.EqualValues(t, 5, OpMultiply)
	assert.EqualValues(t, 6, OpDivide)
	assert.EqualValues(t, 7, OpNil)
	assert.EqualValues(t, 8, OpTrue)
	assert.EqualValues(t, 9, OpFalse)
	assert.EqualValues(t, 10, OpNot)
	assert.EqualValues(t, 11, OpEqual)
	assert.EqualValues(t, 12, OpGreater)
	assert.EqualValues(t, 13, OpLess)
	assert.EqualValues(t, 14, OpPrint)
	assert.EqualValues(t, 15, OpPop)
	assert.EqualValues(t, 16, OpDefineGlobal)
	assert.EqualValues(t, 17, OpGetGlobal)
	assert.EqualValues(t, 18, OpSetGlobal)
	assert.EqualValues(t, 19, OpJumpIfFalse)
	assert.EqualValues(t, 20, OpPopN)
	assert.EqualValues(t, 21, OpGetLocal)
	assert.EqualValues(t, 22, OpSetLocal)
	assert.EqualValues(t, 23, OpJump)
	assert.EqualValues(t, 24, OpLoop)
}

func TestEmitConstant(t *testing.T) {
	c := New()
	require.NoError(t, c.EmitConstant(value.Number(5), 1))
	assert.Equal(t, []byte{byte(OpConstant), 0}, c.Code)
	assert.Equal(t, []value.Value{value.Number(5)}, c.Constants)
}

func TestConstantPoolBoundedAt256(t *testing.T) {
	c := New()
	for i := 0; i < 256; i++ {
		require.NoError(t, c.EmitConstant(value.Number(float64(i)), 1))
	}
	err := c.EmitConstant(value.Number(256), 1)
	assert.Error(t, err)
}

func TestForwardJumpPatch(t *testing.T) {
	c := New()
	jump := c.EmitJump(OpJumpIfFalse, 1)
	c.WriteOp(OpPop, 1)
	c.WriteOp(OpPop, 1)
	require.NoError(t, c.PatchJump(jump))

	delta := int(c.Code[jump])<<8 | int(c.Code[jump+1])
	assert.Equal(t, 2, delta)
}

func TestLoopEmitsBackwardDelta(t *testing.T) {
	c := New()
	loopStart := len(c.Code)
	c.WriteOp(OpNil, 1)
	require.NoError(t, c.EmitLoop(loopStart, 1))

	ipAfterLoop := len(c.Code)
	delta := int(c.Code[ipAfterLoop-2])<<8 | int(c.Code[ipAfterLoop-1])
	assert.Equal(t, ipAfterLoop-delta, loopStart)
}

func TestEveryByteHasALineEntry(t *testing.T) {
	c := New()
	require.NoError(t, c.EmitConstant(value.Number(1), 7))
	c.EmitReturn(7)
	assert.Equal(t, len(c.Code), len(c.Lines))
	for _, l := range c.Lines {
		assert.Equal(t, 7, l)
	}
}
