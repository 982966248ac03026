package chunk

// OpCode is a single bytecode instruction tag. The byte values below are
// a fixed external contract (tests and any future disassembler rely on
// them), not an iota-assigned implementation detail.
type OpCode byte

const (
	OpReturn        OpCode = 0
	OpConstant      OpCode = 1
	OpNegate        OpCode = 2
	OpAdd           OpCode = 3
	OpSubtract      OpCode = 4
	OpMultiply      OpCode = 5
	OpDivide        OpCode = 6
	OpNil           OpCode = 7
	OpTrue          OpCode = 8
	OpFalse         OpCode = 9
	OpNot           OpCode = 10
	OpEqual         OpCode = 11
	OpGreater       OpCode = 12
	OpLess          OpCode = 13
	OpPrint         OpCode = 14
	OpPop           OpCode = 15
	OpDefineGlobal  OpCode = 16
	OpGetGlobal     OpCode = 17
	OpSetGlobal     OpCode = 18
	OpJumpIfFalse   OpCode = 19
	OpPopN          OpCode = 20
	OpGetLocal      OpCode = 21
	OpSetLocal      OpCode = 22
	OpJump          OpCode = 23
	OpLoop          OpCode = 24
)

// names gives each opcode a human-readable label for the disassembler.
var names = map[OpCode]string{
	OpReturn:       "OP_RETURN",
	OpConstant:     "OP_CONSTANT",
	OpNegate:       "OP_NEGATE",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLE",
	OpDivide:       "OP_DIVIDE",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpNot:          "OP_NOT",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpPrint:        "OP_PRINT",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpPopN:         "OP_POP_N",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpJump:         "OP_JUMP",
	OpLoop:         "OP_LOOP",
}

func (op OpCode) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

// StackMax is the advisory operand-stack depth limit the VM enforces.
const StackMax = 256
