package compiler

import (
	"lumen/chunk"
	"lumen/token"
	"lumen/value"
)

// precedence orders binding strength from loosest to tightest. A binary
// operator recurses into parsePrecedence at precedence+1 so that same-
// precedence operators associate left.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()  (reserved: no call syntax is compiled)
	precPrimary
)

// parseFn is a single Pratt grammar rule action: a prefix rule consumes
// its own operand (and recurses as needed); an infix rule assumes its
// left operand has already been compiled and is sitting on the stack.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[token.TokenType]parseRule

func init() {
	rules = map[token.TokenType]parseRule{
		token.LPA:           {grouping, nil, precNone},
		token.SUB:           {unary, binary, precTerm},
		token.ADD:           {nil, binary, precTerm},
		token.DIV:           {nil, binary, precFactor},
		token.MULT:          {nil, binary, precFactor},
		token.BANG:          {unary, nil, precNone},
		token.NOT_EQUAL:     {nil, binary, precEquality},
		token.EQUAL_EQUAL:   {nil, binary, precEquality},
		token.LARGER:        {nil, binary, precComparison},
		token.LARGER_EQUAL:  {nil, binary, precComparison},
		token.LESS:          {nil, binary, precComparison},
		token.LESS_EQUAL:    {nil, binary, precComparison},
		token.IDENTIFIER:    {variable, nil, precNone},
		token.STRING:        {stringLiteral, nil, precNone},
		token.NUMBER:        {number, nil, precNone},
		token.AND:           {nil, and_, precAnd},
		token.OR:            {nil, or_, precOr},
		token.FALSE:         {literal, nil, precNone},
		token.TRUE:          {literal, nil, precNone},
		token.NULL:          {literal, nil, precNone},
	}
}

func getRule(tt token.TokenType) parseRule {
	return rules[tt]
}

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefixRule := getRule(c.previous.TokenType).prefix
	if prefixRule == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.current.TokenType).precedence {
		c.advance()
		infixRule := getRule(c.previous.TokenType).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}

func number(c *Compiler, _ bool) {
	c.emitConstant(value.Number(parseNumberLiteral(c.previous.Lexeme)))
}

// stringLiteral strips the surrounding quotes the scanner leaves in the
// lexeme. No escape processing is performed.
func stringLiteral(c *Compiler, _ bool) {
	lexeme := c.previous.Lexeme
	c.emitConstant(value.String(lexeme[1 : len(lexeme)-1]))
}

func literal(c *Compiler, _ bool) {
	switch c.previous.TokenType {
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.NULL:
		c.emitOp(chunk.OpNil)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPA, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	operatorType := c.previous.TokenType

	c.parsePrecedence(precUnary)

	switch operatorType {
	case token.SUB:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func binary(c *Compiler, _ bool) {
	operatorType := c.previous.TokenType
	rule := getRule(operatorType)
	c.parsePrecedence(rule.precedence + 1)

	switch operatorType {
	case token.ADD:
		c.emitOp(chunk.OpAdd)
	case token.SUB:
		c.emitOp(chunk.OpSubtract)
	case token.MULT:
		c.emitOp(chunk.OpMultiply)
	case token.DIV:
		c.emitOp(chunk.OpDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(chunk.OpEqual)
	case token.NOT_EQUAL:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.LARGER:
		c.emitOp(chunk.OpGreater)
	case token.LARGER_EQUAL:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.LESS:
		c.emitOp(chunk.OpLess)
	case token.LESS_EQUAL:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	}
}

// and_ short-circuits: if the left operand is falsey, its value (already
// on the stack) becomes the result of the whole expression and the right
// operand is never evaluated.
func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or_ short-circuits the opposite way: a truthy left operand skips the
// right operand entirely.
func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func variable(c *Compiler, canAssign bool) {
	namedVariable(c, c.previous, canAssign)
}

func namedVariable(c *Compiler, name token.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	var arg byte

	slot, result := c.locals.resolve(name.Lexeme)
	if result != resolveNotFound {
		if result == resolveUninitialized {
			c.errorAtPrevious("Can't read local variable in its own initializer.")
		}
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
		arg = byte(slot)
	} else {
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
		arg = c.identifierConstant(name.Lexeme)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.expression()
		c.emitOpByte(setOp, arg)
	} else {
		c.emitOpByte(getOp, arg)
	}
}
