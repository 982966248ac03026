// Package compiler implements the single-pass Pratt parser/compiler: it
// consumes tokens from a scanner and emits bytecode directly into a
// chunk.Chunk, with no intermediate syntax tree. Parsing decisions are
// final on the first pass; every construct that needs to jump forward
// (if/while/for, short-circuit and/or) is encoded with the
// emit-placeholder-then-patch discipline implemented in package chunk.
package compiler

import (
	"fmt"
	"strconv"

	"lumen/chunk"
	"lumen/scanner"
	"lumen/token"
	"lumen/value"
)

// Compiler drives a single compilation of one source string into one
// chunk.Chunk. It is not reentrant and not reusable across sources.
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *chunk.Chunk
	locals  *localTable

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    []error
}

// Compile scans and compiles source in a single pass. It always returns
// a non-nil chunk, but ok is false if any compile error occurred; the
// caller must not hand a failed chunk to the VM (the instructions it
// contains may include unpatched jump placeholders or dangling state).
func Compile(source string) (compiled *chunk.Chunk, ok bool, errs []error) {
	c := &Compiler{
		scanner: scanner.New(source),
		chunk:   chunk.New(),
		locals:  newLocalTable(),
	}

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	return c.chunk, !c.hadError, c.errors
}

// --- token stream plumbing -------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.TokenType != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(tt token.TokenType) bool {
	return c.current.TokenType == tt
}

func (c *Compiler) match(tt token.TokenType) bool {
	if !c.check(tt) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(tt token.TokenType, message string) {
	if c.current.TokenType == tt {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting and recovery ------------------------------------------

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) errorAtPrevious(message string) { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	hint := ""
	switch tok.TokenType {
	case token.EOF:
		hint = "at end"
	case token.ERROR:
		hint = ""
	default:
		hint = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	c.errors = append(c.errors, CompileError{Line: tok.Line, Hint: hint, Message: message})
}

// synchronize advances tokens until a likely statement boundary so that
// parsing can resume after an error, letting one run report more than
// one diagnostic.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.TokenType != token.EOF {
		if c.previous.TokenType == token.SEMICOLON {
			return
		}
		switch c.current.TokenType {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission helpers (thin wrappers over chunk, tagging the current line) -

func (c *Compiler) emitOp(op chunk.OpCode)              { c.chunk.WriteOp(op, c.previous.Line) }
func (c *Compiler) emitOpByte(op chunk.OpCode, b byte)  { c.chunk.WriteOpByte(op, b, c.previous.Line) }
func (c *Compiler) emitReturn()                         { c.chunk.EmitReturn(c.previous.Line) }

func (c *Compiler) emitConstant(v value.Value) {
	if err := c.chunk.EmitConstant(v, c.previous.Line); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) emitJump(op chunk.OpCode) int {
	return c.chunk.EmitJump(op, c.previous.Line)
}

func (c *Compiler) patchJump(offset int) {
	if err := c.chunk.PatchJump(offset); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) emitLoop(loopStart int) {
	if err := c.chunk.EmitLoop(loopStart, c.previous.Line); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) identifierConstant(name string) byte {
	idx, err := c.chunk.AddConstant(value.String(name))
	if err != nil {
		c.errorAtPrevious(err.Error())
		return 0
	}
	return idx
}

// --- declarations and statements --------------------------------------------

func (c *Compiler) declaration() {
	switch {
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

// parseVariable consumes an identifier and either declares it as a local
// (returning isGlobal=false) or interns it into the constant pool as a
// global name (returning its pool index).
func (c *Compiler) parseVariable(errMessage string) (global byte, isGlobal bool) {
	c.consume(token.IDENTIFIER, errMessage)
	name := c.previous.Lexeme

	if c.locals.scopeDepth > 0 {
		if err := c.locals.declare(name); err != nil {
			c.errorAtPrevious(err.Error())
		}
		return 0, false
	}
	return c.identifierConstant(name), true
}

func (c *Compiler) defineVariable(global byte, isGlobal bool) {
	if isGlobal {
		c.emitOpByte(chunk.OpDefineGlobal, global)
		return
	}
	c.locals.markInitialized()
}

func (c *Compiler) varDeclaration() {
	global, isGlobal := c.parseVariable("Expect variable name.")

	if c.match(token.ASSIGN) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global, isGlobal)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.LCUR):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) block() {
	for !c.check(token.RCUR) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RCUR, "Expect '}' after block.")
}

func (c *Compiler) beginScope() { c.locals.beginScope() }

func (c *Compiler) endScope() {
	popped := c.locals.endScope()
	if popped > 0 {
		c.emitOpByte(chunk.OpPopN, byte(popped))
	}
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPA, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)

	c.consume(token.LPA, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPA, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1

	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")

		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.check(token.RPA) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.chunk.Code)

		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RPA, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RPA, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}
	c.endScope()
}

// parseNumberLiteral parses lexeme as a float64. The scanner guarantees
// it matches [0-9]+(\.[0-9]+)?, so the parse cannot fail.
func parseNumberLiteral(lexeme string) float64 {
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}
