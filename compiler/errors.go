package compiler

import "fmt"

// CompileError is a single diagnostic produced while compiling. Hint
// mirrors the teacher's "at end" / "at '<lexeme>'" hint convention; Hint
// is empty for scanner errors that already carry a self-contained
// message.
type CompileError struct {
	Line    int
	Hint    string
	Message string
}

func (e CompileError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("💥 [line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("💥 [line %d] Error %s: %s", e.Line, e.Hint, e.Message)
}
