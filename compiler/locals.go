package compiler

// maxLocals bounds the local-slot array at 256: OP_GET_LOCAL/OP_SET_LOCAL
// operands are a single byte.
const maxLocals = 256

// uninitializedDepth marks a local that has been declared but whose
// initializer has not yet been compiled. Reading such a local is a
// compile error (it would read the still-uninitialized slot, e.g. in
// `var x = x;`).
const uninitializedDepth = -1

// local is a block-scoped variable tracked purely by its position in the
// flat locals slice: the n-th local occupies VM stack slot n (relative
// to the frame base, or 0 at top level).
type local struct {
	name  string
	depth int
}

// localTable tracks lexical depth and slot assignment for block-scoped
// variables. It mirrors the VM's operand stack discipline exactly: slot
// index equals position in this table.
type localTable struct {
	locals     []local
	scopeDepth int
}

func newLocalTable() *localTable {
	return &localTable{}
}

func (lt *localTable) beginScope() {
	lt.scopeDepth++
}

// endScope decrements the scope depth and returns the count of locals
// whose depth exceeds the new depth, so the caller can emit
// OP_POP_N(count) to discard their stack slots.
func (lt *localTable) endScope() int {
	lt.scopeDepth--
	count := 0
	for len(lt.locals) > 0 && lt.locals[len(lt.locals)-1].depth > lt.scopeDepth {
		lt.locals = lt.locals[:len(lt.locals)-1]
		count++
	}
	return count
}

// declare registers name as a new local at the current scope depth. At
// module scope (depth 0) it is a no-op: the variable becomes a global
// instead. It returns an error if another local in the same scope
// already has this name, or if the local table is full.
func (lt *localTable) declare(name string) error {
	if lt.scopeDepth == 0 {
		return nil
	}
	for i := len(lt.locals) - 1; i >= 0; i-- {
		if lt.locals[i].depth < lt.scopeDepth {
			break
		}
		if lt.locals[i].name == name {
			return &CompileError{Message: "Already a variable with this name in this scope."}
		}
	}
	if len(lt.locals) >= maxLocals {
		return &CompileError{Message: "Too many local variables in function."}
	}
	lt.locals = append(lt.locals, local{name: name, depth: uninitializedDepth})
	return nil
}

// markInitialized sets the topmost local's depth to the current scope
// depth. Called after the initializer expression has been compiled, so
// that a self-reference inside the initializer is caught by resolve.
func (lt *localTable) markInitialized() {
	if lt.scopeDepth == 0 || len(lt.locals) == 0 {
		return
	}
	lt.locals[len(lt.locals)-1].depth = lt.scopeDepth
}

// resolveResult distinguishes "not found" from "found but uninitialized"
// from "found and usable".
type resolveResult int

const (
	resolveNotFound resolveResult = iota
	resolveUninitialized
	resolveFound
)

// resolve searches from the top of the locals slice (most recently
// declared first, so shadowing picks the innermost declaration) for name
// and reports its slot index.
func (lt *localTable) resolve(name string) (slot int, result resolveResult) {
	for i := len(lt.locals) - 1; i >= 0; i-- {
		if lt.locals[i].name == name {
			if lt.locals[i].depth == uninitializedDepth {
				return i, resolveUninitialized
			}
			return i, resolveFound
		}
	}
	return -1, resolveNotFound
}
