package interfaces

// LoggerInterface is the minimal sink the archivist writes to. The stdlib
// *log.Logger satisfies it out of the box.
type LoggerInterface interface {
	Println(v ...interface{})
}

// Expression is a single compiled expression as produced by a compiler
// implementation. The tree builder stores these opaquely, the interpreter
// that walks the finished tree knows the concrete type.
type Expression interface{}

// Instruction is one step of a compiled statement sequence. Opaque for the
// same reason as Expression.
type Instruction interface{}

// Value is a runtime value passed to and returned from built-in operations.
type Value interface{}

// CompilerInterface is the contract of the expression/statement compiler the
// tree builder delegates to. Implementations must be deterministic and free
// of side effects on shared state; calls may happen from concurrent builds.
type CompilerInterface interface {
	CompileExpression(source string) (Expression, error)
	Compile(source string) ([]Instruction, error)
}
