package engine

import (
	"fmt"
)

// UnknownOperationError means a function action named an operation that is
// not registered in the cortex. The set of operations is fixed at process
// start, so this always marks a corrupt or unsupported action list.
type UnknownOperationError struct {
	Name  string
	Index int
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown function: %s in action %d", e.Name, e.Index)
}

// ExpressionError wraps a compiler diagnostic for one of the parameter
// expressions of the record at Index. Param is the zero based parameter slot.
type ExpressionError struct {
	Index int
	Param int
	Err   error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("failed to compile argument %d in action %d: %s", e.Param, e.Index, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// CodeError wraps a compiler diagnostic for the code body of the record at
// Index.
type CodeError struct {
	Index int
	Err   error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("failed to compile code body in action %d: %s", e.Index, e.Err)
}

func (e *CodeError) Unwrap() error {
	return e.Err
}
