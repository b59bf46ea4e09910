package engine

import (
	"errors"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
)

// - - - - - - - - - - - - - - - - - - - - - - -
// SETUP FRESH BUILDER FOR TREE TESTS
// - provides a builder wired to a stub compiler and a cortex
//   preloaded with a handful of operations
// - the stub compiler records every call and can be told to
//   reject specific sources for failure injection

const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type stubExpression struct {
	Source string
}

type stubInstruction struct {
	Source string
}

type stubCompiler struct {
	rejectExpression string
	rejectCode       string
	expressionCalls  []string
	codeCalls        []string
}

func (c *stubCompiler) CompileExpression(source string) (interfaces.Expression, error) {
	c.expressionCalls = append(c.expressionCalls, source)
	if "" != c.rejectExpression && source == c.rejectExpression {
		return nil, errors.New("stub expression reject: " + source)
	}
	return stubExpression{Source: source}, nil
}

func (c *stubCompiler) Compile(source string) ([]interfaces.Instruction, error) {
	c.codeCalls = append(c.codeCalls, source)
	if "" != c.rejectCode && source == c.rejectCode {
		return nil, errors.New("stub code reject: " + source)
	}
	if "" == source {
		return nil, nil
	}
	return []interfaces.Instruction{stubInstruction{Source: source}}, nil
}

func newTestArchivist() *archivist.Archivist {
	return archivist.New(&archivist.Config{Logger: log.New(os.Stdout, "", 0)})
}

func setupFreshBuilder() (*Builder, *stubCompiler, *Cortex) {
	logger := newTestArchivist()

	cortex := NewCortex(nil, logger)
	registerNoopOperation(cortex, "act_one")
	registerNoopOperation(cortex, "act_two")
	registerNoopOperation(cortex, "act_three")
	registerNoopOperation(cortex, "question_true")

	compiler := &stubCompiler{}
	builder := NewBuilder(cortex, compiler, logger)
	return builder, compiler, cortex
}

func registerNoopOperation(cortex *Cortex, name string) {
	cortex.RegisterOperation(name, func(ctx *ExecutionContext, args []interfaces.Value) interfaces.Value {
		return nil
	})
}

// functionRecord builds a minimal function record for the given operation.
func functionRecord(name string, params ...string) Record {
	return Record{
		Kind:           KIND_NORMAL,
		ExecutionType:  EXECUTION_FUNCTION,
		FunctionName:   name,
		Parameters:     params,
		ParameterCount: len(params),
	}
}

// markerRecord builds a structural record of the given kind that gets dropped
// by the builder.
func markerRecord(kind int) Record {
	return Record{
		Kind:          kind,
		ExecutionType: EXECUTION_NONE,
	}
}

// flattenIndices walks the tree depth first and collects the original record
// indices in traversal order.
func flattenIndices(tree *Tree) []int {
	var indices []int
	tree.Walk(func(depth int, action *Action) {
		indices = append(indices, action.Index)
	})
	return indices
}

func equalIntSlices(alpha []int, beta []int) bool {
	if len(alpha) != len(beta) {
		return false
	}
	for i := range alpha {
		if alpha[i] != beta[i] {
			return false
		}
	}
	return true
}

func GenerateRandomString(length int) string {
	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		randomIndex := rand.Intn(len(charset))
		sb.WriteByte(charset[randomIndex])
	}

	return sb.String()
}
