package engine

import (
	"errors"
	"testing"

	"github.com/voodooEntity/gamebrain/src/system/luacompiler"
)

// Test: a full build against the real lua backed compiler
func Test_TreeBuild_WithLuaCompiler(t *testing.T) {
	logger := newTestArchivist()
	cortex := NewCortex(nil, logger)
	registerNoopOperation(cortex, "act_set_score")
	builder := NewBuilder(cortex, luacompiler.New(logger), logger)

	records := []Record{
		functionRecord("act_set_score", "score + 1"),
		{
			Kind:           KIND_CODE,
			ExecutionType:  EXECUTION_CODE,
			Parameters:     []string{"speed = 4"},
			ParameterCount: 1,
		},
	}
	tree, err := builder.Build(records)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if tree.Len() != 2 {
		t.Fatalf("expected 2 actions, got %d", tree.Len())
	}
	if len(tree.Actions()[0].Arguments) != 1 {
		t.Fatalf("expected 1 compiled argument, got %d", len(tree.Actions()[0].Arguments))
	}
	if len(tree.Actions()[1].Body.Code) != 1 {
		t.Fatalf("expected 1 compiled instruction, got %d", len(tree.Actions()[1].Body.Code))
	}
}

// Test: lua syntax errors surface as positional build errors
func Test_TreeBuild_WithLuaCompilerRejects(t *testing.T) {
	logger := newTestArchivist()
	cortex := NewCortex(nil, logger)
	registerNoopOperation(cortex, "act_set_score")
	builder := NewBuilder(cortex, luacompiler.New(logger), logger)

	records := []Record{
		functionRecord("act_set_score", "1 +++"),
	}
	tree, err := builder.Build(records)
	if err == nil {
		t.Fatalf("expected build error for invalid expression")
	}
	if tree != nil {
		t.Fatalf("no partial tree may be returned")
	}
	var exprErr *ExpressionError
	if !errors.As(err, &exprErr) {
		t.Fatalf("expected ExpressionError, got %T: %v", err, err)
	}
	if exprErr.Index != 0 || exprErr.Param != 0 {
		t.Fatalf("expected failure at record 0 param 0, got %+v", exprErr)
	}
}
