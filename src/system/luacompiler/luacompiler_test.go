package luacompiler

import (
	"log"
	"os"
	"testing"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
)

func setupFreshCompiler() *Compiler {
	logger := archivist.New(&archivist.Config{Logger: log.New(os.Stdout, "", 0)})
	return New(logger)
}

// Test: valid expressions compile and keep their source
func Test_LuaCompiler_ExpressionAccept(t *testing.T) {
	compiler := setupFreshCompiler()

	expr, err := compiler.CompileExpression("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	typed, ok := expr.(Expression)
	if !ok {
		t.Fatalf("expected Expression, got %T", expr)
	}
	if typed.Source != "1 + 2 * 3" {
		t.Fatalf("expected source kept, got %s", typed.Source)
	}
}

// Test: the empty expression is valid
func Test_LuaCompiler_ExpressionEmpty(t *testing.T) {
	compiler := setupFreshCompiler()

	if _, err := compiler.CompileExpression(""); err != nil {
		t.Fatalf("unexpected compile error for empty expression: %v", err)
	}
}

// Test: malformed expressions get rejected with a diagnostic
func Test_LuaCompiler_ExpressionReject(t *testing.T) {
	compiler := setupFreshCompiler()

	if _, err := compiler.CompileExpression("1 +++"); err == nil {
		t.Fatalf("expected compile error")
	}
}

// Test: statement sequences compile to a single chunk instruction
func Test_LuaCompiler_CodeAccept(t *testing.T) {
	compiler := setupFreshCompiler()

	instructions, err := compiler.Compile("speed = 4\nscore = score + 1")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(instructions) != 1 {
		t.Fatalf("expected 1 instruction chunk, got %d", len(instructions))
	}
}

// Test: blank source compiles to an empty instruction list
func Test_LuaCompiler_CodeBlank(t *testing.T) {
	compiler := setupFreshCompiler()

	instructions, err := compiler.Compile("   \n\t")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(instructions) != 0 {
		t.Fatalf("expected no instructions, got %d", len(instructions))
	}
}

// Test: malformed statements get rejected
func Test_LuaCompiler_CodeReject(t *testing.T) {
	compiler := setupFreshCompiler()

	if _, err := compiler.Compile("if then end"); err == nil {
		t.Fatalf("expected compile error")
	}
}

// Test: repeated compiles leave the state balanced
func Test_LuaCompiler_RepeatedUse(t *testing.T) {
	compiler := setupFreshCompiler()

	for i := 0; i < 50; i++ {
		if _, err := compiler.CompileExpression("i + 1"); err != nil {
			t.Fatalf("unexpected compile error on round %d: %v", i, err)
		}
		if _, err := compiler.Compile("x = 1"); err != nil {
			t.Fatalf("unexpected compile error on round %d: %v", i, err)
		}
		if _, err := compiler.CompileExpression("(((("); err == nil {
			t.Fatalf("expected compile error on round %d", i)
		}
	}
}
