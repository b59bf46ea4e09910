package luacompiler

import (
	"strings"
	"sync"

	"github.com/Shopify/go-lua"
	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
)

// Compiler implements the compiler collaborator on top of an embedded Lua
// state. Sources are compiled as Lua chunks at build time, so malformed
// action parameters and code bodies fail the tree build instead of the
// running game. The chunk source is kept on the produced values, the
// interpreter reloads it at execution time.
type Compiler struct {
	state *lua.State
	mutex sync.Mutex
	log   *archivist.Archivist
}

// Expression is a syntax-checked expression chunk.
type Expression struct {
	Source string
}

// Instruction is a syntax-checked statement chunk.
type Instruction struct {
	Source string
}

func New(logger *archivist.Archivist) *Compiler {
	state := lua.NewState()
	lua.OpenLibraries(state)
	return &Compiler{
		state: state,
		log:   logger,
	}
}

// CompileExpression checks a single expression. An empty source is valid and
// yields an expression evaluating to nothing.
func (c *Compiler) CompileExpression(source string) (interfaces.Expression, error) {
	// an expression becomes a chunk by returning its value
	if err := c.checkChunk("return " + source); err != nil {
		c.log.Debug(archivist.DEBUG_LEVEL_DETAIL, "luacompiler EXPR reject source=", source, " err=", err.Error())
		return nil, err
	}
	return Expression{Source: source}, nil
}

// Compile checks a statement sequence. Blank source compiles to an empty
// instruction list.
func (c *Compiler) Compile(source string) ([]interfaces.Instruction, error) {
	if "" == strings.TrimSpace(source) {
		return nil, nil
	}
	if err := c.checkChunk(source); err != nil {
		c.log.Debug(archivist.DEBUG_LEVEL_DETAIL, "luacompiler CODE reject err=", err.Error())
		return nil, err
	}
	return []interfaces.Instruction{Instruction{Source: source}}, nil
}

// checkChunk loads the chunk on the shared state to validate it and drops
// whatever the load pushed (the function on success, the message on failure).
// The lua state is not safe for concurrent use, hence the mutex.
func (c *Compiler) checkChunk(chunk string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := lua.LoadString(c.state, chunk)
	c.state.Pop(1)
	return err
}
