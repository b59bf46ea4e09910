package engine

import (
	"errors"
	"strconv"
	"sync"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
	"github.com/voodooEntity/gits/src/transport"
)

// OperationFunc is the callable form of a built-in operation. It receives the
// per-invocation execution context and the evaluated argument values.
type OperationFunc func(ctx *ExecutionContext, args []interfaces.Value) interfaces.Value

// Operation is the resolved handle of a registered built-in. Index is the
// stable registration order position, so a tree stays inspectable and
// serializable without raw function addresses.
type Operation struct {
	Index int
	Name  string
	Call  OperationFunc
}

// Cortex is the registry of built-in operations. It is populated once at
// process start and read-only afterwards, lookups are safe for concurrent
// use across parallel tree builds.
type Cortex struct {
	memory     *Memory
	log        *archivist.Archivist
	mutex      sync.RWMutex
	lookup     map[string]*Operation
	operations []*Operation
}

// NewCortex creates a fresh operation registry. The memory instance may be
// nil, in that case registrations are not mirrored into the catalog.
func NewCortex(memoryInstance *Memory, logger *archivist.Archivist) *Cortex {
	return &Cortex{
		memory: memoryInstance,
		log:    logger,
		lookup: make(map[string]*Operation),
	}
}

// RegisterOperation adds a built-in under its name. Registering the same name
// twice replaces the callable but keeps the original index so already built
// trees stay valid.
func (c *Cortex) RegisterOperation(name string, fn OperationFunc) *Operation {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, ok := c.lookup[name]; ok {
		c.log.Info("Replacing already registered operation", name)
		existing.Call = fn
		return existing
	}

	operation := &Operation{
		Index: len(c.operations),
		Name:  name,
		Call:  fn,
	}
	c.operations = append(c.operations, operation)
	c.lookup[name] = operation
	c.log.Debug(archivist.DEBUG_LEVEL_TRACE, "cortex REGISTER operation=", name, " index=", operation.Index)

	// mirror the registration into the catalog so the operation set can be
	// queried alongside the loaded assets
	if nil != c.memory {
		c.memory.Gits.MapData(transport.TransportEntity{
			ID:      0,
			Type:    "Operation",
			Value:   name,
			Context: "System",
			Properties: map[string]string{
				"Index": strconv.Itoa(operation.Index),
			},
		})
	}

	return operation
}

// GetOperation resolves a name to its operation handle. A miss returns an
// error, the caller decides how fatal that is.
func (c *Cortex) GetOperation(name string) (*Operation, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if operation, ok := c.lookup[name]; ok {
		return operation, nil
	}
	return nil, errors.New("no operation registered by name " + name)
}

// OperationCount returns the amount of registered operations.
func (c *Cortex) OperationCount() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.operations)
}
