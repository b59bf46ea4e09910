package engine

import (
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
)

// Consts which match those used in the original drag-n-drop format. These are
// the on-disk contract of an action list and must not be renumbered.
const (
	KIND_NORMAL      = 0
	KIND_BEGIN_GROUP = 1
	KIND_END_GROUP   = 2
	KIND_ELSE        = 3
	KIND_EXIT        = 4
	KIND_REPEAT      = 5
	KIND_VARIABLE    = 6
	KIND_CODE        = 7
)

const (
	EXECUTION_NONE     = 0
	EXECUTION_FUNCTION = 1
	EXECUTION_CODE     = 2
)

// Target ids below zero carry special meaning in the format.
const (
	TARGET_SELF  = -1
	TARGET_OTHER = -2
)

// Record is a single flat entry of an action list as delivered by an asset
// loader. Nesting is not explicit in here, it is encoded through the Kind
// markers and reconstructed by the Builder.
type Record struct {
	Kind               int
	ExecutionType      int
	IsCondition        bool
	InvertCondition    bool
	AppliesToSomething bool
	AppliesTo          int
	IsRelative         bool
	FunctionName       string
	Code               string
	Parameters         []string
	// ParameterCount tells how many leading Parameters slots are semantically
	// valid. Later slots may contain recycled garbage and must be ignored.
	ParameterCount int
}

// Action is one executable node of a built tree.
type Action struct {
	// Index is the original position of the record in its list, starting at 0
	Index int

	// Target may be self (-1) or other (-2) or an object or instance id.
	// A nil value means AppliesToSomething was false.
	Target *int

	// Arguments are the compiled expressions passed to the function or code
	// body. Always empty for inline code actions.
	Arguments []interfaces.Expression

	// Relative mirrors the "relative" checkbox. It is always passed into the
	// execution context, though most operations ignore it.
	Relative bool

	// InvertCondition means the bool result gets inverted. Only meaningful if
	// this action is a question.
	InvertCondition bool

	// Body is what gets executed for this action
	Body Body

	// IfElse holds the 'if' and 'else' actions under this one. Nil unless
	// this action is a question.
	IfElse *Branches
}

// Branches are the two subtrees attached to a question action.
type Branches struct {
	Then []Action
	Else []Action
}

// Body is the executable payload of an action. Exactly one of the two fields
// is set: Function for a resolved built-in operation, Code for a compiled
// statement sequence.
type Body struct {
	Function *Operation
	Code     []interfaces.Instruction
}

// IsFunction tells whether this body dispatches to a built-in operation.
func (b Body) IsFunction() bool {
	return b.Function != nil
}

// Tree is the ordered forest of actions built from one action list. It is
// immutable once Build returned it and safe for concurrent readers.
type Tree struct {
	actions []Action
}

// Actions returns the top level actions in original record order. Callers
// must treat the returned slice as read-only.
func (t *Tree) Actions() []Action {
	return t.actions
}

// Len returns the amount of top level actions.
func (t *Tree) Len() int {
	return len(t.actions)
}

// Walk traverses the tree depth first in record order, calling fn with the
// nesting depth for every action including branch members.
func (t *Tree) Walk(fn func(depth int, action *Action)) {
	rWalkActions(t.actions, 0, fn)
}

func rWalkActions(actions []Action, depth int, fn func(depth int, action *Action)) {
	for i := range actions {
		fn(depth, &actions[i])
		if actions[i].IfElse != nil {
			rWalkActions(actions[i].IfElse.Then, depth+1, fn)
			rWalkActions(actions[i].IfElse.Else, depth+1, fn)
		}
	}
}

// ExecutionContext carries the per-invocation state an operation or code body
// gets executed against. The interpreter fills it from the owning action.
type ExecutionContext struct {
	Target   *int
	Relative bool
}
