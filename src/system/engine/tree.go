package engine

import (
	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
)

// Builder turns flat action record lists into executable trees. It holds no
// mutable state of its own, so a single instance may serve concurrent builds
// as long as the cortex and compiler handed in support concurrent calls.
type Builder struct {
	cortex   *Cortex
	compiler interfaces.CompilerInterface
	log      *archivist.Archivist
}

func NewBuilder(cortexInstance *Cortex, compiler interfaces.CompilerInterface, logger *archivist.Archivist) *Builder {
	return &Builder{
		cortex:   cortexInstance,
		compiler: compiler,
		log:      logger,
	}
}

// cursor is the shared forward traversal state over one record list. All
// recursive group parses advance the same cursor, there is no rewinding.
type cursor struct {
	records []Record
	pos     int
}

// next consumes the next record and returns its original index.
func (c *cursor) next() (int, *Record, bool) {
	if c.pos >= len(c.records) {
		return 0, nil, false
	}
	i := c.pos
	c.pos++
	return i, &c.records[i], true
}

// peek returns the next unconsumed record without advancing.
func (c *cursor) peek() (*Record, bool) {
	if c.pos >= len(c.records) {
		return nil, false
	}
	return &c.records[c.pos], true
}

// Build reconstructs the action tree encoded in the given flat record list.
// The first unknown operation or compile failure aborts the whole build, no
// partial tree is ever returned.
func (b *Builder) Build(records []Record) (*Tree, error) {
	b.log.Debug(archivist.DEBUG_LEVEL_TRACE, "treebuild BUILD begin records=", len(records))
	cur := &cursor{records: records}
	actions, err := b.rBuildList(cur, false)
	if err != nil {
		b.log.Debug(archivist.DEBUG_LEVEL_TRACE, "treebuild BUILD failed err=", err.Error())
		return nil, err
	}
	b.log.Debug(archivist.DEBUG_LEVEL_TRACE, "treebuild BUILD done toplevel=", len(actions))
	return &Tree{actions: actions}, nil
}

// rBuildList parses either the rest of the sequence (singleGroup=false) or
// exactly one structural group (singleGroup=true). In single group mode a
// first record that is not a BEGIN_GROUP marker means only that one record
// gets read, which models an if without braces governing a single statement.
func (b *Builder) rBuildList(cur *cursor, singleGroup bool) ([]Action, error) {
	var output []Action

	// decided once, before the loop: if we parse a single group and the first
	// record does not open one, we stop right after the first record
	stopImmediately := singleGroup
	if rec, ok := cur.peek(); ok && rec.Kind == KIND_BEGIN_GROUP {
		stopImmediately = false
	}

	for {
		i, record, ok := cur.next()
		if !ok {
			break
		}

		// a question record immediately owns the following subtree(s), so we
		// parse them from the cursor before anything else happens. This also
		// runs for records that end up dropped, the subtrees are consumed
		// either way.
		var ifElse *Branches
		if record.IsCondition {
			thenBody, err := b.rBuildList(cur, true)
			if err != nil {
				return nil, err
			}
			var elseBody []Action
			if rec, ok := cur.peek(); ok && rec.Kind == KIND_ELSE {
				// the else marker itself carries no body, skip it and parse
				// the group behind it
				cur.next()
				elseBody, err = b.rBuildList(cur, true)
				if err != nil {
					return nil, err
				}
			}
			ifElse = &Branches{Then: thenBody, Else: elseBody}
		}

		switch record.ExecutionType {
		case EXECUTION_NONE:
			// pure structural placeholder (disabled action, group marker),
			// contributes no node

		case EXECUTION_FUNCTION:
			op, err := b.cortex.GetOperation(record.FunctionName)
			if err != nil {
				return nil, &UnknownOperationError{Name: record.FunctionName, Index: i}
			}
			args, err := b.compileArguments(record, i)
			if err != nil {
				return nil, err
			}
			output = append(output, Action{
				Index:           i,
				Target:          resolveTarget(record),
				Arguments:       args,
				Relative:        record.IsRelative,
				InvertCondition: record.InvertCondition,
				Body:            Body{Function: op},
				IfElse:          ifElse,
			})

		default:
			// every remaining execution type falls through to the code path,
			// the format is known to use such values with code semantics
			if record.Kind == KIND_CODE {
				// KIND_CODE means parameter 0 holds the entire source. The
				// Code field and any further parameters are ignored and the
				// action carries no arguments.
				source := ""
				if 0 < len(record.Parameters) {
					source = record.Parameters[0]
				}
				code, err := b.compiler.Compile(source)
				if err != nil {
					return nil, &CodeError{Index: i, Err: err}
				}
				output = append(output, Action{
					Index:           i,
					Target:          resolveTarget(record),
					Relative:        record.IsRelative,
					InvertCondition: record.InvertCondition,
					Body:            Body{Code: code},
					IfElse:          ifElse,
				})
			} else {
				args, err := b.compileArguments(record, i)
				if err != nil {
					return nil, err
				}
				code, err := b.compiler.Compile(record.Code)
				if err != nil {
					return nil, &CodeError{Index: i, Err: err}
				}
				output = append(output, Action{
					Index:           i,
					Target:          resolveTarget(record),
					Arguments:       args,
					Relative:        record.IsRelative,
					InvertCondition: record.InvertCondition,
					Body:            Body{Code: code},
					IfElse:          ifElse,
				})
			}
		}

		// is it time to stop reading records?
		if (singleGroup && record.Kind == KIND_END_GROUP) || stopImmediately {
			break
		}
	}

	return output, nil
}

// compileArguments compiles the leading ParameterCount parameter strings as
// expressions. Trailing parameter slots beyond the count are recycled
// garbage in the format and never touched.
func (b *Builder) compileArguments(record *Record, index int) ([]interfaces.Expression, error) {
	count := record.ParameterCount
	if count > len(record.Parameters) {
		count = len(record.Parameters)
	}
	if count <= 0 {
		return nil, nil
	}
	args := make([]interfaces.Expression, 0, count)
	for p := 0; p < count; p++ {
		expr, err := b.compiler.CompileExpression(record.Parameters[p])
		if err != nil {
			return nil, &ExpressionError{Index: index, Param: p, Err: err}
		}
		args = append(args, expr)
	}
	return args, nil
}

func resolveTarget(record *Record) *int {
	if !record.AppliesToSomething {
		return nil
	}
	target := record.AppliesTo
	return &target
}
