package recordBuilder

import (
	"github.com/voodooEntity/gamebrain/src/system/engine"
)

// ListBuilder assembles flat action record lists in code. Mainly used by
// tests and examples, an asset loader would produce the same records from
// the serialized format. Appending methods add one record, modifier methods
// adjust the most recently appended record.
type ListBuilder struct {
	records []engine.Record
}

func NewList() *ListBuilder {
	return &ListBuilder{
		records: make([]engine.Record, 0),
	}
}

// Function appends a record calling a registered built-in operation.
func (builder *ListBuilder) Function(name string, params ...string) *ListBuilder {
	builder.records = append(builder.records, engine.Record{
		Kind:           engine.KIND_NORMAL,
		ExecutionType:  engine.EXECUTION_FUNCTION,
		FunctionName:   name,
		Parameters:     params,
		ParameterCount: len(params),
	})
	return builder
}

// Question appends a condition record calling a registered built-in. The
// following record (or group) becomes its then branch when built.
func (builder *ListBuilder) Question(name string, params ...string) *ListBuilder {
	builder.Function(name, params...)
	builder.last().IsCondition = true
	return builder
}

// Code appends an inline code record, parameter 0 holds the entire source.
func (builder *ListBuilder) Code(source string) *ListBuilder {
	builder.records = append(builder.records, engine.Record{
		Kind:           engine.KIND_CODE,
		ExecutionType:  engine.EXECUTION_CODE,
		Parameters:     []string{source},
		ParameterCount: 1,
	})
	return builder
}

// CodeBody appends a normal kind record whose source lives in the Code field,
// the way library actions ship their implementation.
func (builder *ListBuilder) CodeBody(source string, params ...string) *ListBuilder {
	builder.records = append(builder.records, engine.Record{
		Kind:           engine.KIND_NORMAL,
		ExecutionType:  engine.EXECUTION_CODE,
		Code:           source,
		Parameters:     params,
		ParameterCount: len(params),
	})
	return builder
}

// BeginGroup appends the structural group open marker.
func (builder *ListBuilder) BeginGroup() *ListBuilder {
	return builder.marker(engine.KIND_BEGIN_GROUP)
}

// EndGroup appends the structural group close marker.
func (builder *ListBuilder) EndGroup() *ListBuilder {
	return builder.marker(engine.KIND_END_GROUP)
}

// Else appends the else marker separating the two branches of a question.
func (builder *ListBuilder) Else() *ListBuilder {
	return builder.marker(engine.KIND_ELSE)
}

// Exit appends an exit kind marker record.
func (builder *ListBuilder) Exit() *ListBuilder {
	return builder.marker(engine.KIND_EXIT)
}

// Placeholder appends a disabled record that will be dropped by the builder.
func (builder *ListBuilder) Placeholder() *ListBuilder {
	return builder.marker(engine.KIND_NORMAL)
}

func (builder *ListBuilder) marker(kind int) *ListBuilder {
	builder.records = append(builder.records, engine.Record{
		Kind:          kind,
		ExecutionType: engine.EXECUTION_NONE,
	})
	return builder
}

// Target sets the applies-to id on the last record.
func (builder *ListBuilder) Target(id int) *ListBuilder {
	record := builder.last()
	record.AppliesToSomething = true
	record.AppliesTo = id
	return builder
}

// Relative flags the last record as relative.
func (builder *ListBuilder) Relative() *ListBuilder {
	builder.last().IsRelative = true
	return builder
}

// Inverted flags the last record to invert its condition result.
func (builder *ListBuilder) Inverted() *ListBuilder {
	builder.last().InvertCondition = true
	return builder
}

// Condition flags the last record as a question.
func (builder *ListBuilder) Condition() *ListBuilder {
	builder.last().IsCondition = true
	return builder
}

// Kind overrides the kind of the last record.
func (builder *ListBuilder) Kind(kind int) *ListBuilder {
	builder.last().Kind = kind
	return builder
}

// ExecutionType overrides the execution type of the last record.
func (builder *ListBuilder) ExecutionType(executionType int) *ListBuilder {
	builder.last().ExecutionType = executionType
	return builder
}

// Params replaces the parameter slots of the last record and sets the count
// accordingly.
func (builder *ListBuilder) Params(params ...string) *ListBuilder {
	record := builder.last()
	record.Parameters = params
	record.ParameterCount = len(params)
	return builder
}

// ParameterCount overrides how many leading parameter slots count as valid,
// to model recycled trailing slots.
func (builder *ListBuilder) ParameterCount(count int) *ListBuilder {
	builder.last().ParameterCount = count
	return builder
}

// WithCode sets the Code field of the last record.
func (builder *ListBuilder) WithCode(source string) *ListBuilder {
	builder.last().Code = source
	return builder
}

func (builder *ListBuilder) last() *engine.Record {
	if 0 == len(builder.records) {
		// modifier before any record, create an empty one to attach to
		builder.records = append(builder.records, engine.Record{})
	}
	return &builder.records[len(builder.records)-1]
}

// Build returns the assembled record list.
func (builder *ListBuilder) Build() []engine.Record {
	return builder.records
}
