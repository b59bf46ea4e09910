package observer

import (
	"time"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/engine"
)

// Observer watches an asynchronous asset load. It polls the memory catalog
// until every staged record list got a build result, then fires the callback
// with the memory instance. Intended for load screens and diagnostics while
// BuildAll runs in its own goroutine.
type Observer struct {
	memory       *engine.Memory
	callback     func(memoryInstance *engine.Memory)
	log          *archivist.Archivist
	tickFunction *func(memoryInstance *engine.Memory, logger *archivist.Archivist)
	tickRate     int
}

func New(memoryInstance *engine.Memory, cb func(memoryInstance *engine.Memory), logger *archivist.Archivist) *Observer {
	logger.Info("Creating observer")
	return &Observer{
		memory:       memoryInstance,
		callback:     cb,
		log:          logger,
		tickRate:     25,
		tickFunction: nil,
	}
}

func (o *Observer) RegisterTickFunction(tickFn *func(memoryInstance *engine.Memory, logger *archivist.Archivist)) {
	o.tickFunction = tickFn
}

func (o *Observer) SetTickRate(tickRate int) {
	o.tickRate = tickRate
}

func (o *Observer) tick() {
	(*o.tickFunction)(o.memory, o.log)
}

func (o *Observer) Loop() {
	i := 0
	for !o.FinishedLoading() {
		i++
		o.log.Debug(archivist.DEBUG_LEVEL_MAX, "Observer looping:")
		if nil != o.tickFunction && i == o.tickRate {
			o.tick()
			i = 0
		}

		time.Sleep(100 * time.Millisecond)
	}
	o.callback(o.memory)
	o.log.Info("Asset load finished, observer exiting")
}

// FinishedLoading tells whether the running load can produce no further
// build results. Either every staged record list has one, or a list failed -
// BuildAll aborts after the first failure, so waiting longer is pointless.
func (o *Observer) FinishedLoading() bool {
	pending := o.memory.PendingCount()
	results := o.memory.ResultCount()
	o.log.Debug(archivist.DEBUG_LEVEL_MAX, "Observer: build results", results, "of", pending)
	if 0 == pending {
		return true
	}
	if results >= pending {
		return true
	}
	return o.memory.FailedCount() > 0
}
