package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gamebrain/src/system/engine"
	"github.com/voodooEntity/gamebrain/src/system/interfaces"
	"github.com/voodooEntity/gamebrain/src/system/luacompiler"
	"github.com/voodooEntity/gamebrain/src/system/observer"
	"github.com/voodooEntity/gamebrain/src/system/recordBuilder"
)

func main() {
	logger := log.New(os.Stdout, "", 0)

	arch := archivist.New(&archivist.Config{
		Logger:   logger,
		LogLevel: archivist.LEVEL_INFO,
	})

	// memory owns the catalog, cortex the built-in operations
	memory := engine.NewMemory("ExampleGame", arch)
	cortex := engine.NewCortex(memory, arch)

	// register a couple of built-in operations the action lists can name
	cortex.RegisterOperation("action_move", func(ctx *engine.ExecutionContext, args []interfaces.Value) interfaces.Value {
		return nil
	})
	cortex.RegisterOperation("action_set_score", func(ctx *engine.ExecutionContext, args []interfaces.Value) interfaces.Value {
		return nil
	})
	cortex.RegisterOperation("action_if_score", func(ctx *engine.ExecutionContext, args []interfaces.Value) interfaces.Value {
		return true
	})
	cortex.RegisterOperation("action_kill_object", func(ctx *engine.ExecutionContext, args []interfaces.Value) interfaces.Value {
		return nil
	})

	// assemble two action lists the way an asset loader would deliver them
	createEvent := recordBuilder.NewList().
		Function("action_set_score", "0").
		Code("speed = 4").
		Build()

	stepEvent := recordBuilder.NewList().
		Question("action_if_score", "100").Inverted().
		BeginGroup().
		Function("action_move", "8", "0").Relative().
		Function("action_set_score", "score + 1").
		EndGroup().
		Else().
		Function("action_kill_object").Target(engine.TARGET_OTHER).
		Build()

	memory.AddEventRecords("Player", "Create", createEvent)
	memory.AddEventRecords("Player", "Step", stepEvent)

	// build everything in the background and observe the load
	builder := engine.NewBuilder(cortex, luacompiler.New(arch), arch)
	go func() {
		if err := memory.BuildAll(builder); err != nil {
			arch.Error("Build failed", err.Error())
		}
	}()

	obsi := observer.New(memory, func(mi *engine.Memory) {
		// query the catalog for what got loaded
		qry := mi.Gits.Query().New().Read("BuildResult")
		ret := mi.Gits.Query().Execute(qry)
		for _, entity := range ret.Entities {
			logger.Println("BuildResult:", entity.Value, "state="+entity.Properties["State"])
		}
	}, arch)

	fn := func(mi *engine.Memory, logger *archivist.Archivist) {
		logger.Info("still loading")
	}
	obsi.RegisterTickFunction(&fn)
	obsi.SetTickRate(20)
	obsi.Loop()

	// walk the built step event tree
	if tree, ok := memory.GetTree("Player", "Step"); ok {
		tree.Walk(func(depth int, action *engine.Action) {
			body := "code"
			if action.Body.IsFunction() {
				body = action.Body.Function.Name
			}
			fmt.Println(strings.Repeat("  ", depth) + fmt.Sprintf("#%d %s args=%d", action.Index, body, len(action.Arguments)))
		})
	}
}
