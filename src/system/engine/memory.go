package engine

import (
	"strconv"
	"strings"
	"sync"

	"github.com/voodooEntity/gamebrain/src/system/archivist"
	"github.com/voodooEntity/gits"
	"github.com/voodooEntity/gits/src/query"
	"github.com/voodooEntity/gits/src/transport"
)

// Memory owns the loaded asset catalog. Objects, their events and per-event
// build results live as entities in a dedicated gits instance so they stay
// queryable, while the built trees themselves are held in a plain map since
// their bodies carry function handles.
type Memory struct {
	Gits    *gits.Gits
	log     *archivist.Archivist
	mutex   sync.RWMutex
	pending map[string][]Record
	order   []string
	trees   map[string]*Tree
}

// NewMemory creates a memory with a fresh named gits instance.
func NewMemory(ident string, logger *archivist.Archivist) *Memory {
	return &Memory{
		Gits:    gits.NewInstance(ident),
		log:     logger,
		pending: make(map[string][]Record),
		trees:   make(map[string]*Tree),
	}
}

func eventKey(object string, event string) string {
	return object + "|" + event
}

// AddEventRecords stages the raw action list of one object event for building
// and maps the Object/Event entities into the catalog. Staging the same
// object event again replaces the previous record list.
func (m *Memory) AddEventRecords(object string, event string, records []Record) {
	key := eventKey(object, event)

	m.mutex.Lock()
	if _, ok := m.pending[key]; !ok {
		m.order = append(m.order, key)
	}
	m.pending[key] = records
	m.mutex.Unlock()

	m.log.Debug(archivist.DEBUG_LEVEL_TRACE, "memory STAGE object=", object, " event=", event, " records=", len(records))
	m.catalogEvent(object, event, len(records))
}

// catalogEvent makes sure the catalog holds the Object entity once and an
// Event entity linked under it.
func (m *Memory) catalogEvent(object string, event string, recordAmount int) {
	eventEntity := transport.TransportEntity{
		ID:      0,
		Type:    "Event",
		Value:   event,
		Context: "System",
		Properties: map[string]string{
			"Object":  object,
			"Records": strconv.Itoa(recordAmount),
		},
	}

	qry := query.New().Read("Object").Match("Value", "==", object)
	result := m.Gits.Query().Execute(qry)
	if 0 == result.Amount {
		// unknown object, map it together with its first event
		m.Gits.MapData(transport.TransportEntity{
			ID:         0,
			Type:       "Object",
			Value:      object,
			Context:    "System",
			Properties: map[string]string{},
			ChildRelations: []transport.TransportRelation{
				{
					Target: eventEntity,
				},
			},
		})
		return
	}

	// known object, map the event on its own and link it underneath
	m.Gits.MapData(eventEntity)
	linkQry := query.New().Link("Object").Match("Value", "==", object).To(
		query.New().Find("Event").Match("Value", "==", event).Match("Properties.Object", "==", object),
	)
	m.Gits.Query().Execute(linkQry)
}

// BuildAll builds every staged record list in staging order. The first
// failing list aborts the run, its tree is never published and the error
// travels up to the caller which decides bundle policy. Each finished list
// gets a BuildResult entity mapped into the catalog.
func (m *Memory) BuildAll(builder *Builder) error {
	m.mutex.RLock()
	keys := append([]string(nil), m.order...)
	m.mutex.RUnlock()

	for _, key := range keys {
		m.mutex.RLock()
		records := m.pending[key]
		m.mutex.RUnlock()

		object, event := splitEventKey(key)
		tree, err := builder.Build(records)
		if err != nil {
			m.log.Error("Action tree build failed", object, event, err.Error())
			m.mapBuildResult(object, event, "Failed", err.Error(), 0)
			return err
		}

		m.mutex.Lock()
		m.trees[key] = tree
		m.mutex.Unlock()

		m.log.Debug(archivist.DEBUG_LEVEL_TRACE, "memory BUILT object=", object, " event=", event, " toplevel=", tree.Len())
		m.mapBuildResult(object, event, "Built", "", tree.Len())
	}
	return nil
}

func (m *Memory) mapBuildResult(object string, event string, state string, buildError string, actionAmount int) {
	properties := map[string]string{
		"Object": object,
		"Event":  event,
		"State":  state,
	}
	if "" != buildError {
		properties["Error"] = buildError
	} else {
		properties["Actions"] = strconv.Itoa(actionAmount)
	}
	m.Gits.MapData(transport.TransportEntity{
		ID:         0,
		Type:       "BuildResult",
		Value:      eventKey(object, event),
		Context:    "System",
		Properties: properties,
	})
}

// GetTree returns the built tree of an object event, if it was built.
func (m *Memory) GetTree(object string, event string) (*Tree, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	tree, ok := m.trees[eventKey(object, event)]
	return tree, ok
}

// PendingCount returns the amount of staged record lists.
func (m *Memory) PendingCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.pending)
}

// ResultCount returns the amount of BuildResult entities in the catalog.
func (m *Memory) ResultCount() int {
	qry := query.New().Read("BuildResult")
	result := m.Gits.Query().Execute(qry)
	return result.Amount
}

// FailedCount returns the amount of failed BuildResult entities.
func (m *Memory) FailedCount() int {
	qry := query.New().Read("BuildResult").Match("Properties.State", "==", "Failed")
	result := m.Gits.Query().Execute(qry)
	return result.Amount
}

func splitEventKey(key string) (string, string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}
