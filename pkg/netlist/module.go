package netlist

import (
	"sync/atomic"

	"github.com/vic/netlist/pkg/ids"
)

// connRef is a node's per-port connection state: which wire (if any) the
// port is attached to, and the slot index of this port's entry in that
// wire's cross-reference list. wireIndex == xrefDisconnected means the
// port carries no connection right now.
type connRef struct {
	wireIndex uint32
	xrefIndex uint32
}

func disconnectedRef() connRef {
	return connRef{wireIndex: xrefDisconnected}
}

func (c connRef) connected() bool {
	return c.wireIndex != xrefDisconnected
}

// nodeSlot is the payload of one node-pool entry: either the module's own
// interface (index 0, down == the owning module itself) or an instance
// (down == the instantiated child module).
type nodeSlot struct {
	down  *moduleImpl
	refs  []connRef
	attrs AttributeStore
}

// wireSlot is the payload of one wire-pool entry: its cross-reference
// list of connected ports plus its own attributes.
type wireSlot struct {
	refs  xrefList
	attrs AttributeStore
}

// moduleImpl is the shared, reference-counted module data. Module is the
// value-typed handle callers hold; several handles in several parent
// modules' instance nodes may reference the same moduleImpl.
type moduleImpl struct {
	id     ids.ID
	leaf   bool
	refcnt int32 // atomic

	nodes ObjectPool[nodeSlot]
	wires ObjectPool[wireSlot]
	attrs AttributeStore

	// Module-interface port bookkeeping. portValid/portFreeNext run in
	// lockstep with node 0's refs slice (spec.md §9's "_firstFreePort"
	// note): a destroyed module port is marked invalid here and chained
	// into firstFreePort, rather than reusing node 0's own connRef slot
	// as the freelist link — the "preferable" alternative layout the
	// spec explicitly permits.
	portValid     []bool
	portFreeNext  []uint32
	firstFreePort uint32
}

// Module is a lightweight value handle over a shared, reference-counted
// module. Two Module values referring to the same definition compare equal.
type Module struct {
	impl *moduleImpl
}

// ID returns the module's name.
func (m Module) ID() ids.ID { return m.impl.id }

// IsLeaf reports whether the module is a leaf (no children, no wires).
func (m Module) IsLeaf() bool { return m.impl.leaf }

// RefCount returns the current reference count.
func (m Module) RefCount() int32 { return atomic.LoadInt32(&m.impl.refcnt) }

// Attrs returns the module's own attribute store.
func (m Module) Attrs() *AttributeStore { return &m.impl.attrs }

// Valid reports whether the handle still refers to a live module, i.e.
// whether the zero Module was never assigned.
func (m Module) Valid() bool { return m.impl != nil }

func newModuleImpl(id ids.ID, leaf bool) *moduleImpl {
	impl := &moduleImpl{
		id:            id,
		leaf:          leaf,
		refcnt:        1,
		nodes:         newObjectPool[nodeSlot](),
		wires:         newObjectPool[wireSlot](),
		firstFreePort: InvalidIndex,
	}
	// Invariant 1: node 0 always exists and is the module's own
	// interface; its instantiation field points back to the module.
	idx := impl.nodes.Allocate()
	impl.nodes.Get(idx).down = impl
	return impl
}

// CreateHier creates a new hierarchical module with refcount 1.
func CreateHier(id ids.ID) Module {
	return Module{impl: newModuleImpl(id, false)}
}

// CreateLeaf creates a new leaf module with refcount 1. Leaf modules may
// still declare ports (their instances still need something to wire up to)
// but cannot own wires or instances of their own.
func CreateLeaf(id ids.ID) Module {
	return Module{impl: newModuleImpl(id, true)}
}

// Retain increments the module's reference count and returns the same
// handle, for callers that want to stash an extra owning reference.
func (m Module) Retain() Module {
	atomic.AddInt32(&m.impl.refcnt, 1)
	return m
}

// Release decrements the module's reference count. When it reaches zero
// the module is torn down: every instance it owns releases its own
// reference to its down module (invariant 6 — a module is destroyed iff
// its refcount drops to zero, and it persists while any instance
// references it).
func (m Module) Release() {
	if atomic.AddInt32(&m.impl.refcnt, -1) != 0 {
		return
	}
	impl := m.impl
	for _, idx := range impl.nodes.All() {
		if idx == 0 {
			continue // node 0's "down" is impl itself, not a real reference
		}
		slot := impl.nodes.Get(idx)
		if slot.down != nil && slot.down != impl {
			Module{impl: slot.down}.Release()
		}
	}
}

// CreatePort allocates a new port on the module's own interface (node 0),
// reusing a freed port slot if one is available.
func (m Module) CreatePort() ModulePort {
	impl := m.impl
	var idx uint32
	if impl.firstFreePort != InvalidIndex {
		idx = impl.firstFreePort
		impl.firstFreePort = impl.portFreeNext[idx]
		impl.portValid[idx] = true
	} else {
		idx = uint32(len(impl.portValid))
		impl.portValid = append(impl.portValid, true)
		impl.portFreeNext = append(impl.portFreeNext, InvalidIndex)
	}
	node0 := impl.nodes.Get(0)
	for uint32(len(node0.refs)) <= idx {
		node0.refs = append(node0.refs, disconnectedRef())
	}
	node0.refs[idx] = disconnectedRef()
	return ModulePort{Port{mod: impl, nodeIndex: 0, portIndex: idx}}
}

// PortCount returns the number of port slots ever allocated on the
// module's interface, including destroyed (now-invalid) ones. Iterate
// Node(0).Ports() to see only the live ones.
func (m Module) PortCount() int { return len(m.impl.portValid) }

func (impl *moduleImpl) portIsValid(portIndex uint32) bool {
	return portIndex < uint32(len(impl.portValid)) && impl.portValid[portIndex]
}

// CreateWire allocates a new wire with an empty cross-reference list.
// Contract: the module must be hierarchical — a leaf module owns no wires.
func (m Module) CreateWire() Wire {
	impl := m.impl
	if impl.leaf {
		violate("CreateWire", "module %v is a leaf; leaves own no wires", impl.id)
	}
	idx := impl.wires.Allocate()
	return Wire{mod: impl, index: idx}
}

// CreateInstance allocates a new instance node referencing child, bumping
// child's reference count. Contract: the module must be hierarchical.
func (m Module) CreateInstance(child Module) Instance {
	impl := m.impl
	if impl.leaf {
		violate("CreateInstance", "module %v is a leaf; leaves own no instances", impl.id)
	}
	idx := impl.nodes.Allocate()
	impl.nodes.Get(idx).down = child.impl
	child.Retain()
	return Instance{Node{mod: impl, index: idx}}
}

// Node returns a handle to the node at the given index — either the
// module's own interface (index 0) or one of its instances.
func (m Module) Node(index uint32) Node { return Node{mod: m.impl, index: index} }

// Wire returns a handle to the wire at the given index.
func (m Module) Wire(index uint32) Wire { return Wire{mod: m.impl, index: index} }

// Wires returns a lazy sequence over the module's live wires.
func (m Module) Wires() Seq[Wire] {
	impl := m.impl
	return newIndexSeq(impl.wires.All(), func(i uint32) Wire {
		return Wire{mod: impl, index: i}
	})
}

// Nodes returns a lazy sequence over every live node (interface + instances).
func (m Module) Nodes() Seq[Node] {
	impl := m.impl
	return newIndexSeq(impl.nodes.All(), func(i uint32) Node {
		return Node{mod: impl, index: i}
	})
}

// Instances returns a lazy sequence over the module's live instance nodes
// (nodes whose index is not 0).
func (m Module) Instances() Seq[Instance] {
	impl := m.impl
	all := impl.nodes.All()
	filtered := make([]uint32, 0, len(all))
	for _, i := range all {
		if i != 0 {
			filtered = append(filtered, i)
		}
	}
	return newIndexSeq(filtered, func(i uint32) Instance {
		return Instance{Node{mod: impl, index: i}}
	})
}

// Interface returns the module's own interface node (node 0).
func (m Module) Interface() Node { return Node{mod: m.impl, index: 0} }
