package netlist

// Wire is a lightweight handle over a wire-pool slot: an in-module net
// carrying a cross-reference list of the ports connected to it.
type Wire struct {
	mod   *moduleImpl
	index uint32
}

// Module returns the module that owns this wire.
func (w Wire) Module() Module { return Module{impl: w.mod} }

// Index returns the wire's stable slot index within its owning module.
func (w Wire) Index() uint32 { return w.index }

// Valid reports whether the wire's slot is currently live.
func (w Wire) Valid() bool { return w.mod.wires.IsValid(w.index) }

// Attrs returns the wire's attribute store.
func (w Wire) Attrs() *AttributeStore {
	return &w.mod.wires.Get(w.index).attrs
}

// Degree returns the number of ports currently connected to this wire.
func (w Wire) Degree() int {
	return w.mod.wires.Get(w.index).refs.len()
}

// Ports returns a lazy sequence over the ports connected to this wire,
// dereferencing each cross-reference entry to produce the peer Port
// (spec.md §4.5).
func (w Wire) Ports() Seq[Port] {
	slot := w.mod.wires.Get(w.index)
	entries := slot.refs.all()
	mod := w.mod
	return newIndexSeq(entries, func(xi uint32) Port {
		e := slot.refs.get(xi)
		return Port{mod: mod, nodeIndex: e.nodeIndex, portIndex: e.portIndex}
	})
}

// Destroy disconnects every port referencing this wire and returns the
// wire's slot to its module's pool.
func (w Wire) Destroy() {
	slot := w.mod.wires.Get(w.index)
	for _, xi := range slot.refs.all() {
		e := slot.refs.get(xi)
		node := w.mod.nodes.Get(e.nodeIndex)
		refs := node.refs
		if e.portIndex < uint32(len(refs)) {
			refs[e.portIndex] = disconnectedRef()
		}
	}
	w.mod.wires.Deallocate(w.index)
}
