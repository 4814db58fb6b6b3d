package netlist

// Node is a lightweight handle over a node-pool slot: either the owning
// module's own interface (index 0) or an instance of another module
// (index != 0).
type Node struct {
	mod   *moduleImpl
	index uint32
}

// Module returns the module that owns this node.
func (n Node) Module() Module { return Module{impl: n.mod} }

// Index returns the node's stable slot index within its owning module.
func (n Node) Index() uint32 { return n.index }

// Valid reports whether the node's slot is currently live.
func (n Node) Valid() bool { return n.mod.nodes.IsValid(n.index) }

// IsInterface reports whether this is the module's own interface node.
func (n Node) IsInterface() bool { return n.index == 0 }

// IsInstance reports whether this node instantiates another module.
func (n Node) IsInstance() bool { return n.index != 0 }

// DownModule returns the module this node instantiates — itself, for the
// interface node (invariant 1), or the instantiated child otherwise.
func (n Node) DownModule() Module {
	return Module{impl: n.mod.nodes.Get(n.index).down}
}

// Attrs returns the node's attribute store.
func (n Node) Attrs() *AttributeStore {
	return &n.mod.nodes.Get(n.index).attrs
}

// PortCount returns the number of port slots mirrored from the down
// module's interface, including destroyed (now-invalid) ones.
func (n Node) PortCount() int {
	return len(n.mod.nodes.Get(n.index).down.portValid)
}

// Port returns a handle to the port at the given index on this node.
func (n Node) Port(index uint32) Port {
	return Port{mod: n.mod, nodeIndex: n.index, portIndex: index}
}

// Ports returns a lazy sequence over the node's ports, filtered by
// validity of the corresponding module-interface slot on the down module
// (spec.md §4.5).
func (n Node) Ports() Seq[Port] {
	down := n.mod.nodes.Get(n.index).down
	count := len(down.portValid)
	valid := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		if down.portValid[i] {
			valid = append(valid, uint32(i))
		}
	}
	mod, index := n.mod, n.index
	return newIndexSeq(valid, func(i uint32) Port {
		return Port{mod: mod, nodeIndex: index, portIndex: i}
	})
}

func (n Node) connRefs() *[]connRef {
	return &n.mod.nodes.Get(n.index).refs
}

func (n Node) connRefAt(portIndex uint32) connRef {
	refs := *n.connRefs()
	if portIndex >= uint32(len(refs)) {
		return disconnectedRef()
	}
	return refs[portIndex]
}

// disconnectAll disconnects every connected port on this node, in port
// order. Used by Instance.Destroy and ModulePort.Destroy.
func (n Node) disconnectAll() {
	refs := *n.connRefs()
	for i, r := range refs {
		if r.connected() {
			Port{mod: n.mod, nodeIndex: n.index, portIndex: uint32(i)}.Disconnect()
		}
	}
}
