package netlist

// Port identifies one endpoint, (module, nodeIndex, portIndex). When
// nodeIndex == 0 it addresses a module port owned by the module's own
// interface; otherwise it addresses an instance port mirroring a module
// port of the instance's down module at the same portIndex (spec.md §3,
// invariant 2).
type Port struct {
	mod       *moduleImpl
	nodeIndex uint32
	portIndex uint32
}

// Module returns the module the port's node lives in.
func (p Port) Module() Module { return Module{impl: p.mod} }

// Node returns the node this port belongs to.
func (p Port) Node() Node { return Node{mod: p.mod, index: p.nodeIndex} }

// Index returns the port's index, shared between a module port and every
// instance port that mirrors it.
func (p Port) Index() uint32 { return p.portIndex }

// IsModulePort reports whether this port lives on the module's own
// interface (node index 0).
func (p Port) IsModulePort() bool { return p.nodeIndex == 0 }

// IsInstancePort reports whether this port lives on an instance node.
func (p Port) IsInstancePort() bool { return p.nodeIndex != 0 }

// Valid reports whether the port slot is currently live: for a module
// port, whether that interface slot hasn't been destroyed; for an
// instance port, whether the owning instance is live and the
// corresponding module port on its down module is valid (the dual
// relationship of invariant 2).
func (p Port) Valid() bool {
	if p.nodeIndex == 0 {
		return p.mod.portIsValid(p.portIndex)
	}
	if !p.mod.nodes.IsValid(p.nodeIndex) {
		return false
	}
	down := p.mod.nodes.Get(p.nodeIndex).down
	return down.portIsValid(p.portIndex)
}

func (p Port) connRef() connRef {
	node := p.mod.nodes.Get(p.nodeIndex)
	if p.portIndex >= uint32(len(node.refs)) {
		return disconnectedRef()
	}
	return node.refs[p.portIndex]
}

func (p Port) setConnRef(r connRef) {
	node := p.mod.nodes.Get(p.nodeIndex)
	for uint32(len(node.refs)) <= p.portIndex {
		node.refs = append(node.refs, disconnectedRef())
	}
	node.refs[p.portIndex] = r
}

// IsConnected reports whether the port currently has a wire attached.
func (p Port) IsConnected() bool { return p.connRef().connected() }

// Wire returns the port's connected wire, if any.
func (p Port) Wire() (Wire, bool) {
	r := p.connRef()
	if !r.connected() {
		return Wire{}, false
	}
	return Wire{mod: p.mod, index: r.wireIndex}, true
}

// Connect attaches the port to w. Preconditions (contract violations if
// broken): the port and wire belong to the same module, both are valid,
// and the port is currently disconnected.
func (p Port) Connect(w Wire) {
	if w.mod != p.mod {
		violate("Connect", "port and wire belong to different modules")
	}
	if !p.Valid() {
		violate("Connect", "port (node %d, port %d) is not valid", p.nodeIndex, p.portIndex)
	}
	if !w.Valid() {
		violate("Connect", "wire %d is not valid", w.index)
	}
	if p.IsConnected() {
		violate("Connect", "port (node %d, port %d) is already connected", p.nodeIndex, p.portIndex)
	}
	wslot := p.mod.wires.Get(w.index)
	xi := wslot.refs.push(xrefEntry{nodeIndex: p.nodeIndex, portIndex: p.portIndex})
	p.setConnRef(connRef{wireIndex: w.index, xrefIndex: xi})
}

// Disconnect detaches the port from its wire. Precondition: the port is
// currently connected.
func (p Port) Disconnect() {
	r := p.connRef()
	if !r.connected() {
		violate("Disconnect", "port (node %d, port %d) is not connected", p.nodeIndex, p.portIndex)
	}
	wslot := p.mod.wires.Get(r.wireIndex)
	wslot.refs.erase(r.xrefIndex)
	p.setConnRef(disconnectedRef())
}

// ModulePort is a Port known to live on a module's own interface.
type ModulePort struct {
	Port
}

// UpPort returns the port on inst that mirrors this module port, i.e. the
// instance port at the same portIndex (spec.md §8 scenario 1).
func (mp ModulePort) UpPort(inst Instance) InstancePort {
	if mp.mod != inst.DownModule().impl {
		violate("UpPort", "instance does not instantiate this port's module")
	}
	return InstancePort{Port{mod: inst.mod, nodeIndex: inst.index, portIndex: mp.portIndex}}
}

// Destroy disconnects the port if connected, marks its interface slot
// invalid, and chains it into the module's free-port list.
func (mp ModulePort) Destroy() {
	if mp.IsConnected() {
		mp.Disconnect()
	}
	impl := mp.mod
	impl.portValid[mp.portIndex] = false
	impl.portFreeNext[mp.portIndex] = impl.firstFreePort
	impl.firstFreePort = mp.portIndex
}

// InstancePort is a Port known to live on an instance node.
type InstancePort struct {
	Port
}

// DownPort returns the module port on the instance's down module that
// this instance port mirrors.
func (ip InstancePort) DownPort() ModulePort {
	down := ip.Node().DownModule()
	return ModulePort{Port{mod: down.impl, nodeIndex: 0, portIndex: ip.portIndex}}
}
