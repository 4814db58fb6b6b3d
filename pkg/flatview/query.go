package flatview

import "github.com/vic/netlist/pkg/netlist"

// FlatModule is one flattening of a module: the module definition plus its
// position within its own flat range (spec.md §4.7).
type FlatModule struct {
	view       *FlatView
	modIdx     int
	localIndex uint64
}

// Module returns the underlying module definition.
func (f FlatModule) Module() netlist.Module { return f.view.mods[f.modIdx] }

// LocalIndex returns the position of this flattening within its module's
// own flat range, [0, NumFlatInstantiations(Module())).
func (f FlatModule) LocalIndex() uint64 { return f.localIndex }

// GlobalIndex returns the dense index of this flattening in the view's
// module index space.
func (f FlatModule) GlobalIndex() uint64 { return f.view.modEndIndex[f.modIdx] + f.localIndex }

// IsTop reports whether this flattening is the view's root.
func (f FlatModule) IsTop() bool { return f.modIdx == 0 && f.localIndex == 0 }

// UpInstance returns the flat instance that produced this flattening: the
// instance, in some parent module, whose down module is this flattening's
// module. Reports false for the top flattening, which has no parent.
func (f FlatModule) UpInstance() (FlatInstance, bool) {
	boundaries := f.view.parentBoundaries[f.modIdx]
	if len(boundaries) <= 1 {
		return FlatInstance{}, false
	}
	i := bisect(boundaries, f.localIndex)
	entry := f.view.parentEntries[f.modIdx][i]
	parentLocal := f.localIndex - boundaries[i]
	return FlatInstance{
		view:         f.view,
		parentModIdx: entry.parentModIdx,
		nodeIndex:    entry.nodeIndex,
		parentLocal:  parentLocal,
		downModIdx:   f.modIdx,
		childLocal:   f.localIndex,
	}, true
}

// Instances returns every instance owned by this flattening's module, each
// expressed as a FlatInstance positioned at this flattening's local index.
func (f FlatModule) Instances() []FlatInstance {
	instSeq := f.Module().Instances()
	insts := instSeq.Collect()
	out := make([]FlatInstance, 0, len(insts))
	for _, inst := range insts {
		childIdx := f.view.modIndex[inst.DownModule()]
		off := f.view.childOffset[f.modIdx][inst.Index()]
		out = append(out, FlatInstance{
			view:         f.view,
			parentModIdx: f.modIdx,
			nodeIndex:    inst.Index(),
			parentLocal:  f.localIndex,
			downModIdx:   childIdx,
			childLocal:   off + f.localIndex,
		})
	}
	return out
}

// Ports returns every module port of this flattening's module, each
// expressed as a FlatPort positioned at this flattening's local index.
func (f FlatModule) Ports() []FlatPort {
	portSeq := f.Module().Interface().Ports()
	ports := portSeq.Collect()
	out := make([]FlatPort, 0, len(ports))
	for _, p := range ports {
		out = append(out, FlatPort{view: f.view, modIdx: f.modIdx, portSlot: p.Index(), localIndex: f.localIndex})
	}
	return out
}

// Wires returns every wire of this flattening's module, each expressed as
// a FlatWire positioned at this flattening's local index.
func (f FlatModule) Wires() []FlatWire {
	wireSeq := f.Module().Wires()
	wires := wireSeq.Collect()
	out := make([]FlatWire, 0, len(wires))
	for _, w := range wires {
		out = append(out, FlatWire{view: f.view, modIdx: f.modIdx, wireSlot: w.Index(), localIndex: f.localIndex})
	}
	return out
}

// FlatInstance is one flattening of an instance node: it names the parent
// flattening it lives in and the down-module flattening it produces, which
// share a single global index (spec.md §4.7: "global instance index =
// global module index of the down module").
type FlatInstance struct {
	view         *FlatView
	parentModIdx int
	nodeIndex    uint32
	parentLocal  uint64
	downModIdx   int
	childLocal   uint64
}

// Instance returns the underlying instance node.
func (i FlatInstance) Instance() netlist.Instance {
	return netlist.Instance{Node: i.view.mods[i.parentModIdx].Node(i.nodeIndex)}
}

// UpModule returns the flattening of the parent module this instance lives in.
func (i FlatInstance) UpModule() FlatModule {
	return FlatModule{view: i.view, modIdx: i.parentModIdx, localIndex: i.parentLocal}
}

// DownModule returns the flattening of the instance's down module, which
// shares this instance's global index.
func (i FlatInstance) DownModule() FlatModule {
	return FlatModule{view: i.view, modIdx: i.downModIdx, localIndex: i.childLocal}
}

// GlobalIndex returns the instance's global index — identical to
// i.DownModule().GlobalIndex().
func (i FlatInstance) GlobalIndex() uint64 { return i.DownModule().GlobalIndex() }

// Port returns the flat instance port mirroring the down module's port at
// the given slot.
func (i FlatInstance) Port(portSlot uint32) FlatInstancePort {
	return FlatInstancePort{inst: i, portSlot: portSlot}
}

// FlatWire is one flattening of a wire.
type FlatWire struct {
	view       *FlatView
	modIdx     int
	wireSlot   uint32
	localIndex uint64
}

// Wire returns the underlying wire handle.
func (w FlatWire) Wire() netlist.Wire { return w.view.mods[w.modIdx].Wire(w.wireSlot) }

// GlobalIndex returns the wire's dense index in the view's wire index space.
func (w FlatWire) GlobalIndex() uint64 {
	internal := uint64(w.view.wireInternal[w.modIdx][w.wireSlot])
	return w.view.wireEndIndex[w.modIdx] + internal*w.view.flatSize[w.modIdx] + w.localIndex
}

// FlatPort is one flattening of a module port, canonical for both the
// module-port side and every instance port that mirrors it (they share a
// global index by construction).
type FlatPort struct {
	view       *FlatView
	modIdx     int
	portSlot   uint32
	localIndex uint64
}

// Port returns the underlying module port handle.
func (p FlatPort) Port(mod netlist.Module) netlist.Port {
	return mod.Interface().Port(p.portSlot)
}

// GlobalIndex returns the port's dense index in the view's port index space.
func (p FlatPort) GlobalIndex() uint64 {
	internal := uint64(p.view.portInternal[p.modIdx][p.portSlot])
	return p.view.portEndIndex[p.modIdx] + internal*p.view.flatSize[p.modIdx] + p.localIndex
}

// UpPort returns this port expressed from the parent instance's side.
// Reports false when this port's module flattening is the top flattening.
func (p FlatPort) UpPort() (FlatInstancePort, bool) {
	fm := FlatModule{view: p.view, modIdx: p.modIdx, localIndex: p.localIndex}
	inst, ok := fm.UpInstance()
	if !ok {
		return FlatInstancePort{}, false
	}
	return FlatInstancePort{inst: inst, portSlot: p.portSlot}, true
}

// FlatInstancePort is a flat port viewed from an instance's side — same
// global index as its FlatPort, reached through a parent instance instead
// of directly through its module.
type FlatInstancePort struct {
	inst     FlatInstance
	portSlot uint32
}

// GlobalIndex returns the port's dense index — identical to
// p.DownPort().GlobalIndex().
func (p FlatInstancePort) GlobalIndex() uint64 { return p.DownPort().GlobalIndex() }

// DownPort returns the canonical module-port-side flattening of this port.
func (p FlatInstancePort) DownPort() FlatPort {
	return FlatPort{view: p.inst.view, modIdx: p.inst.downModIdx, portSlot: p.portSlot, localIndex: p.inst.childLocal}
}

// DecodeModule maps a global module index back to its flattening.
func (v *FlatView) DecodeModule(global uint64) FlatModule {
	m := bisect(v.modEndIndex[:len(v.modEndIndex)-1], global)
	return FlatModule{view: v, modIdx: m, localIndex: global - v.modEndIndex[m]}
}

// DecodeWire maps a global wire index back to its flattening.
func (v *FlatView) DecodeWire(global uint64) FlatWire {
	m := bisect(v.wireEndIndex[:len(v.wireEndIndex)-1], global)
	rem := global - v.wireEndIndex[m]
	internal := rem / v.flatSize[m]
	local := rem % v.flatSize[m]
	return FlatWire{view: v, modIdx: m, wireSlot: v.wireSlots[m][internal], localIndex: local}
}

// DecodePort maps a global port index back to its flattening.
func (v *FlatView) DecodePort(global uint64) FlatPort {
	m := bisect(v.portEndIndex[:len(v.portEndIndex)-1], global)
	rem := global - v.portEndIndex[m]
	internal := rem / v.flatSize[m]
	local := rem % v.flatSize[m]
	return FlatPort{view: v, modIdx: m, portSlot: v.portSlots[m][internal], localIndex: local}
}
