package netlist

// xrefEntry identifies one port connected to a wire: the node owning the
// port, and the port's index on that node.
type xrefEntry struct {
	nodeIndex uint32
	portIndex uint32
}

// xrefSlot is one freelist-backed slot of a wire's cross-reference list.
// When free, nodeIndex == xrefEmpty and portIndex holds the freelist's
// next-pointer (or poolListEnd if this is the chain's tail). When
// connected, nodeIndex/portIndex hold a real xrefEntry.
type xrefSlot struct {
	nodeIndex uint32
	portIndex uint32
}

// xrefList is the freelist-backed vector of (peer node, peer port) pairs
// hanging off a wire (spec.md §4.3). Unlike ObjectPool, an erased slot's
// index is never implicitly reused by a later Push of a *different*
// caller's choosing — reuse only happens through the same freelist
// discipline, so callers that cached a slot index see it go invalid, not
// silently repurposed, until the next Push claims it.
type xrefList struct {
	slots    []xrefSlot
	freeHead uint32
}

func newXrefList() xrefList {
	return xrefList{freeHead: poolListEnd}
}

// push adds a connected entry and returns its slot index.
func (x *xrefList) push(e xrefEntry) uint32 {
	if x.freeHead != poolListEnd {
		i := x.freeHead
		x.freeHead = x.slots[i].portIndex
		x.slots[i] = xrefSlot{nodeIndex: e.nodeIndex, portIndex: e.portIndex}
		return i
	}
	x.slots = append(x.slots, xrefSlot{nodeIndex: e.nodeIndex, portIndex: e.portIndex})
	return uint32(len(x.slots) - 1)
}

// erase marks slot i free and chains it into the freelist. The slot index
// is never reused until a later push pulls it back off the freelist.
func (x *xrefList) erase(i uint32) {
	x.slots[i] = xrefSlot{nodeIndex: xrefEmpty, portIndex: x.freeHead}
	x.freeHead = i
}

// isConnected reports whether slot i currently holds a connected entry.
func (x *xrefList) isConnected(i uint32) bool {
	return i < uint32(len(x.slots)) && x.slots[i].nodeIndex != xrefEmpty
}

// get returns the entry at slot i. Callers must have checked isConnected.
func (x *xrefList) get(i uint32) xrefEntry {
	s := x.slots[i]
	return xrefEntry{nodeIndex: s.nodeIndex, portIndex: s.portIndex}
}

// all returns the slot indices currently holding connected entries, in
// slot order.
func (x *xrefList) all() []uint32 {
	out := make([]uint32, 0, len(x.slots))
	for i, s := range x.slots {
		if s.nodeIndex != xrefEmpty {
			out = append(out, uint32(i))
		}
	}
	return out
}

// len reports the number of connected entries.
func (x *xrefList) len() int {
	n := 0
	for _, s := range x.slots {
		if s.nodeIndex != xrefEmpty {
			n++
		}
	}
	return n
}
