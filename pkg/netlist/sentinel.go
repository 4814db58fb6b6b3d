package netlist

import "math"

// InvalidIndex is the reserved 32-bit sentinel meaning "refers to
// nothing": never allocated, freed, or otherwise absent.
const InvalidIndex uint32 = math.MaxUint32

// InvalidFlatIndex is the 64-bit analogue used throughout the flat view,
// where a single module's flat size alone can exceed 2^32.
const InvalidFlatIndex uint64 = math.MaxUint64

// The object pool and cross-reference list each need an in-band
// discriminator living inside a plain uint32 field. Per the design note in
// spec.md §9, exactly two raw values are reserved for this purpose —
// 2^32-1 and 2^32-2 — and reused by name depending on which structure is
// doing the discriminating. Never rely on signed wrap-around to produce
// them.
const (
	// poolUsed marks a pool slot that holds a live value. poolListEnd
	// terminates a freelist chain (the slot is free and this was the last
	// link). Allocation sizes are assumed to stay well under poolListEnd.
	poolUsed    uint32 = math.MaxUint32
	poolListEnd uint32 = math.MaxUint32 - 1

	// xrefEmpty marks a free slot in a wire's cross-reference list.
	// xrefDisconnected marks a node-side connection ref that has been
	// explicitly disconnected (transient state, distinct from "never
	// allocated").
	xrefEmpty        uint32 = math.MaxUint32
	xrefDisconnected uint32 = math.MaxUint32 - 1
)
