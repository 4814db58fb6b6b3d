// Package flatview builds a read-only, flattened index over a netlist
// hierarchy: every module, instance, wire and port gets a dense global
// index that accounts for how many times its owning module is instantiated
// transitively under the chosen top. Building is the expensive step (one
// DFS plus a handful of prefix-sum passes); querying is O(log n) bisection,
// no further graph walking, which is the point — a flat view is a
// snapshot taken once and queried many times (original_source's
// gbl_flatview_impl.hh / flatview.cc follow the same shape; the packaging
// below is generalized from that recurrence).
package flatview

import (
	"go.uber.org/zap"

	"github.com/vic/netlist/pkg/netlist"
)

// instRef names one instance (in a specific parent module) that produces a
// contiguous block of a child module's flat range.
type instRef struct {
	parentModIdx int
	nodeIndex    uint32
}

// FlatView is an immutable flattened index over the module graph rooted at
// a chosen top module. Build it once with Build and query it with the
// FlatModule/FlatInstance/FlatWire/FlatPort handles it hands out.
type FlatView struct {
	top      netlist.Module
	mods     []netlist.Module
	modIndex map[netlist.Module]int

	flatSize    []uint64
	modEndIndex []uint64 // len(mods)+1

	// Up navigation: for child module c, parentBoundaries[c] partitions
	// [0, flatSize[c]) into one block per parent-instance; parentEntries[c]
	// names the (parent module, instance node) that owns each block.
	parentBoundaries [][]uint64
	parentEntries    [][]instRef

	// Down navigation: for parent module p, childOffset[p][nodeIndex] is
	// the base local index, within the down module's flat range, of the
	// block that instance produces.
	childOffset []map[uint32]uint64

	wireSlots    [][]uint32 // per module, live wire slot indices in order
	wireInternal []map[uint32]int
	wireEndIndex []uint64

	portSlots    [][]uint32 // per module, live module-port slot indices in order
	portInternal []map[uint32]int
	portEndIndex []uint64

	logger *zap.Logger
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	logger *zap.Logger
}

// WithLogger attaches a zap logger that Build uses to trace the DFS and
// the size of the resulting tables. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *buildConfig) { c.logger = l }
}

// Build constructs a FlatView rooted at top. It returns ErrCycle if the
// module graph reachable from top (through instance down-modules) contains
// a cycle — a module instantiating itself, directly or transitively.
func Build(top netlist.Module, opts ...Option) (*FlatView, error) {
	cfg := buildConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger.Sugar()

	mods, err := topoOrder(top)
	if err != nil {
		return nil, err
	}
	log.Debugw("flatview: topological order computed", "modules", len(mods))

	modIndex := make(map[netlist.Module]int, len(mods))
	for i, m := range mods {
		modIndex[m] = i
	}

	v := &FlatView{
		top:      top,
		mods:     mods,
		modIndex: modIndex,
		logger:   cfg.logger,
	}
	v.buildFlatSizeAndLinks()
	v.buildWireAndPortTables()

	log.Debugw("flatview: built",
		"totalModules", v.modEndIndex[len(v.modEndIndex)-1],
		"totalWires", v.wireEndIndex[len(v.wireEndIndex)-1],
		"totalPorts", v.portEndIndex[len(v.portEndIndex)-1],
	)
	return v, nil
}

// topoOrder runs a DFS from top over instance down-modules, postorder
// appends each module once fully explored, then reverses — producing a
// parents-before-children list with order[0] == top (spec.md §4.6). A node
// still on the recursion stack when revisited means a cycle; this is
// raised as ErrCycle rather than silently skipped (SPEC_FULL.md §6).
func topoOrder(top netlist.Module) ([]netlist.Module, error) {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[netlist.Module]int)
	var order []netlist.Module

	var visit func(m netlist.Module) error
	visit = func(m netlist.Module) error {
		switch state[m] {
		case done:
			return nil
		case inStack:
			return cycleError("module %v instantiates itself transitively", m.ID())
		}
		state[m] = inStack
		instances := m.Instances()
		for {
			inst, ok := instances.Next()
			if !ok {
				break
			}
			if err := visit(inst.DownModule()); err != nil {
				return err
			}
		}
		state[m] = done
		order = append(order, m)
		return nil
	}

	if err := visit(top); err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// buildFlatSizeAndLinks computes flatSize, modEndIndex and the up/down
// navigation tables in a single pass over mods in topological order. Since
// parents always precede their children in mods, flatSize[p] is final by
// the time the loop reaches p as a parent (spec.md §4.6 recurrence:
// flatSize[child] += flatSize[parent] for every instance of child in
// parent).
func (v *FlatView) buildFlatSizeAndLinks() {
	n := len(v.mods)
	flatSize := make([]uint64, n)
	flatSize[0] = 1 // the top module has exactly one flattening: itself

	parentBoundaries := make([][]uint64, n)
	parentEntries := make([][]instRef, n)
	childOffset := make([]map[uint32]uint64, n)
	for i := 0; i < n; i++ {
		parentBoundaries[i] = []uint64{0}
		childOffset[i] = make(map[uint32]uint64)
	}

	for p := 0; p < n; p++ {
		instances := v.mods[p].Instances()
		for {
			inst, ok := instances.Next()
			if !ok {
				break
			}
			c := v.modIndex[inst.DownModule()]
			off := flatSize[c]
			parentEntries[c] = append(parentEntries[c], instRef{parentModIdx: p, nodeIndex: inst.Index()})
			childOffset[p][inst.Index()] = off
			flatSize[c] += flatSize[p]
			parentBoundaries[c] = append(parentBoundaries[c], flatSize[c])
		}
	}

	modEndIndex := make([]uint64, n+1)
	for i := 0; i < n; i++ {
		modEndIndex[i+1] = modEndIndex[i] + flatSize[i]
	}

	v.flatSize = flatSize
	v.modEndIndex = modEndIndex
	v.parentBoundaries = parentBoundaries
	v.parentEntries = parentEntries
	v.childOffset = childOffset
}

// buildWireAndPortTables enumerates each module's own wires and module
// ports in insertion order, giving each a dense per-module "internal"
// index, then prefix-sums module-count * flatSize to get the global base
// for each module (spec.md §4.7 wire/port striding).
func (v *FlatView) buildWireAndPortTables() {
	n := len(v.mods)
	wireSlots := make([][]uint32, n)
	wireInternal := make([]map[uint32]int, n)
	wireEndIndex := make([]uint64, n+1)

	portSlots := make([][]uint32, n)
	portInternal := make([]map[uint32]int, n)
	portEndIndex := make([]uint64, n+1)

	for i, m := range v.mods {
		wireSeq := m.Wires()
		wires := wireSeq.Collect()
		ws := make([]uint32, len(wires))
		wi := make(map[uint32]int, len(wires))
		for k, w := range wires {
			ws[k] = w.Index()
			wi[w.Index()] = k
		}
		wireSlots[i] = ws
		wireInternal[i] = wi
		wireEndIndex[i+1] = wireEndIndex[i] + uint64(len(ws))*v.flatSize[i]

		portSeq := m.Interface().Ports()
		ports := portSeq.Collect()
		ps := make([]uint32, len(ports))
		pi := make(map[uint32]int, len(ports))
		for k, p := range ports {
			ps[k] = p.Index()
			pi[p.Index()] = k
		}
		portSlots[i] = ps
		portInternal[i] = pi
		portEndIndex[i+1] = portEndIndex[i] + uint64(len(ps))*v.flatSize[i]
	}

	v.wireSlots = wireSlots
	v.wireInternal = wireInternal
	v.wireEndIndex = wireEndIndex
	v.portSlots = portSlots
	v.portInternal = portInternal
	v.portEndIndex = portEndIndex
}

// Top returns the flattening of the view's root module, at local index 0.
func (v *FlatView) Top() FlatModule {
	return FlatModule{view: v, modIdx: 0, localIndex: 0}
}

// NumFlatInstantiations returns how many times m is instantiated,
// transitively, under the view's top — 1 for top itself. Reports false if
// m is not reachable from top.
func (v *FlatView) NumFlatInstantiations(m netlist.Module) (uint64, bool) {
	i, ok := v.modIndex[m]
	if !ok {
		return 0, false
	}
	return v.flatSize[i], true
}

// TotalModules, TotalWires and TotalPorts report the size of the
// respective global index spaces.
func (v *FlatView) TotalModules() uint64 { return v.modEndIndex[len(v.modEndIndex)-1] }
func (v *FlatView) TotalWires() uint64   { return v.wireEndIndex[len(v.wireEndIndex)-1] }
func (v *FlatView) TotalPorts() uint64   { return v.portEndIndex[len(v.portEndIndex)-1] }
