// Package genrandom builds synthetic netlist hierarchies for exercising
// pkg/flatview and pkg/netlist: a deterministic chain of singly-shared
// modules (spec.md §8 scenario 4) and a randomized DAG driven by
// create/destroy/connect/disconnect probabilities (scenario 5/6). It backs
// cmd/netlistgen's demo/benchmark mode.
package genrandom

import (
	"fmt"
	"math/rand/v2"

	"github.com/vic/netlist/pkg/ids"
	"github.com/vic/netlist/pkg/netlist"
)

// Chain builds depth hierarchical modules mod[0]..mod[depth-1], each
// instantiating the next fanOut times, and returns the top module
// (mod[0]). A depth of 1 returns a single leaf module. This is the
// structure behind spec.md §8 scenario 4: NumFlatInstantiations(mod[i]) ==
// fanOut^i.
func Chain(depth, fanOut int) netlist.Module {
	if depth < 1 {
		depth = 1
	}
	mods := make([]netlist.Module, depth)
	mods[depth-1] = netlist.CreateLeaf(ids.ID(0x10000 + depth - 1))
	for i := depth - 2; i >= 0; i-- {
		m := netlist.CreateHier(ids.ID(0x10000 + i))
		for k := 0; k < fanOut; k++ {
			m.CreateInstance(mods[i+1])
		}
		mods[i+1].Release() // the chain now holds its only owning references via m's instances
		mods[i] = m
	}
	return mods[0]
}

// Config controls the random-DAG generator.
type Config struct {
	Seed          uint64
	Steps         int     // number of mutation attempts
	CreateProb    float64 // probability of creating a new leaf or instance
	DestroyProb   float64 // probability of destroying an existing instance
	ConnectProb   float64 // probability of connecting two disconnected ports via a new wire
	DisconnectProb float64 // probability of disconnecting a connected port
	MaxModules    int     // cap on total hierarchical modules created
}

// Generator grows a random module DAG rooted at Top step by step, tracking
// enough bookkeeping to pick uniformly among its live modules/instances/
// ports for the next mutation.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	Top  netlist.Module
	mods []netlist.Module // every hierarchical module created, including Top
}

// New creates a Generator with a fresh top-level hierarchical module.
func New(cfg Config) *Generator {
	top := netlist.CreateHier(ids.ID(1))
	return &Generator{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		Top:  top,
		mods: []netlist.Module{top},
	}
}

// Run performs cfg.Steps mutation attempts against the DAG and returns the
// number actually applied (a step can be a no-op, e.g. "disconnect" with
// nothing connected).
func (g *Generator) Run() int {
	applied := 0
	for i := 0; i < g.cfg.Steps; i++ {
		if g.step() {
			applied++
		}
	}
	return applied
}

func (g *Generator) step() bool {
	roll := g.rng.Float64()
	switch {
	case roll < g.cfg.CreateProb:
		return g.createInstance()
	case roll < g.cfg.CreateProb+g.cfg.DestroyProb:
		return g.destroyInstance()
	case roll < g.cfg.CreateProb+g.cfg.DestroyProb+g.cfg.ConnectProb:
		return g.connectPorts()
	default:
		return g.disconnectPort()
	}
}

func (g *Generator) pickModule() netlist.Module {
	return g.mods[g.rng.IntN(len(g.mods))]
}

// createInstance instantiates a new child under a random module. Hierarchical
// children are added to the generator's own standing library (g.mods) and
// keep their creation reference there, so later steps can keep instantiating
// them even after any one instance of them is destroyed. Leaf children have
// no other owner: the instance's own reference is their only one, matching
// Chain's pattern.
func (g *Generator) createInstance() bool {
	parent := g.pickModule()
	if parent.IsLeaf() {
		return false
	}
	if len(g.mods) < g.cfg.MaxModules && g.rng.Float64() < 0.5 {
		child := netlist.CreateHier(ids.ID(len(g.mods) + 1000))
		g.mods = append(g.mods, child)
		parent.CreateInstance(child)
		return true
	}
	child := netlist.CreateLeaf(ids.ID(len(g.mods) + 2000))
	parent.CreateInstance(child)
	child.Release()
	return true
}

func (g *Generator) destroyInstance() bool {
	parent := g.pickModule()
	instSeq := parent.Instances()
	insts := instSeq.Collect()
	if len(insts) == 0 {
		return false
	}
	insts[g.rng.IntN(len(insts))].Destroy()
	return true
}

func (g *Generator) connectPorts() bool {
	m := g.pickModule()
	if m.IsLeaf() {
		return false
	}
	a, ok := g.randomFreePort(m)
	if !ok {
		return false
	}
	b, ok := g.randomFreePort(m)
	if !ok || (a.Node().Index() == b.Node().Index() && a.Index() == b.Index()) {
		return false
	}
	w := m.CreateWire()
	a.Connect(w)
	b.Connect(w)
	return true
}

func (g *Generator) disconnectPort() bool {
	m := g.pickModule()
	nodeSeq := m.Nodes()
	nodes := nodeSeq.Collect()
	if len(nodes) == 0 {
		return false
	}
	n := nodes[g.rng.IntN(len(nodes))]
	portSeq := n.Ports()
	ports := portSeq.Collect()
	connected := make([]netlist.Port, 0, len(ports))
	for _, p := range ports {
		if p.IsConnected() {
			connected = append(connected, p)
		}
	}
	if len(connected) == 0 {
		return false
	}
	p := connected[g.rng.IntN(len(connected))]
	w, _ := p.Wire()
	p.Disconnect()
	if w.Degree() == 0 {
		w.Destroy()
	}
	return true
}

func (g *Generator) randomFreePort(m netlist.Module) (netlist.Port, bool) {
	nodeSeq := m.Nodes()
	nodes := nodeSeq.Collect()
	if len(nodes) == 0 {
		return netlist.Port{}, false
	}
	for attempt := 0; attempt < len(nodes)*2; attempt++ {
		n := nodes[g.rng.IntN(len(nodes))]
		portSeq := n.Ports()
		ports := portSeq.Collect()
		if len(ports) == 0 {
			if n.IsInterface() {
				mp := m.CreatePort()
				return mp.Port, true
			}
			continue
		}
		p := ports[g.rng.IntN(len(ports))]
		if !p.IsConnected() {
			return p, true
		}
	}
	return netlist.Port{}, false
}

// String renders a compact summary of the generator's module count, for
// log lines.
func (g *Generator) String() string {
	return fmt.Sprintf("genrandom.Generator{modules=%d}", len(g.mods))
}
