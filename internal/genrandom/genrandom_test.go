package genrandom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vic/netlist/pkg/flatview"
)

// checkInvariants asserts spec.md §8 scenario 5's three invariants against
// every module the generator currently tracks. It mirrors
// original_source/tests/netlist_test.cc's ModuleGenerator::check(): every
// wire, instance and port handle reachable from a tracked module must be
// valid and report that module as its owner, and every wire's
// cross-reference list must be symmetric with the connected ports' own
// connection refs.
func checkInvariants(t *testing.T, g *Generator) {
	t.Helper()
	for _, m := range g.mods {
		wireSeq := m.Wires()
		for _, w := range wireSeq.Collect() {
			require.True(t, w.Valid())
			require.Equal(t, m, w.Module())

			portSeq := w.Ports()
			for _, p := range portSeq.Collect() {
				require.True(t, p.IsConnected())
				wire, ok := p.Wire()
				require.True(t, ok)
				require.Equal(t, w, wire, "wire's cross-reference entry must point back at the port's own connection ref")
			}
		}

		instSeq := m.Instances()
		for _, inst := range instSeq.Collect() {
			require.True(t, inst.Valid())
			require.Equal(t, m, inst.Module())
		}

		nodeSeq := m.Nodes()
		for _, n := range nodeSeq.Collect() {
			nodePortSeq := n.Ports()
			for _, p := range nodePortSeq.Collect() {
				require.True(t, p.Valid())
				require.Equal(t, m, p.Module(), "every port's parent module must match its node's parent")
				require.Equal(t, n, p.Node())
			}
		}
	}
}

// scenario5Config is the depth=20, high-destroy-probability shape of
// spec.md §8 scenario 5, grounded on
// original_source/tests/netlist_test.cc's testRandomConstruction, which
// runs ModuleGenerator(20) with instDestroyProb/portDestroyProb/
// wireDestroyProb all raised to 0.9.
func scenario5Config() Config {
	return Config{
		Seed:           20,
		Steps:          300,
		CreateProb:     0.15,
		DestroyProb:    0.45,
		ConnectProb:    0.35,
		DisconnectProb: 0.05,
		MaxModules:     20,
	}
}

// runAndCheckPhases drives g through several phases of mutation, checking
// scenario 5's invariants after each one — mirroring
// ModuleGenerator::run()'s "mutate, then check()" loop.
func runAndCheckPhases(t *testing.T, g *Generator) {
	t.Helper()
	const phases = 8
	for phase := 0; phase < phases; phase++ {
		g.Run()
		checkInvariants(t, g)
	}
}

func TestRandomConstructionInvariants(t *testing.T) {
	g := New(scenario5Config())
	runAndCheckPhases(t, g)
}

// TestRandomFlatViewInvariants builds a flatview.FlatView over a random DAG
// produced the same way as TestRandomConstructionInvariants and checks
// spec.md §8 scenario 6's invariants, grounded on
// original_source/tests/netlist_test.cc's testRandomFlatView: every global
// module index round-trips through DecodeModule, and every non-top port's
// up/down navigation round-trips.
func TestRandomFlatViewInvariants(t *testing.T) {
	g := New(scenario5Config())
	runAndCheckPhases(t, g)

	view, err := flatview.Build(g.Top)
	require.NoError(t, err)

	for i := uint64(0); i < view.TotalModules(); i++ {
		fm := view.DecodeModule(i)
		require.Equal(t, i, fm.GlobalIndex(), "DecodeModule must round-trip every global module index")
		require.Equal(t, i == 0, fm.IsTop())
		require.True(t, fm.Module().Valid())
		if !fm.IsTop() {
			up, ok := fm.UpInstance()
			require.True(t, ok)
			require.Equal(t, i, up.GlobalIndex())
		}
	}

	for i := uint64(0); i < view.TotalWires(); i++ {
		fw := view.DecodeWire(i)
		require.Equal(t, i, fw.GlobalIndex())
		require.True(t, fw.Wire().Valid())
	}

	for i := uint64(0); i < view.TotalPorts(); i++ {
		fp := view.DecodePort(i)
		require.Equal(t, i, fp.GlobalIndex())
		up, ok := fp.UpPort()
		if !ok {
			continue // top flattening's ports have no up side
		}
		require.Equal(t, i, up.GlobalIndex())
		require.Equal(t, fp, up.DownPort(), "non-top port's up/down navigation must round-trip")
	}
}
