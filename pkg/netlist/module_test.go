package netlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vic/netlist/pkg/ids"
)

func TestInterfaceNodeIsItsOwnDownModule(t *testing.T) {
	m := CreateHier(ids.ID(1))
	iface := m.Interface()
	require.True(t, iface.IsInterface())
	require.False(t, iface.IsInstance())
	require.Equal(t, m, iface.DownModule(), "invariant 1: node 0's down module is the module itself")
}

func TestPortDualityModuleAndInstance(t *testing.T) {
	child := CreateLeaf(ids.ID(2))
	mp := child.CreatePort()
	require.True(t, mp.Valid())

	parent := CreateHier(ids.ID(1))
	inst := parent.CreateInstance(child)
	ip := mp.UpPort(inst)

	require.True(t, ip.Valid())
	require.True(t, ip.IsInstancePort())
	require.Equal(t, mp.Index(), ip.Index())
	require.Equal(t, mp, ip.DownPort(), "instance port's DownPort mirrors the module port it came from")

	mp.Destroy()
	require.False(t, mp.Valid())
	require.False(t, ip.Valid(), "invariant 2: destroying the module port invalidates every mirroring instance port")
}

func TestWireConnectDisconnectIsSymmetric(t *testing.T) {
	m := CreateHier(ids.ID(1))
	a := m.CreateInstance(CreateLeaf(ids.ID(10)))
	b := m.CreateInstance(CreateLeaf(ids.ID(11)))
	pa := a.DownModule().CreatePort()
	pb := b.DownModule().CreatePort()

	ipa := pa.UpPort(a)
	ipb := pb.UpPort(b)

	w := m.CreateWire()
	ipa.Connect(w)
	ipb.Connect(w)

	require.Equal(t, 2, w.Degree())
	require.True(t, ipa.IsConnected())
	require.True(t, ipb.IsConnected())

	peerSeq := w.Ports()
	peers := peerSeq.Collect()
	require.Len(t, peers, 2)

	ipa.Disconnect()
	require.False(t, ipa.IsConnected())
	require.Equal(t, 1, w.Degree(), "invariant 3: disconnecting one side removes exactly one cross-reference entry")
}

func TestModuleRefCountingCascadesOnRelease(t *testing.T) {
	grandchild := CreateLeaf(ids.ID(3))
	child := CreateHier(ids.ID(2))
	child.CreateInstance(grandchild)
	child.CreateInstance(grandchild) // shared: two instances of the same module
	require.Equal(t, int32(3), grandchild.RefCount(), "1 (creation) + 2 (instances)")

	top := CreateHier(ids.ID(1))
	topInst := top.CreateInstance(child)
	require.Equal(t, int32(2), child.RefCount())

	child.Release() // drop the creator's own reference; instance still holds one
	require.Equal(t, int32(1), child.RefCount())

	topInst.Destroy() // drops top's instance ref on child -> child refcount 0 -> cascades
	require.Equal(t, int32(1), grandchild.RefCount(), "only the creation ref on grandchild should remain after cascade")
}

func TestCreateWireAndInstanceRejectedOnLeaf(t *testing.T) {
	leaf := CreateLeaf(ids.ID(1))
	require.Panics(t, func() { leaf.CreateWire() })
	require.Panics(t, func() { leaf.CreateInstance(CreateLeaf(ids.ID(2))) })
}

func TestInstancesExcludesInterfaceNode(t *testing.T) {
	m := CreateHier(ids.ID(1))
	m.CreateInstance(CreateLeaf(ids.ID(2)))
	m.CreateInstance(CreateLeaf(ids.ID(3)))

	instSeq := m.Instances()
	insts := instSeq.Collect()
	require.Len(t, insts, 2)
	for _, inst := range insts {
		require.NotZero(t, inst.Index())
	}
}

// TestIterationCounts mirrors spec.md §8 scenario 2: 100 ports on a shared
// leaf module, 300 instances of that leaf in a hierarchical module, and 400
// wires also owned by that module — every count must come back exactly as
// created.
func TestIterationCounts(t *testing.T) {
	const numPorts = 100
	const numInsts = 300
	const numWires = 400

	top := CreateHier(ids.ID(1))
	leaf := CreateLeaf(ids.ID(2))

	for i := 0; i < numPorts; i++ {
		leaf.CreatePort()
	}
	leafPortSeq := leaf.Interface().Ports()
	require.Equal(t, numPorts, leafPortSeq.Count())

	for i := 0; i < numInsts; i++ {
		top.CreateInstance(leaf)
	}
	for i := 0; i < numWires; i++ {
		top.CreateWire()
	}

	instSeq := top.Instances()
	insts := instSeq.Collect()
	require.Len(t, insts, numInsts)
	for _, inst := range insts {
		instPortSeq := inst.Ports()
		require.Equal(t, numPorts, instPortSeq.Count(), "every instance mirrors the leaf's full port set")
	}

	wireSeq := top.Wires()
	wires := wireSeq.Collect()
	require.Len(t, wires, numWires)

	require.Equal(t, int32(1+numInsts), leaf.RefCount(), "1 creation ref + one per instance")
}
