package netlist

// Instance is a Node known to reference another module as its down
// module (spec.md GLOSSARY: "a node that references a child module").
type Instance struct {
	Node
}

// Port returns the instance port at the given index, typed as an
// InstancePort so DownPort is available without a type assertion.
func (i Instance) Port(index uint32) InstancePort {
	return InstancePort{i.Node.Port(index)}
}

// Destroy disconnects every port on the instance, returns its node slot
// to the pool, and releases its reference on the down module.
func (i Instance) Destroy() {
	i.disconnectAll()
	down := i.DownModule()
	i.mod.nodes.Deallocate(i.index)
	down.Release()
}
