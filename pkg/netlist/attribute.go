package netlist

import "github.com/vic/netlist/pkg/ids"

// AttributeStore carries the three independently mutable collections every
// entity in the netlist owns: a set of name IDs, a set of property IDs, and
// a sparse map from ID to a typed attribute value. Sets are expected to
// stay small (under ~16 entries), so membership is a linear scan rather
// than a hash set.
type AttributeStore struct {
	names      []ids.ID
	properties []ids.ID
	attrKeys   []ids.ID
	attrVals   []ids.AttrValue
}

// AddName inserts a name ID. Returns false if it was already present.
func (a *AttributeStore) AddName(id ids.ID) bool {
	if containsID(a.names, id) {
		return false
	}
	a.names = append(a.names, id)
	return true
}

// HasName reports whether id is a member of the name set.
func (a *AttributeStore) HasName(id ids.ID) bool {
	return containsID(a.names, id)
}

// EraseName removes id from the name set. Returns false if absent.
func (a *AttributeStore) EraseName(id ids.ID) bool {
	return eraseID(&a.names, id)
}

// Names returns the name set in insertion order modulo erasures. The
// returned slice must not be mutated by the caller.
func (a *AttributeStore) Names() []ids.ID { return a.names }

// AddProperty inserts a property ID. Returns false if already present.
func (a *AttributeStore) AddProperty(id ids.ID) bool {
	if containsID(a.properties, id) {
		return false
	}
	a.properties = append(a.properties, id)
	return true
}

// HasProperty reports whether id is a member of the property set.
func (a *AttributeStore) HasProperty(id ids.ID) bool {
	return containsID(a.properties, id)
}

// EraseProperty removes id from the property set. Returns false if absent.
func (a *AttributeStore) EraseProperty(id ids.ID) bool {
	return eraseID(&a.properties, id)
}

// Properties returns the property set in insertion order modulo erasures.
// The returned slice must not be mutated by the caller.
func (a *AttributeStore) Properties() []ids.ID { return a.properties }

// SetAttr sets (or overwrites) the typed attribute value for id.
func (a *AttributeStore) SetAttr(id ids.ID, v ids.AttrValue) {
	for i, k := range a.attrKeys {
		if k == id {
			a.attrVals[i] = v
			return
		}
	}
	a.attrKeys = append(a.attrKeys, id)
	a.attrVals = append(a.attrVals, v)
}

// Attr looks up the typed attribute value for id. The discriminated
// (value, ok) result replaces the spec's originally-flagged anomaly of
// silently returning a zero value on a missing key (see SPEC_FULL.md §6).
func (a *AttributeStore) Attr(id ids.ID) (ids.AttrValue, bool) {
	for i, k := range a.attrKeys {
		if k == id {
			return a.attrVals[i], true
		}
	}
	return ids.AttrValue{}, false
}

// EraseAttr removes the attribute value for id. Returns false if absent.
func (a *AttributeStore) EraseAttr(id ids.ID) bool {
	for i, k := range a.attrKeys {
		if k == id {
			last := len(a.attrKeys) - 1
			a.attrKeys[i] = a.attrKeys[last]
			a.attrVals[i] = a.attrVals[last]
			a.attrKeys = a.attrKeys[:last]
			a.attrVals = a.attrVals[:last]
			return true
		}
	}
	return false
}

// AttrIDs returns the IDs with a set attribute value, in insertion order
// modulo erasures. The returned slice must not be mutated by the caller.
func (a *AttributeStore) AttrIDs() []ids.ID { return a.attrKeys }

func containsID(set []ids.ID, id ids.ID) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// eraseID removes id from *set using swap-with-last, reporting whether it
// was present.
func eraseID(set *[]ids.ID, id ids.ID) bool {
	s := *set
	for i, v := range s {
		if v == id {
			last := len(s) - 1
			s[i] = s[last]
			*set = s[:last]
			return true
		}
	}
	return false
}
