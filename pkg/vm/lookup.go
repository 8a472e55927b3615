package vm

import (
	"go.uber.org/zap"

	perrors "protochain/pkg/errors"
)

const debugLookup = false

// LookupResult describes where a property was found on a chain.
type LookupResult struct {
	Value  Value
	Found  bool
	Holder *PlainObject // object owning the property, nil when not found
	Depth  int          // 0 = own property, 1 = prototype, 2 = prototype's prototype...
}

// walkChain visits start and then each prototype above it until visit
// returns true or the chain ends. A chain that revisits an object or exceeds
// the model's maximum depth fails with ErrCyclicPrototypeChain.
func (m *Model) walkChain(start *PlainObject, property string, visit func(o *PlainObject, depth int) bool) error {
	seen := make(map[*PlainObject]struct{}, 4)
	depth := 0
	for o := start; o != nil; o = o.Prototype() {
		if _, revisit := seen[o]; revisit {
			return &perrors.LookupError{Property: property, Msg: "prototype chain revisits an object", Cause: ErrCyclicPrototypeChain}
		}
		if depth > m.maxDepth {
			return &perrors.LookupError{Property: property, Msg: "prototype chain exceeds the maximum depth", Cause: ErrCyclicPrototypeChain}
		}
		seen[o] = struct{}{}
		if TraceChainWalks || debugLookup {
			m.logger.Debug("chain step", zap.String("property", property), zap.Int("depth", depth), zap.Int("own", len(o.OwnKeys())))
		}
		if visit(o, depth) {
			return nil
		}
		depth++
	}
	return nil
}

// Lookup resolves name on obj: own properties first, then the prototype
// chain. The result tells which object held the property and how deep.
func (m *Model) Lookup(obj *PlainObject, name string) (LookupResult, error) {
	var res LookupResult
	if obj == nil {
		return res, &perrors.LookupError{Property: name, Msg: "cannot read properties of null", Cause: ErrNotAnObject}
	}
	err := m.walkChain(obj, name, func(o *PlainObject, depth int) bool {
		if v, ok := o.GetOwn(name); ok {
			res = LookupResult{Value: v, Found: true, Holder: o, Depth: depth}
			return true
		}
		return false
	})
	if err != nil {
		return LookupResult{}, err
	}
	return res, nil
}

// GetProperty returns the value of name on obj. ok is false when no object
// on the chain has the property, which is distinct from a stored Undefined.
func (m *Model) GetProperty(obj *PlainObject, name string) (v Value, ok bool, err error) {
	res, err := m.Lookup(obj, name)
	if err != nil {
		return Undefined, false, err
	}
	return res.Value, res.Found, nil
}

// GetValueProperty reads name from any value. Primitives resolve through
// their wrapper prototype; undefined and null fail.
func (m *Model) GetValueProperty(v Value, name string) (Value, bool, error) {
	start := m.realm.PrototypeFor(v)
	if start == nil {
		return Undefined, false, &perrors.LookupError{Property: name, Msg: "cannot read properties of " + v.ToString(), Cause: ErrNotAnObject}
	}
	if v.Type() == TypeString && name == "length" {
		return NumberValue(float64(len([]rune(v.AsString())))), true, nil
	}
	return m.GetProperty(start, name)
}

// Has implements the in operator.
func (m *Model) Has(obj *PlainObject, name string) (bool, error) {
	res, err := m.Lookup(obj, name)
	return res.Found, err
}

// HasOwn reports whether name is an own property of obj.
func (m *Model) HasOwn(obj *PlainObject, name string) bool {
	return obj != nil && obj.HasOwn(name)
}

// HasInherited reports whether name resolves through the prototype chain
// while not being an own property of obj.
func (m *Model) HasInherited(obj *PlainObject, name string) (bool, error) {
	res, err := m.Lookup(obj, name)
	if err != nil {
		return false, err
	}
	return res.Found && res.Depth > 0, nil
}

// GetPrototypeOf returns obj's [[Prototype]], nil for a root object.
func (m *Model) GetPrototypeOf(obj *PlainObject) *PlainObject {
	if obj == nil {
		return nil
	}
	return obj.Prototype()
}

// IsPrototypeOf reports whether proto appears on obj's prototype chain,
// excluding obj itself.
func (m *Model) IsPrototypeOf(proto, obj *PlainObject) (bool, error) {
	if proto == nil || obj == nil {
		return false, nil
	}
	found := false
	err := m.walkChain(obj, "[[Prototype]]", func(o *PlainObject, depth int) bool {
		if depth > 0 && o == proto {
			found = true
		}
		return found
	})
	return found, err
}

// SetPrototypeOf swaps obj's [[Prototype]] link. Links that would close a
// cycle are rejected.
func (m *Model) SetPrototypeOf(obj, proto *PlainObject) error {
	if obj == nil {
		return &perrors.PropertyError{Property: "[[Prototype]]", Msg: "cannot set prototype of null", Cause: ErrNotAnObject}
	}
	if proto != nil {
		closes := false
		err := m.walkChain(proto, "[[Prototype]]", func(o *PlainObject, _ int) bool {
			closes = o == obj
			return closes
		})
		if err != nil {
			return err
		}
		if closes {
			return &perrors.PropertyError{Property: "[[Prototype]]", Msg: "new prototype would create a cycle", Cause: ErrCyclicPrototypeChain}
		}
	}
	if !obj.IsExtensible() && obj.Prototype() != proto {
		return &perrors.PropertyError{Property: "[[Prototype]]", Msg: "object is not extensible", Cause: ErrNotExtensible}
	}
	obj.setPrototype(proto)
	return nil
}
