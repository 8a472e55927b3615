package vm

import (
	"sync"
)

// ObjectClass distinguishes the internal layout of an object.
type ObjectClass uint8

const (
	ClassObject ObjectClass = iota
	ClassArray
	ClassFunction
)

// NativeFn is the Go implementation behind a function object. this is the
// receiver the function was invoked on.
type NativeFn func(m *Model, this Value, args []Value) (Value, error)

// PlainObject is the single object representation of the model. Instances,
// prototypes, arrays and functions all share it: an ordered own-property map
// and exactly one prototype link (nil only for the root).
type PlainObject struct {
	mu sync.RWMutex

	prototype *PlainObject
	keys      []string
	props     map[string]Value

	class    ObjectClass
	elements []Value // ClassArray only

	fn    NativeFn // ClassFunction only
	name  string
	arity int

	// [[PrimitiveValue]] of wrapper objects such as new String("x")
	primitive *Value

	// Extensible flag - when false, no new properties can be added
	extensible bool
	frozen     bool
}

func newPlainObject(proto *PlainObject, class ObjectClass) *PlainObject {
	return &PlainObject{
		prototype:  proto,
		props:      make(map[string]Value),
		class:      class,
		extensible: true,
	}
}

// NewObject creates an object whose [[Prototype]] is proto. A nil proto
// creates a root object.
func NewObject(proto *PlainObject) *PlainObject {
	return newPlainObject(proto, ClassObject)
}

// Prototype returns the [[Prototype]] link, nil for the root.
func (o *PlainObject) Prototype() *PlainObject {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.prototype
}

func (o *PlainObject) setPrototype(proto *PlainObject) {
	o.mu.Lock()
	o.prototype = proto
	o.mu.Unlock()
}

// Class returns the internal layout of the object.
func (o *PlainObject) Class() ObjectClass { return o.class }

// GetOwn looks up a direct (own) property by name. Returns (value, true) if present.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.class == ClassArray && name == "length" {
		return NumberValue(float64(len(o.elements))), true
	}
	v, ok := o.props[name]
	return v, ok
}

// HasOwn reports whether name is an own property.
func (o *PlainObject) HasOwn(name string) bool {
	_, ok := o.GetOwn(name)
	return ok
}

// SetOwn defines or overwrites an own property without any extensibility
// checks. Builtin initializers use it to populate prototypes.
func (o *PlainObject) SetOwn(name string, v Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.setOwnLocked(name, v)
}

func (o *PlainObject) setOwnLocked(name string, v Value) {
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.props[name] = v
}

// DeleteOwn removes an own property if present and the object is not frozen.
// Returns true if the property was deleted.
func (o *PlainObject) DeleteOwn(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozen {
		return false
	}
	if _, exists := o.props[name]; !exists {
		return false
	}
	delete(o.props, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns own property names in insertion order.
func (o *PlainObject) OwnKeys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// IsExtensible reports whether new own properties may be added.
func (o *PlainObject) IsExtensible() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.extensible
}

// IsFrozen reports whether the object has been frozen.
func (o *PlainObject) IsFrozen() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.frozen
}

// Name returns the function name for function objects.
func (o *PlainObject) Name() string { return o.name }

// SetPrimitive stores the wrapped primitive of a wrapper object.
func (o *PlainObject) SetPrimitive(v Value) {
	o.mu.Lock()
	o.primitive = &v
	o.mu.Unlock()
}

// Primitive returns the wrapped primitive of a wrapper object.
func (o *PlainObject) Primitive() (Value, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.primitive == nil {
		return Undefined, false
	}
	return *o.primitive, true
}

// Elements returns a snapshot of an array's elements.
func (o *PlainObject) Elements() []Value {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Value, len(o.elements))
	copy(out, o.elements)
	return out
}

// Push appends to an array and returns the new length.
func (o *PlainObject) Push(vals ...Value) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.elements = append(o.elements, vals...)
	return len(o.elements)
}

// Pop removes and returns the last element of an array.
func (o *PlainObject) Pop() (Value, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.elements) == 0 {
		return Undefined, false
	}
	last := o.elements[len(o.elements)-1]
	o.elements = o.elements[:len(o.elements)-1]
	return last, true
}

// constructorName finds the name of the nearest "constructor" function on
// the prototype chain, for display only.
func (o *PlainObject) constructorName() string {
	p := o.Prototype()
	for i := 0; p != nil && i < DefaultMaxChainDepth; i++ {
		if c, ok := p.GetOwn("constructor"); ok {
			if c.IsCallable() {
				return c.obj.name
			}
			return ""
		}
		p = p.Prototype()
	}
	return ""
}
