package vm

// Realm holds the root object, the built-in prototypes and the global object
// of one model. Builtin initializers populate the prototypes; the realm only
// wires up the inheritance hierarchy.
type Realm struct {
	GlobalObject *PlainObject

	// Built-in prototypes
	ObjectPrototype   *PlainObject
	FunctionPrototype *PlainObject
	ArrayPrototype    *PlainObject
	StringPrototype   *PlainObject
	NumberPrototype   *PlainObject
	BooleanPrototype  *PlainObject

	initialized bool
}

// NewRealm creates a realm with an empty prototype hierarchy.
func NewRealm() *Realm {
	r := &Realm{}
	r.InitializePrototypes()
	return r
}

// InitializePrototypes creates the prototype chain for this realm.
// This sets up the inheritance hierarchy for all built-in types.
func (r *Realm) InitializePrototypes() {
	if r.initialized {
		return
	}
	// Object.prototype is the root (inherits from null)
	r.ObjectPrototype = NewObject(nil)
	// Function.prototype is itself callable and returns undefined
	r.FunctionPrototype = newPlainObject(r.ObjectPrototype, ClassFunction)
	r.FunctionPrototype.fn = func(*Model, Value, []Value) (Value, error) { return Undefined, nil }
	r.ArrayPrototype = newPlainObject(r.ObjectPrototype, ClassArray)
	r.StringPrototype = NewObject(r.ObjectPrototype)
	r.NumberPrototype = NewObject(r.ObjectPrototype)
	r.BooleanPrototype = NewObject(r.ObjectPrototype)

	r.GlobalObject = NewObject(r.ObjectPrototype)
	r.initialized = true
}

// PrototypeFor returns the object a property lookup on v starts from:
// the object itself, or the wrapper prototype for primitives. Undefined and
// null have none.
func (r *Realm) PrototypeFor(v Value) *PlainObject {
	switch v.Type() {
	case TypeObject:
		return v.obj
	case TypeString:
		return r.StringPrototype
	case TypeNumber:
		return r.NumberPrototype
	case TypeBoolean:
		return r.BooleanPrototype
	default:
		return nil
	}
}

// GetGlobal reads a global binding.
func (r *Realm) GetGlobal(name string) (Value, bool) {
	return r.GlobalObject.GetOwn(name)
}

// SetGlobal creates or overwrites a global binding.
func (r *Realm) SetGlobal(name string, value Value) {
	r.GlobalObject.SetOwn(name, value)
}
