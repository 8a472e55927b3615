package vm

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	perrors "protochain/pkg/errors"
)

// ConstructorID identifies a registered constructor. It is the constructor's
// slot in the model's heap.
type ConstructorID int

// InitFunc initializes the own properties of a freshly created instance.
type InitFunc func(m *Model, this *PlainObject, args []Value) error

// Constructor binds an init routine to the prototype shared by its
// instances. The prototype is swapped only through Model.SetPrototype.
type Constructor struct {
	ID   ConstructorID
	Name string
	Init InitFunc

	function      *PlainObject
	prototype     *PlainObject // guarded by Model.mu
	instanceClass ObjectClass
}

// Function returns the function object standing for the constructor, the
// value a "constructor" back-link points at.
func (c *Constructor) Function() Value {
	return NewValueFromPlainObject(c.function)
}

// Model is the object model: a realm of built-in prototypes plus a registry
// of constructors. It is safe for concurrent use; every object guards its own
// properties and the registry is guarded by the model.
type Model struct {
	mu       sync.RWMutex
	realm    *Realm
	ctors    *Heap
	maxDepth int
	logger   *zap.Logger
	out      io.Writer
}

// Option configures a Model.
type Option func(*Model)

// WithMaxChainDepth bounds prototype chain walks.
func WithMaxChainDepth(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for model events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithOutput sets the writer console output goes to.
func WithOutput(w io.Writer) Option {
	return func(m *Model) {
		if w != nil {
			m.out = w
		}
	}
}

// NewModel creates a model with an empty realm. Use builtins.Install to
// populate the built-in prototypes.
func NewModel(opts ...Option) *Model {
	m := &Model{
		realm:    NewRealm(),
		ctors:    NewHeap(16),
		maxDepth: DefaultMaxChainDepth,
		logger:   zap.NewNop(),
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Realm() *Realm       { return m.realm }
func (m *Model) Output() io.Writer   { return m.out }
func (m *Model) Logger() *zap.Logger { return m.logger }
func (m *Model) MaxChainDepth() int  { return m.maxDepth }

// Global reads a binding from the realm's global object.
func (m *Model) Global(name string) (Value, bool) { return m.realm.GetGlobal(name) }

// NewFunction creates a function object inheriting from Function.prototype.
func (m *Model) NewFunction(name string, arity int, fn NativeFn) Value {
	f := newPlainObject(m.realm.FunctionPrototype, ClassFunction)
	f.fn = fn
	f.name = name
	f.arity = arity
	return NewValueFromPlainObject(f)
}

// NewObject creates an object inheriting from Object.prototype, i.e. new Object().
func (m *Model) NewObject() *PlainObject {
	return NewObject(m.realm.ObjectPrototype)
}

// NewObjectWithProto creates an object with the given prototype, i.e.
// Object.create(proto). A nil proto creates a root object.
func (m *Model) NewObjectWithProto(proto *PlainObject) *PlainObject {
	return NewObject(proto)
}

// NewArray creates an array inheriting from Array.prototype.
func (m *Model) NewArray(elems ...Value) *PlainObject {
	a := newPlainObject(m.realm.ArrayPrototype, ClassArray)
	a.elements = append(a.elements, elems...)
	return a
}

// Register adds a constructor with a fresh prototype whose "constructor"
// property points back at the constructor function.
func (m *Model) Register(name string, init InitFunc) (ConstructorID, error) {
	return m.RegisterWithPrototype(name, init, m.NewObject())
}

// RegisterWithPrototype adds a constructor whose instances inherit from
// proto. The "constructor" back-link is written onto proto. Instances of a
// constructor whose prototype is an array are arrays themselves.
func (m *Model) RegisterWithPrototype(name string, init InitFunc, proto *PlainObject) (ConstructorID, error) {
	if proto == nil {
		return 0, &perrors.ConstructorError{Constructor: name, Msg: "prototype must be an object", Cause: ErrNotAnObject}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.ctors.Lookup(name); exists {
		return 0, &perrors.ConstructorError{Constructor: name, Msg: "a constructor with this name is already registered", Cause: ErrDuplicateConstructor}
	}

	c := &Constructor{Name: name, Init: init, prototype: proto}
	if proto.class == ClassArray {
		c.instanceClass = ClassArray
	}
	fnName := name
	c.function = newPlainObject(m.realm.FunctionPrototype, ClassFunction)
	c.function.name = fnName
	c.function.fn = func(*Model, Value, []Value) (Value, error) {
		return Undefined, &perrors.CallError{Function: fnName, Msg: "class constructor cannot be invoked without 'new'", Cause: ErrCalledWithoutNew}
	}
	c.ID = ConstructorID(m.ctors.Append(c))
	proto.SetOwn("constructor", c.Function())

	m.logger.Debug("constructor registered", zap.String("name", name), zap.Int("id", int(c.ID)))
	return c.ID, nil
}

// ConstructorByName resolves a registered constructor name.
func (m *Model) ConstructorByName(name string) (ConstructorID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.ctors.Lookup(name)
	return ConstructorID(idx), ok
}

// Constructor returns the constructor record for id.
func (m *Model) Constructor(id ConstructorID) (*Constructor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.constructorLocked(id)
}

func (m *Model) constructorLocked(id ConstructorID) (*Constructor, error) {
	c, ok := m.ctors.Get(int(id))
	if !ok {
		return nil, &perrors.ConstructorError{Constructor: fmt.Sprintf("#%d", id), Msg: "no constructor registered with this id", Cause: ErrUnknownConstructor}
	}
	return c, nil
}

// Constructors lists every registered constructor in registration order.
func (m *Model) Constructors() []*Constructor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ctors.Constructors()
}

// Prototype returns the prototype new instances of id currently receive.
func (m *Model) Prototype(id ConstructorID) (*PlainObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.constructorLocked(id)
	if err != nil {
		return nil, err
	}
	return c.prototype, nil
}

// Create allocates a new instance of id and runs its init routine against
// it. The instance's prototype is the constructor's prototype at the time of
// the call.
func (m *Model) Create(id ConstructorID, args ...Value) (*PlainObject, error) {
	m.mu.RLock()
	c, err := m.constructorLocked(id)
	var proto *PlainObject
	if err == nil {
		proto = c.prototype
	}
	m.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	inst := newPlainObject(proto, c.instanceClass)
	if c.Init != nil {
		if err := c.Init(m, inst, args); err != nil {
			return nil, &perrors.ConstructorError{Constructor: c.Name, Msg: "init failed", Cause: err}
		}
	}
	return inst, nil
}

// SetPrototype replaces the prototype used for future instances of id.
// Existing instances keep their prototype, and no "constructor" back-link is
// written onto proto.
func (m *Model) SetPrototype(id ConstructorID, proto *PlainObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.constructorLocked(id)
	if err != nil {
		return err
	}
	if proto == nil {
		return &perrors.ConstructorError{Constructor: c.Name, Msg: "prototype must be an object", Cause: ErrNotAnObject}
	}
	c.prototype = proto
	m.logger.Debug("prototype replaced", zap.String("constructor", c.Name), zap.Bool("backlink", proto.HasOwn("constructor")))
	return nil
}

// ExtendPrototype sets an own property on the live prototype of id. Every
// existing and future instance that does not shadow name observes it.
func (m *Model) ExtendPrototype(id ConstructorID, name string, value Value) error {
	proto, err := m.Prototype(id)
	if err != nil {
		return err
	}
	if err := m.SetProperty(proto, name, value); err != nil {
		return err
	}
	m.logger.Debug("prototype extended", zap.Int("constructor", int(id)), zap.String("property", name))
	return nil
}

// IsInstanceOf reports whether the current prototype of id appears anywhere
// on obj's prototype chain.
func (m *Model) IsInstanceOf(obj *PlainObject, id ConstructorID) (bool, error) {
	proto, err := m.Prototype(id)
	if err != nil {
		return false, err
	}
	return m.IsPrototypeOf(proto, obj)
}
