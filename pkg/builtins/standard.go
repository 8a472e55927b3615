package builtins

import (
	"sort"

	"go.uber.org/zap"

	perrors "protochain/pkg/errors"
	"protochain/pkg/vm"
)

// GetStandardInitializers returns all built-in initializers sorted by priority
func GetStandardInitializers() []BuiltinInitializer {
	initializers := []BuiltinInitializer{
		&ObjectInitializer{},
		&FunctionInitializer{},
		&ArrayInitializer{},
		&StringInitializer{},
		&NumberInitializer{},
		&BooleanInitializer{},
		&ConsoleInitializer{},
	}

	// Sort by priority (lower numbers first)
	sort.SliceStable(initializers, func(i, j int) bool {
		return initializers[i].Priority() < initializers[j].Priority()
	})

	return initializers
}

// Install runs the standard initializers against m.
func Install(m *vm.Model) error {
	realm := m.Realm()
	ctx := &RuntimeContext{
		Model: m,
		DefineGlobal: func(name string, value vm.Value) error {
			if _, exists := realm.GetGlobal(name); exists {
				return (&perrors.ConstructorError{Constructor: name, Msg: "global already defined"}).CausedBy(vm.ErrDuplicateConstructor)
			}
			realm.SetGlobal(name, value)
			return nil
		},
		ObjectPrototype:   realm.ObjectPrototype,
		FunctionPrototype: realm.FunctionPrototype,
		ArrayPrototype:    realm.ArrayPrototype,
		StringPrototype:   realm.StringPrototype,
		NumberPrototype:   realm.NumberPrototype,
		BooleanPrototype:  realm.BooleanPrototype,
	}
	for _, init := range GetStandardInitializers() {
		if err := init.InitRuntime(ctx); err != nil {
			return (&perrors.ConstructorError{Constructor: init.Name(), Msg: "builtin initialization failed"}).CausedBy(err)
		}
		m.Logger().Debug("builtin installed", zap.String("name", init.Name()))
	}
	return nil
}

// NewModel creates a model with every standard builtin installed.
func NewModel(opts ...vm.Option) (*vm.Model, error) {
	m := vm.NewModel(opts...)
	if err := Install(m); err != nil {
		return nil, err
	}
	return m, nil
}

// registerConstructor registers a builtin constructor on proto and exposes
// its function as a global.
func registerConstructor(ctx *RuntimeContext, name string, init vm.InitFunc, proto *vm.PlainObject) (*vm.Constructor, error) {
	id, err := ctx.Model.RegisterWithPrototype(name, init, proto)
	if err != nil {
		return nil, err
	}
	c, err := ctx.Model.Constructor(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.DefineGlobal(name, c.Function()); err != nil {
		return nil, err
	}
	return c, nil
}

// method is shorthand for installing a native method on an object.
func method(m *vm.Model, target *vm.PlainObject, name string, arity int, fn vm.NativeFn) {
	target.SetOwn(name, m.NewFunction(name, arity, fn))
}

// thisObject returns the receiver as an object or a TypeError-style error.
func thisObject(fnName string, this vm.Value) (*vm.PlainObject, error) {
	if !this.IsObject() {
		return nil, (&perrors.CallError{Function: fnName, Msg: "called on non-object " + this.TypeOf()}).CausedBy(vm.ErrNotAnObject)
	}
	return this.AsPlainObject(), nil
}
