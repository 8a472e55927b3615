package builtins

import (
	perrors "protochain/pkg/errors"
	"protochain/pkg/vm"
)

type ObjectInitializer struct{}

func (o *ObjectInitializer) Name() string {
	return "Object"
}

func (o *ObjectInitializer) Priority() int {
	return PriorityObject
}

func (o *ObjectInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	objectProto := ctx.ObjectPrototype

	method(m, objectProto, "hasOwnProperty", 1, func(m *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
		if !this.IsObject() {
			return vm.False, nil
		}
		return vm.BooleanValue(m.HasOwn(this.AsPlainObject(), args[0].ToString())), nil
	})
	method(m, objectProto, "isPrototypeOf", 1, func(m *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
		if !this.IsObject() || !args[0].IsObject() {
			return vm.False, nil
		}
		ok, err := m.IsPrototypeOf(this.AsPlainObject(), args[0].AsPlainObject())
		return vm.BooleanValue(ok), err
	})
	method(m, objectProto, "toString", 0, func(m *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return vm.NewString(objectTag(this)), nil
	})
	method(m, objectProto, "valueOf", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return this, nil
	})

	ctor, err := registerConstructor(ctx, "Object", nil, objectProto)
	if err != nil {
		return err
	}
	objectFn := ctor.Function().AsPlainObject()
	method(m, objectFn, "getPrototypeOf", 1, objectGetPrototypeOfImpl)
	method(m, objectFn, "setPrototypeOf", 2, objectSetPrototypeOfImpl)
	method(m, objectFn, "create", 1, objectCreateImpl)
	method(m, objectFn, "keys", 1, objectKeysImpl)
	method(m, objectFn, "freeze", 1, objectFreezeImpl)
	method(m, objectFn, "isFrozen", 1, func(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		if !args[0].IsObject() {
			return vm.True, nil
		}
		return vm.BooleanValue(m.IsFrozen(args[0].AsPlainObject())), nil
	})
	method(m, objectFn, "preventExtensions", 1, func(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		if args[0].IsObject() {
			m.PreventExtensions(args[0].AsPlainObject())
		}
		return args[0], nil
	})
	method(m, objectFn, "isExtensible", 1, func(_ *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		return vm.BooleanValue(args[0].IsObject() && args[0].AsPlainObject().IsExtensible()), nil
	})
	return nil
}

func objectTag(v vm.Value) string {
	switch {
	case v.IsUndefined():
		return "[object Undefined]"
	case v.IsNull():
		return "[object Null]"
	case v.IsArray():
		return "[object Array]"
	case v.IsCallable():
		return "[object Function]"
	case v.Type() == vm.TypeString:
		return "[object String]"
	case v.Type() == vm.TypeNumber:
		return "[object Number]"
	case v.Type() == vm.TypeBoolean:
		return "[object Boolean]"
	default:
		return "[object Object]"
	}
}

func objectGetPrototypeOfImpl(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
	start := m.Realm().PrototypeFor(args[0])
	if start == nil {
		return vm.Undefined, (&perrors.LookupError{Property: "[[Prototype]]", Msg: "Object.getPrototypeOf called on " + args[0].ToString()}).CausedBy(vm.ErrNotAnObject)
	}
	if !args[0].IsObject() {
		// a primitive's prototype is its wrapper prototype
		return vm.NewValueFromPlainObject(start), nil
	}
	return vm.NewValueFromPlainObject(m.GetPrototypeOf(start)), nil
}

func objectSetPrototypeOfImpl(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
	obj, err := thisObject("Object.setPrototypeOf", args[0])
	if err != nil {
		return vm.Undefined, err
	}
	var proto *vm.PlainObject
	switch {
	case args[1].IsObject():
		proto = args[1].AsPlainObject()
	case args[1].IsNull():
	default:
		return vm.Undefined, (&perrors.PropertyError{Property: "[[Prototype]]", Msg: "Object prototype may only be an Object or null"}).CausedBy(vm.ErrNotAnObject)
	}
	if err := m.SetPrototypeOf(obj, proto); err != nil {
		return vm.Undefined, err
	}
	return args[0], nil
}

func objectCreateImpl(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
	switch {
	case args[0].IsObject():
		return vm.NewValueFromPlainObject(m.NewObjectWithProto(args[0].AsPlainObject())), nil
	case args[0].IsNull():
		return vm.NewValueFromPlainObject(m.NewObjectWithProto(nil)), nil
	default:
		return vm.Undefined, (&perrors.PropertyError{Property: "[[Prototype]]", Msg: "Object prototype may only be an Object or null"}).CausedBy(vm.ErrNotAnObject)
	}
}

func objectKeysImpl(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
	obj, err := thisObject("Object.keys", args[0])
	if err != nil {
		return vm.Undefined, err
	}
	keys := m.OwnKeys(obj)
	elems := make([]vm.Value, len(keys))
	for i, k := range keys {
		elems[i] = vm.NewString(k)
	}
	return vm.NewValueFromPlainObject(m.NewArray(elems...)), nil
}

func objectFreezeImpl(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
	if args[0].IsObject() {
		m.Freeze(args[0].AsPlainObject())
	}
	return args[0], nil
}
