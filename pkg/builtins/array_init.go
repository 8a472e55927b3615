package builtins

import (
	"errors"
	"strings"

	perrors "protochain/pkg/errors"
	"protochain/pkg/vm"
)

var errEmptyReduce = errors.New("Reduce of empty array with no initial value")

type ArrayInitializer struct{}

func (a *ArrayInitializer) Name() string {
	return "Array"
}

func (a *ArrayInitializer) Priority() int {
	return PriorityArray
}

func (a *ArrayInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	arrayProto := ctx.ArrayPrototype

	method(m, arrayProto, "push", 1, arrayPushImpl)
	method(m, arrayProto, "pop", 0, arrayPopImpl)
	method(m, arrayProto, "reduce", 1, arrayReduceImpl)
	j := &arrayJoiner{}
	method(m, arrayProto, "join", 1, j.joinImpl)
	method(m, arrayProto, "indexOf", 1, arrayIndexOfImpl)
	j.toString = m.NewFunction("toString", 0, func(m *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return j.joinImpl(m, this, []vm.Value{vm.Undefined})
	})
	arrayProto.SetOwn("toString", j.toString)

	// new Array(a, b, c) collects its arguments
	ctor, err := registerConstructor(ctx, "Array", func(_ *vm.Model, this *vm.PlainObject, args []vm.Value) error {
		this.Push(args...)
		return nil
	}, arrayProto)
	if err != nil {
		return err
	}
	method(m, ctor.Function().AsPlainObject(), "isArray", 1, func(_ *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		return vm.BooleanValue(args[0].IsArray()), nil
	})
	return nil
}

func thisArray(fnName string, this vm.Value) (*vm.PlainObject, error) {
	if !this.IsArray() {
		return nil, (&perrors.CallError{Function: "Array.prototype." + fnName, Msg: "called on " + this.TypeOf()}).CausedBy(vm.ErrNotAnObject)
	}
	return this.AsPlainObject(), nil
}

func arrayPushImpl(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	arr, err := thisArray("push", this)
	if err != nil {
		return vm.Undefined, err
	}
	if !arr.IsExtensible() {
		return vm.Undefined, (&perrors.PropertyError{Property: "length", Msg: "cannot add elements, array is not extensible"}).CausedBy(vm.ErrNotExtensible)
	}
	return vm.NumberValue(float64(arr.Push(args...))), nil
}

func arrayPopImpl(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
	arr, err := thisArray("pop", this)
	if err != nil {
		return vm.Undefined, err
	}
	if arr.IsFrozen() {
		return vm.Undefined, (&perrors.PropertyError{Property: "length", Msg: "cannot remove elements from a frozen array"}).CausedBy(vm.ErrReadOnly)
	}
	last, _ := arr.Pop()
	return last, nil
}

// arrayReduceImpl implements reduce(callback, initialValue?)
func arrayReduceImpl(m *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	arr, err := thisArray("reduce", this)
	if err != nil {
		return vm.Undefined, err
	}
	callback := args[0]
	if !callback.IsCallable() {
		return vm.Undefined, (&perrors.CallError{Function: "Array.prototype.reduce", Msg: callback.Inspect() + " is not a function"}).CausedBy(vm.ErrNotCallable)
	}
	elems := arr.Elements()
	start := 0
	var acc vm.Value
	switch {
	case len(args) > 1:
		acc = args[1]
	case len(elems) == 0:
		return vm.Undefined, errEmptyReduce
	default:
		acc = elems[0]
		start = 1
	}
	for i := start; i < len(elems); i++ {
		acc, err = m.Call(callback, vm.Undefined, acc, elems[i], vm.NumberValue(float64(i)), this)
		if err != nil {
			return vm.Undefined, err
		}
	}
	return acc, nil
}

// arrayJoiner joins elements, descending into nested arrays directly while
// they still use the builtin toString so that an array containing itself
// renders the inner reference as "".
type arrayJoiner struct {
	toString vm.Value
}

func (j *arrayJoiner) joinImpl(m *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	arr, err := thisArray("join", this)
	if err != nil {
		return vm.Undefined, err
	}
	sep := ","
	if !args[0].IsUndefined() {
		sep = args[0].ToString()
	}
	s, err := j.join(m, arr, sep, map[*vm.PlainObject]bool{})
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NewString(s), nil
}

func (j *arrayJoiner) join(m *vm.Model, arr *vm.PlainObject, sep string, seen map[*vm.PlainObject]bool) (string, error) {
	seen[arr] = true
	defer delete(seen, arr)
	elems := arr.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		if e.IsUndefined() || e.IsNull() {
			continue
		}
		if !e.IsArray() {
			s, err := m.ToString(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
			continue
		}
		inner := e.AsPlainObject()
		if seen[inner] {
			continue
		}
		method, _, err := m.GetProperty(inner, "toString")
		if err != nil {
			return "", err
		}
		if method.StrictEquals(j.toString) {
			parts[i], err = j.join(m, inner, ",", seen)
		} else {
			parts[i], err = m.ToString(e)
		}
		if err != nil {
			return "", err
		}
	}
	return strings.Join(parts, sep), nil
}

func arrayIndexOfImpl(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	arr, err := thisArray("indexOf", this)
	if err != nil {
		return vm.Undefined, err
	}
	for i, e := range arr.Elements() {
		if e.StrictEquals(args[0]) {
			return vm.NumberValue(float64(i)), nil
		}
	}
	return vm.NumberValue(-1), nil
}
