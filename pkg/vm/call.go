package vm

import (
	perrors "protochain/pkg/errors"
)

// Call invokes a function value with the given receiver.
func (m *Model) Call(callee Value, this Value, args ...Value) (Value, error) {
	if !callee.IsCallable() {
		return Undefined, &perrors.CallError{Function: callee.Inspect(), Msg: "value is not a function", Cause: ErrNotCallable}
	}
	fn := callee.obj
	if fn.fn == nil {
		return Undefined, nil
	}
	// Pad missing arguments with undefined so natives can index freely
	if len(args) < fn.arity {
		padded := make([]Value, fn.arity)
		copy(padded, args)
		args = padded
	}
	return fn.fn(m, this, args)
}

// Invoke looks up name on receiver (through its prototype chain, or its
// wrapper prototype for primitives) and calls it with this bound to the
// receiver.
func (m *Model) Invoke(receiver Value, name string, args ...Value) (Value, error) {
	method, ok, err := m.GetValueProperty(receiver, name)
	if err != nil {
		return Undefined, err
	}
	if !ok {
		return Undefined, &perrors.CallError{Function: name, Msg: receiver.TypeOf() + " has no method " + name, Cause: ErrNotCallable}
	}
	if !method.IsCallable() {
		return Undefined, &perrors.CallError{Function: name, Msg: "property is not a function", Cause: ErrNotCallable}
	}
	return m.Call(method, receiver, args...)
}

// ToString converts v to a string, calling a toString method found on the
// chain of an object.
func (m *Model) ToString(v Value) (string, error) {
	if !v.IsObject() {
		return v.ToString(), nil
	}
	method, ok, err := m.GetProperty(v.obj, "toString")
	if err != nil {
		return "", err
	}
	if !ok || !method.IsCallable() {
		return v.ToString(), nil
	}
	res, err := m.Call(method, v)
	if err != nil {
		return "", err
	}
	return res.ToString(), nil
}
