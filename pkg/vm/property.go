package vm

import (
	perrors "protochain/pkg/errors"
)

// SetProperty defines name as an own property of obj, shadowing any
// property of the same name further up the chain. Prototypes are never
// written through.
func (m *Model) SetProperty(obj *PlainObject, name string, value Value) error {
	if obj == nil {
		return &perrors.PropertyError{Property: name, Msg: "cannot set properties of null", Cause: ErrNotAnObject}
	}
	obj.mu.Lock()
	defer obj.mu.Unlock()
	_, exists := obj.props[name]
	switch {
	case obj.frozen && exists:
		return &perrors.PropertyError{Property: name, Msg: "cannot assign to read only property", Cause: ErrReadOnly}
	case !obj.extensible && !exists:
		return &perrors.PropertyError{Property: name, Msg: "cannot add property, object is not extensible", Cause: ErrNotExtensible}
	}
	obj.setOwnLocked(name, value)
	return nil
}

// DeleteProperty removes an own property. Inherited properties are untouched.
func (m *Model) DeleteProperty(obj *PlainObject, name string) error {
	if obj == nil {
		return &perrors.PropertyError{Property: name, Msg: "cannot delete properties of null", Cause: ErrNotAnObject}
	}
	if obj.IsFrozen() && obj.HasOwn(name) {
		return &perrors.PropertyError{Property: name, Msg: "cannot delete property of a frozen object", Cause: ErrReadOnly}
	}
	obj.DeleteOwn(name)
	return nil
}

// OwnKeys returns obj's own property names in insertion order.
func (m *Model) OwnKeys(obj *PlainObject) []string {
	if obj == nil {
		return nil
	}
	return obj.OwnKeys()
}

// Freeze makes obj's own properties read-only and stops new ones from being
// added. The prototype chain stays mutable.
func (m *Model) Freeze(obj *PlainObject) {
	if obj == nil {
		return
	}
	obj.mu.Lock()
	obj.frozen = true
	obj.extensible = false
	obj.mu.Unlock()
}

// PreventExtensions stops new own properties from being added to obj.
func (m *Model) PreventExtensions(obj *PlainObject) {
	if obj == nil {
		return
	}
	obj.mu.Lock()
	obj.extensible = false
	obj.mu.Unlock()
}

// IsFrozen reports whether obj was frozen.
func (m *Model) IsFrozen(obj *PlainObject) bool {
	return obj != nil && obj.IsFrozen()
}
