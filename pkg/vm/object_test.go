package vm

import (
	"testing"
)

func TestPlainObjectBasic(t *testing.T) {
	po := NewObject(nil)
	// No properties initially
	if po.HasOwn("foo") {
		t.Errorf("expected HasOwn(\"foo\") to be false on new object")
	}
	if v, ok := po.GetOwn("foo"); ok {
		t.Errorf("expected GetOwn(\"foo\") ok=false, got ok=true, v=%v", v)
	}
	// Define a property
	po.SetOwn("foo", NumberValue(42))
	if !po.HasOwn("foo") {
		t.Errorf("expected HasOwn(\"foo\") true after SetOwn")
	}
	v, ok := po.GetOwn("foo")
	if !ok {
		t.Fatalf("expected GetOwn(\"foo\") ok=true after SetOwn")
	}
	if v.AsNumber() != 42 {
		t.Errorf("expected GetOwn to return 42, got %v", v.AsNumber())
	}
	// Overwrite existing property
	po.SetOwn("foo", NumberValue(7))
	v2, ok2 := po.GetOwn("foo")
	if !ok2 || v2.AsNumber() != 7 {
		t.Errorf("expected overwritten value 7, got %v (ok=%v)", v2, ok2)
	}
	// OwnKeys should list "foo"
	keys := po.OwnKeys()
	if len(keys) != 1 || keys[0] != "foo" {
		t.Errorf("OwnKeys mismatch, expected [foo], got %v", keys)
	}
}

func TestPlainObjectKeyOrder(t *testing.T) {
	po := NewObject(nil)
	po.SetOwn("b", NumberValue(1))
	po.SetOwn("a", NumberValue(2))
	// redefining keeps the original position
	po.SetOwn("b", NumberValue(3))
	keys := po.OwnKeys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("OwnKeys order mismatch, expected [b a], got %v", keys)
	}

	if !po.DeleteOwn("b") {
		t.Errorf("expected DeleteOwn(\"b\") to return true")
	}
	if po.DeleteOwn("b") {
		t.Errorf("expected DeleteOwn(\"b\") false when property absent")
	}
	keys = po.OwnKeys()
	if len(keys) != 1 || keys[0] != "a" {
		t.Errorf("OwnKeys after delete, expected [a], got %v", keys)
	}
}

func TestPlainObjectStoredUndefined(t *testing.T) {
	po := NewObject(nil)
	po.SetOwn("nothing", Undefined)
	v, ok := po.GetOwn("nothing")
	if !ok {
		t.Fatalf("expected stored undefined to be reported as present")
	}
	if !v.IsUndefined() {
		t.Errorf("expected undefined, got %v", v.Inspect())
	}
}

func TestArrayObject(t *testing.T) {
	m := NewModel()
	arr := m.NewArray(NewString("a"))
	if arr.Class() != ClassArray {
		t.Fatalf("expected array class")
	}
	if n := arr.Push(NewString("b"), NewString("c")); n != 3 {
		t.Errorf("expected length 3 after push, got %d", n)
	}
	length, ok := arr.GetOwn("length")
	if !ok || length.AsNumber() != 3 {
		t.Errorf("expected length property 3, got %v (ok=%v)", length, ok)
	}
	if arr.Prototype() != m.Realm().ArrayPrototype {
		t.Errorf("expected array to inherit from Array.prototype")
	}
}
