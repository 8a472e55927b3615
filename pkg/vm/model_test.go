package vm

import (
	"errors"
	"sync"
	"testing"
)

func personInit(m *Model, this *PlainObject, args []Value) error {
	return m.SetProperty(this, "name", args[0])
}

func newPersonModel(t *testing.T) (*Model, ConstructorID) {
	t.Helper()
	m := NewModel()
	person, err := m.Register("Person", personInit)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return m, person
}

func mustCreate(t *testing.T, m *Model, id ConstructorID, args ...Value) *PlainObject {
	t.Helper()
	obj, err := m.Create(id, args...)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return obj
}

func mustGet(t *testing.T, m *Model, obj *PlainObject, name string) Value {
	t.Helper()
	v, ok, err := m.GetProperty(obj, name)
	if err != nil {
		t.Fatalf("GetProperty(%q) failed: %v", name, err)
	}
	if !ok {
		t.Fatalf("expected property %q to be found", name)
	}
	return v
}

func TestCreateIsInstanceOf(t *testing.T) {
	m, person := newPersonModel(t)
	other, _ := m.Register("Book", nil)

	p1 := mustCreate(t, m, person, NewString("A"))
	p2 := mustCreate(t, m, person, NewString("B"))

	for _, p := range []*PlainObject{p1, p2} {
		ok, err := m.IsInstanceOf(p, person)
		if err != nil || !ok {
			t.Errorf("expected instance of Person, got %v (err=%v)", ok, err)
		}
		ok, err = m.IsInstanceOf(p, other)
		if err != nil || ok {
			t.Errorf("expected not an instance of Book, got %v (err=%v)", ok, err)
		}
	}

	if got := mustGet(t, m, p1, "name").AsString(); got != "A" {
		t.Errorf("expected name A, got %q", got)
	}
	if got := mustGet(t, m, p2, "name").AsString(); got != "B" {
		t.Errorf("expected name B, got %q", got)
	}
	if !m.HasOwn(p1, "name") {
		t.Errorf("expected name to be an own property")
	}
}

func TestCreateUnknownConstructor(t *testing.T) {
	m := NewModel()
	_, err := m.Create(ConstructorID(42))
	if !errors.Is(err, ErrUnknownConstructor) {
		t.Fatalf("expected ErrUnknownConstructor, got %v", err)
	}
	if _, err := m.IsInstanceOf(m.NewObject(), ConstructorID(-1)); !errors.Is(err, ErrUnknownConstructor) {
		t.Errorf("expected ErrUnknownConstructor from IsInstanceOf, got %v", err)
	}
}

func TestRegisterDuplicateConstructor(t *testing.T) {
	m, _ := newPersonModel(t)
	if _, err := m.Register("Person", nil); !errors.Is(err, ErrDuplicateConstructor) {
		t.Errorf("expected ErrDuplicateConstructor, got %v", err)
	}
	id, ok := m.ConstructorByName("Person")
	if !ok {
		t.Fatalf("expected Person to resolve by name")
	}
	c, err := m.Constructor(id)
	if err != nil || c.Name != "Person" {
		t.Errorf("expected Person constructor, got %v (err=%v)", c, err)
	}
}

func TestInitErrorIsWrapped(t *testing.T) {
	m := NewModel()
	boom := errors.New("boom")
	id, _ := m.Register("Broken", func(*Model, *PlainObject, []Value) error { return boom })
	if _, err := m.Create(id); !errors.Is(err, boom) {
		t.Errorf("expected init error to be wrapped, got %v", err)
	}
}

func TestConstructorBackLink(t *testing.T) {
	m, person := newPersonModel(t)
	c, _ := m.Constructor(person)
	p := mustCreate(t, m, person, NewString("A"))

	ctor := mustGet(t, m, p, "constructor")
	if !ctor.StrictEquals(c.Function()) {
		t.Errorf("expected constructor to be Person, got %v", ctor.Inspect())
	}
	if m.HasOwn(p, "constructor") {
		t.Errorf("constructor should be inherited, not own")
	}
	if ctor.Inspect() != "[Function: Person]" {
		t.Errorf("unexpected constructor display %q", ctor.Inspect())
	}
}

func TestSetPropertyShadows(t *testing.T) {
	m, person := newPersonModel(t)
	if err := m.ExtendPrototype(person, "x", NumberValue(1)); err != nil {
		t.Fatalf("ExtendPrototype failed: %v", err)
	}
	p1 := mustCreate(t, m, person, NewString("A"))
	p2 := mustCreate(t, m, person, NewString("B"))

	if err := m.SetProperty(p1, "x", NumberValue(2)); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	if got := mustGet(t, m, p1, "x").AsNumber(); got != 2 {
		t.Errorf("expected shadowed value 2, got %v", got)
	}
	// the prototype was not written through
	if got := mustGet(t, m, p2, "x").AsNumber(); got != 1 {
		t.Errorf("expected p2 to still see 1, got %v", got)
	}
	proto, _ := m.Prototype(person)
	if v, _ := proto.GetOwn("x"); v.AsNumber() != 1 {
		t.Errorf("expected prototype value 1, got %v", v.Inspect())
	}

	res, err := m.Lookup(p1, "x")
	if err != nil || res.Depth != 0 || res.Holder != p1 {
		t.Errorf("expected own hit at depth 0, got %+v (err=%v)", res, err)
	}
	res, err = m.Lookup(p2, "x")
	if err != nil || res.Depth != 1 || res.Holder != proto {
		t.Errorf("expected prototype hit at depth 1, got %+v (err=%v)", res, err)
	}
}

func TestExtendPrototypeIsRetroactive(t *testing.T) {
	m, person := newPersonModel(t)
	before := mustCreate(t, m, person, NewString("A"))
	shadowed := mustCreate(t, m, person, NewString("B"))
	m.SetProperty(shadowed, "greeting", NewString("own"))

	if ok, _ := m.Has(before, "greeting"); ok {
		t.Fatalf("greeting should not exist yet")
	}
	if err := m.ExtendPrototype(person, "greeting", NewString("hi")); err != nil {
		t.Fatalf("ExtendPrototype failed: %v", err)
	}
	after := mustCreate(t, m, person, NewString("C"))

	for _, p := range []*PlainObject{before, after} {
		if got := mustGet(t, m, p, "greeting").AsString(); got != "hi" {
			t.Errorf("expected hi, got %q", got)
		}
	}
	if got := mustGet(t, m, shadowed, "greeting").AsString(); got != "own" {
		t.Errorf("expected shadowing own value, got %q", got)
	}
}

func TestSetPrototypeOnlyAffectsFutureInstances(t *testing.T) {
	m, person := newPersonModel(t)
	m.ExtendPrototype(person, "kind", NewString("old"))
	before := mustCreate(t, m, person, NewString("A"))

	replacement := m.NewObject()
	replacement.SetOwn("kind", NewString("new"))
	if err := m.SetPrototype(person, replacement); err != nil {
		t.Fatalf("SetPrototype failed: %v", err)
	}
	after := mustCreate(t, m, person, NewString("B"))

	if got := mustGet(t, m, before, "kind").AsString(); got != "old" {
		t.Errorf("expected old instance to keep old prototype, got %q", got)
	}
	if got := mustGet(t, m, after, "kind").AsString(); got != "new" {
		t.Errorf("expected new instance to use new prototype, got %q", got)
	}

	// instanceof follows the constructor's current prototype
	if ok, _ := m.IsInstanceOf(after, person); !ok {
		t.Errorf("expected new instance to be instanceof Person")
	}
	if ok, _ := m.IsInstanceOf(before, person); ok {
		t.Errorf("expected old instance to no longer be instanceof Person")
	}
}

func TestSetPrototypeDoesNotRestoreBackLink(t *testing.T) {
	m, person := newPersonModel(t)
	objectCtor, err := m.RegisterWithPrototype("Object", nil, m.Realm().ObjectPrototype)
	if err != nil {
		t.Fatalf("RegisterWithPrototype failed: %v", err)
	}
	obj, _ := m.Constructor(objectCtor)
	pc, _ := m.Constructor(person)

	m.SetPrototype(person, m.NewObject())
	p := mustCreate(t, m, person, NewString("A"))
	if ctor := mustGet(t, m, p, "constructor"); !ctor.StrictEquals(obj.Function()) {
		t.Errorf("expected constructor to fall through to Object, got %v", ctor.Inspect())
	}

	fixed := m.NewObject()
	fixed.SetOwn("constructor", pc.Function())
	m.SetPrototype(person, fixed)
	p = mustCreate(t, m, person, NewString("B"))
	if ctor := mustGet(t, m, p, "constructor"); !ctor.StrictEquals(pc.Function()) {
		t.Errorf("expected re-established back-link to Person, got %v", ctor.Inspect())
	}
}

func TestSharedMutableContainer(t *testing.T) {
	m, person := newPersonModel(t)
	m.ExtendPrototype(person, "favorites", NewValueFromPlainObject(m.NewArray()))
	p1 := mustCreate(t, m, person, NewString("A"))
	p2 := mustCreate(t, m, person, NewString("B"))

	mustGet(t, m, p1, "favorites").AsPlainObject().Push(NewString("Pizza"))
	mustGet(t, m, p2, "favorites").AsPlainObject().Push(NewString("Burgers"))

	got := mustGet(t, m, p2, "favorites").Inspect()
	if got != "[ 'Pizza', 'Burgers' ]" {
		t.Errorf("expected both pushes to be visible, got %s", got)
	}
	if m.HasOwn(p1, "favorites") || m.HasOwn(p2, "favorites") {
		t.Errorf("favorites should stay inherited")
	}
}

func TestHasInherited(t *testing.T) {
	m, person := newPersonModel(t)
	m.SetProperty(m.Realm().ObjectPrototype, "toString", m.NewFunction("toString", 0, func(*Model, Value, []Value) (Value, error) {
		return NewString("[object Object]"), nil
	}))
	p := mustCreate(t, m, person, NewString("A"))

	if ok, err := m.HasInherited(p, "toString"); err != nil || !ok {
		t.Errorf("expected toString to be inherited, got %v (err=%v)", ok, err)
	}
	if ok, _ := m.HasInherited(p, "name"); ok {
		t.Errorf("name is own, not inherited")
	}
	if ok, _ := m.HasInherited(p, "missing"); ok {
		t.Errorf("missing property is neither own nor inherited")
	}
	res, _ := m.Lookup(p, "toString")
	if res.Depth != 2 {
		t.Errorf("expected toString two levels up, got depth %d", res.Depth)
	}
}

func TestNotFoundIsDistinctFromUndefined(t *testing.T) {
	m, person := newPersonModel(t)
	p := mustCreate(t, m, person, Undefined)

	v, ok, err := m.GetProperty(p, "name")
	if err != nil || !ok || !v.IsUndefined() {
		t.Errorf("expected stored undefined, got %v ok=%v err=%v", v, ok, err)
	}
	_, ok, err = m.GetProperty(p, "age")
	if err != nil || ok {
		t.Errorf("expected not found, got ok=%v err=%v", ok, err)
	}
}

func TestCyclicChainDetected(t *testing.T) {
	m := NewModel()
	a := NewObject(nil)
	b := NewObject(a)
	// bypass SetPrototypeOf to build the broken chain directly
	a.prototype = b

	_, _, err := m.GetProperty(a, "missing")
	if !errors.Is(err, ErrCyclicPrototypeChain) {
		t.Fatalf("expected ErrCyclicPrototypeChain, got %v", err)
	}
	if _, err := m.IsPrototypeOf(NewObject(nil), b); !errors.Is(err, ErrCyclicPrototypeChain) {
		t.Errorf("expected IsPrototypeOf to detect the cycle, got %v", err)
	}
}

func TestSetPrototypeOfRejectsCycle(t *testing.T) {
	m := NewModel()
	a := m.NewObject()
	b := m.NewObjectWithProto(a)
	c := m.NewObjectWithProto(b)

	if err := m.SetPrototypeOf(a, c); !errors.Is(err, ErrCyclicPrototypeChain) {
		t.Errorf("expected cycle to be rejected, got %v", err)
	}
	if err := m.SetPrototypeOf(a, a); !errors.Is(err, ErrCyclicPrototypeChain) {
		t.Errorf("expected self link to be rejected, got %v", err)
	}
	if err := m.SetPrototypeOf(c, a); err != nil {
		t.Errorf("expected acyclic relink to succeed, got %v", err)
	}
	if m.GetPrototypeOf(c) != a {
		t.Errorf("expected c to link to a")
	}
	if ok, _ := m.IsPrototypeOf(m.Realm().ObjectPrototype, c); !ok {
		t.Errorf("expected Object.prototype on the chain of c")
	}
}

func TestMaxChainDepth(t *testing.T) {
	m := NewModel(WithMaxChainDepth(3))
	obj := NewObject(nil)
	obj.SetOwn("deep", True)
	for i := 0; i < 5; i++ {
		obj = NewObject(obj)
	}
	if _, _, err := m.GetProperty(obj, "deep"); !errors.Is(err, ErrCyclicPrototypeChain) {
		t.Errorf("expected depth limit to trip, got %v", err)
	}

	m = NewModel(WithMaxChainDepth(10))
	if v, ok, err := m.GetProperty(obj, "deep"); err != nil || !ok || !v.AsBoolean() {
		t.Errorf("expected deep lookup to succeed, got %v ok=%v err=%v", v, ok, err)
	}
	if m.MaxChainDepth() != 10 {
		t.Errorf("expected MaxChainDepth 10, got %d", m.MaxChainDepth())
	}
	if got := NewModel(WithMaxChainDepth(0)).MaxChainDepth(); got != DefaultMaxChainDepth {
		t.Errorf("expected non-positive depth to keep the default %d, got %d", DefaultMaxChainDepth, got)
	}
}

func TestSubclassViaRegisterWithPrototype(t *testing.T) {
	m, person := newPersonModel(t)
	personProto, err := m.Prototype(person)
	if err != nil {
		t.Fatalf("Prototype failed: %v", err)
	}
	m.ExtendPrototype(person, "greet", NewString("hello"))

	employee, err := m.RegisterWithPrototype("Employee", func(m *Model, this *PlainObject, args []Value) error {
		if err := personInit(m, this, args); err != nil {
			return err
		}
		return m.SetProperty(this, "title", args[1])
	}, m.NewObjectWithProto(personProto))
	if err != nil {
		t.Fatalf("RegisterWithPrototype failed: %v", err)
	}

	e := mustCreate(t, m, employee, NewString("Ada"), NewString("engineer"))
	for _, id := range []ConstructorID{person, employee} {
		if ok, err := m.IsInstanceOf(e, id); err != nil || !ok {
			t.Errorf("expected employee to be an instance of constructor %d, got %v (err=%v)", id, ok, err)
		}
	}
	p := mustCreate(t, m, person, NewString("Bob"))
	if ok, _ := m.IsInstanceOf(p, employee); ok {
		t.Errorf("a plain Person must not be an Employee")
	}

	if got := mustGet(t, m, e, "greet").AsString(); got != "hello" {
		t.Errorf("expected greet inherited from Person.prototype, got %s", got)
	}
	if !m.HasOwn(e, "title") || !m.HasOwn(e, "name") {
		t.Errorf("expected name and title to be own properties")
	}

	m.ExtendPrototype(person, "species", NewString("human"))
	if got := mustGet(t, m, e, "species").AsString(); got != "human" {
		t.Errorf("expected Person.prototype extension to reach employees, got %s", got)
	}
}

func TestFreezeKeepsPrototypeMutable(t *testing.T) {
	m, person := newPersonModel(t)
	p := mustCreate(t, m, person, NewString("A"))
	m.Freeze(p)

	if err := m.SetProperty(p, "name", NewString("B")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := m.SetProperty(p, "age", NumberValue(3)); !errors.Is(err, ErrNotExtensible) {
		t.Errorf("expected ErrNotExtensible, got %v", err)
	}
	if err := m.DeleteProperty(p, "name"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected delete to be rejected, got %v", err)
	}
	if err := m.ExtendPrototype(person, "age", NumberValue(3)); err != nil {
		t.Fatalf("ExtendPrototype failed: %v", err)
	}
	if got := mustGet(t, m, p, "age").AsNumber(); got != 3 {
		t.Errorf("expected frozen instance to see prototype addition, got %v", got)
	}
	if !m.IsFrozen(p) {
		t.Errorf("expected IsFrozen to report true")
	}
}

func TestInvokeBindsReceiver(t *testing.T) {
	m, person := newPersonModel(t)
	m.ExtendPrototype(person, "sayName", m.NewFunction("sayName", 0, func(m *Model, this Value, _ []Value) (Value, error) {
		v, _, err := m.GetProperty(this.AsPlainObject(), "name")
		return v, err
	}))
	p1 := mustCreate(t, m, person, NewString("A"))
	p2 := mustCreate(t, m, person, NewString("B"))

	for want, p := range map[string]*PlainObject{"A": p1, "B": p2} {
		got, err := m.Invoke(NewValueFromPlainObject(p), "sayName")
		if err != nil || got.AsString() != want {
			t.Errorf("expected %s, got %v (err=%v)", want, got, err)
		}
	}

	if _, err := m.Invoke(NewValueFromPlainObject(p1), "name"); !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable for a non-function, got %v", err)
	}
	if _, err := m.Invoke(NewValueFromPlainObject(p1), "missing"); !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable for a missing method, got %v", err)
	}
	if _, err := m.Invoke(Undefined, "sayName"); !errors.Is(err, ErrNotAnObject) {
		t.Errorf("expected ErrNotAnObject on undefined, got %v", err)
	}
}

func TestConstructorCalledWithoutNew(t *testing.T) {
	m, person := newPersonModel(t)
	c, _ := m.Constructor(person)
	if _, err := m.Call(c.Function(), Undefined, NewString("A")); !errors.Is(err, ErrCalledWithoutNew) {
		t.Errorf("expected ErrCalledWithoutNew, got %v", err)
	}
}

func TestConcurrentExtendAndRead(t *testing.T) {
	m, person := newPersonModel(t)
	instances := make([]*PlainObject, 8)
	for i := range instances {
		instances[i] = mustCreate(t, m, person, NumberValue(float64(i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.ExtendPrototype(person, "counter", NumberValue(float64(i)))
		}(i)
		go func(p *PlainObject) {
			defer wg.Done()
			if _, _, err := m.GetProperty(p, "counter"); err != nil {
				t.Errorf("GetProperty failed: %v", err)
			}
		}(instances[i])
	}
	wg.Wait()

	for _, p := range instances {
		if _, ok, _ := m.GetProperty(p, "counter"); !ok {
			t.Errorf("expected counter to be visible after all writers finished")
		}
	}
}
