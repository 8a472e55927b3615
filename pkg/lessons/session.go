package lessons

import (
	"fmt"
	"io"

	"protochain/pkg/builtins"
	"protochain/pkg/vm"
)

// Session is a fresh object model whose console writes to the lesson
// output. The first failing operation is remembered and every later
// operation becomes a no-op, so lesson bodies read top to bottom.
type Session struct {
	Model *vm.Model

	console vm.Value
	err     error
}

func NewSession(w io.Writer, opts ...vm.Option) (*Session, error) {
	opts = append([]vm.Option{vm.WithOutput(w)}, opts...)
	m, err := builtins.NewModel(opts...)
	if err != nil {
		return nil, err
	}
	console, ok := m.Global("console")
	if !ok {
		return nil, fmt.Errorf("console is not installed")
	}
	return &Session{Model: m, console: console}, nil
}

// Err returns the first error recorded by the session.
func (s *Session) Err() error { return s.err }

func (s *Session) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// Log prints args through console.log.
func (s *Session) Log(args ...any) {
	if s.err != nil {
		return
	}
	_, err := s.Model.Invoke(s.console, "log", values(args)...)
	s.fail(err)
}

// Define registers a user constructor with a fresh prototype.
func (s *Session) Define(name string, init vm.InitFunc) vm.ConstructorID {
	if s.err != nil {
		return 0
	}
	id, err := s.Model.Register(name, init)
	s.fail(err)
	return id
}

// Builtin resolves a constructor installed by the builtins package.
func (s *Session) Builtin(name string) vm.ConstructorID {
	if s.err != nil {
		return 0
	}
	id, ok := s.Model.ConstructorByName(name)
	if !ok {
		s.fail(fmt.Errorf("builtin %s: %w", name, vm.ErrUnknownConstructor))
	}
	return id
}

// Func returns the function object of a constructor.
func (s *Session) Func(id vm.ConstructorID) vm.Value {
	if s.err != nil {
		return vm.Undefined
	}
	c, err := s.Model.Constructor(id)
	if err != nil {
		s.fail(err)
		return vm.Undefined
	}
	return c.Function()
}

// Proto returns the current prototype of a constructor.
func (s *Session) Proto(id vm.ConstructorID) *vm.PlainObject {
	if s.err != nil {
		return nil
	}
	p, err := s.Model.Prototype(id)
	s.fail(err)
	return p
}

// New is `new C(args...)`.
func (s *Session) New(id vm.ConstructorID, args ...any) *vm.PlainObject {
	if s.err != nil {
		return nil
	}
	obj, err := s.Model.Create(id, values(args)...)
	s.fail(err)
	return obj
}

// Literal builds an object literal from alternating names and values.
func (s *Session) Literal(pairs ...any) *vm.PlainObject {
	obj := s.Model.NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(obj, pairs[i].(string), pairs[i+1])
	}
	return obj
}

// Fn wraps a Go function as a function object.
func (s *Session) Fn(name string, arity int, fn vm.NativeFn) vm.Value {
	return s.Model.NewFunction(name, arity, fn)
}

// Get reads a property through the chain; a missing property is undefined.
func (s *Session) Get(target any, name string) vm.Value {
	if s.err != nil {
		return vm.Undefined
	}
	v, _, err := s.Model.GetValueProperty(toValue(target), name)
	s.fail(err)
	return v
}

// Set assigns an own property.
func (s *Session) Set(target any, name string, v any) {
	if s.err != nil {
		return
	}
	s.fail(s.Model.SetProperty(s.object(target), name, toValue(v)))
}

// TrySet assigns an own property and hands the error back instead of
// recording it.
func (s *Session) TrySet(target any, name string, v any) error {
	if s.err != nil {
		return s.err
	}
	return s.Model.SetProperty(s.object(target), name, toValue(v))
}

// Delete is the delete operator.
func (s *Session) Delete(target any, name string) {
	if s.err != nil {
		return
	}
	s.fail(s.Model.DeleteProperty(s.object(target), name))
}

// Has is the `in` operator.
func (s *Session) Has(target any, name string) bool {
	if s.err != nil {
		return false
	}
	ok, err := s.Model.Has(s.object(target), name)
	s.fail(err)
	return ok
}

// InstanceOf is the instanceof operator.
func (s *Session) InstanceOf(target any, id vm.ConstructorID) bool {
	if s.err != nil {
		return false
	}
	ok, err := s.Model.IsInstanceOf(s.object(target), id)
	s.fail(err)
	return ok
}

// Extend adds a property to the live prototype of a constructor.
func (s *Session) Extend(id vm.ConstructorID, name string, v any) {
	if s.err != nil {
		return
	}
	s.fail(s.Model.ExtendPrototype(id, name, toValue(v)))
}

// Replace swaps the prototype future instances of a constructor receive.
func (s *Session) Replace(id vm.ConstructorID, proto *vm.PlainObject) {
	if s.err != nil {
		return
	}
	s.fail(s.Model.SetPrototype(id, proto))
}

// Invoke calls a method with target as this.
func (s *Session) Invoke(target any, name string, args ...any) vm.Value {
	if s.err != nil {
		return vm.Undefined
	}
	v, err := s.Model.Invoke(toValue(target), name, values(args)...)
	s.fail(err)
	return v
}

// Same is the === operator.
func (s *Session) Same(a, b any) bool {
	return toValue(a).StrictEquals(toValue(b))
}

func (s *Session) object(target any) *vm.PlainObject {
	v := toValue(target)
	if !v.IsObject() {
		return nil
	}
	return v.AsPlainObject()
}

func toValue(x any) vm.Value {
	switch x := x.(type) {
	case nil:
		return vm.Undefined
	case vm.Value:
		return x
	case *vm.PlainObject:
		return vm.NewValueFromPlainObject(x)
	case bool:
		return vm.BooleanValue(x)
	case string:
		return vm.NewString(x)
	case int:
		return vm.NumberValue(float64(x))
	case float64:
		return vm.NumberValue(x)
	default:
		panic(fmt.Sprintf("lessons: cannot convert %T to a value", x))
	}
}

func values(args []any) []vm.Value {
	out := make([]vm.Value, len(args))
	for i, a := range args {
		out[i] = toValue(a)
	}
	return out
}

// arg returns args[i] or undefined.
func arg(args []vm.Value, i int) vm.Value {
	if i < len(args) {
		return args[i]
	}
	return vm.Undefined
}
