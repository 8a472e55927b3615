package lessons

import (
	"errors"

	"protochain/pkg/vm"
)

func runChangingPrototypes(s *Session) {
	person := s.Define("Person", initName)
	s.Replace(person, s.Literal(
		"constructor", s.Func(person),
		"sayName", s.Fn("", 0, sayName(s)),
		"toString", s.Fn("", 0, personToString(s)),
	))

	person1 := s.New(person, "jsfanboy")
	person2 := s.New(person, "jsfanboy 2")

	s.Log(s.Has(person1, "sayHi"))
	s.Log(s.Has(person2, "sayHi"))

	s.Extend(person, "sayHi", s.Fn("", 0, func(*vm.Model, vm.Value, []vm.Value) (vm.Value, error) {
		s.Log("Hi!")
		return vm.Undefined, s.Err()
	}))

	s.Invoke(person1, "sayHi")
	s.Invoke(person2, "sayHi")

	object := s.Func(s.Builtin("Object"))
	s.Invoke(object, "freeze", person1)
	s.Log(s.Invoke(object, "isFrozen", person1))

	s.Extend(person, "sayBye", s.Fn("", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		s.Log("Bye, " + s.Get(this, "name").ToString() + "!")
		return vm.Undefined, s.Err()
	}))

	s.Invoke(person1, "sayBye")

	s.Log(rejected(s, s.TrySet(person1, "name", "changed"), vm.ErrReadOnly, "write"))
	s.Log(rejected(s, s.TrySet(person1, "age", 30), vm.ErrNotExtensible, "add"))

	s.Log(s.Get(person1, "name"))
	s.Log(s.Invoke(person2, "toString"))
	s.Log(s.Invoke(person1, "hasOwnProperty", "sayBye"))
}

// rejected describes the outcome of a write on a frozen object. Errors other
// than want are recorded on the session.
func rejected(s *Session, err, want error, what string) string {
	switch {
	case err == nil:
		return what + " accepted"
	case errors.Is(err, want):
		return what + " rejected"
	default:
		s.fail(err)
		return ""
	}
}
