package lessons

import (
	"errors"

	"protochain/pkg/vm"
)

func runConstructors(s *Session) {
	person := s.Define("Person", nil)
	p := s.New(person)

	s.Log(s.InstanceOf(p, person))
	s.Log(s.Same(s.Get(p, "constructor"), s.Func(person)))
	s.Log(p)

	// each instance gets its own sayName closure
	named := s.Define("NamedPerson", func(m *vm.Model, this *vm.PlainObject, args []vm.Value) error {
		if err := m.SetProperty(this, "name", arg(args, 0)); err != nil {
			return err
		}
		return m.SetProperty(this, "sayName", s.Fn("", 0, sayName(s)))
	})
	n1 := s.New(named, "jsfanboy")
	n2 := s.New(named, "jsfanboy 2")

	s.Invoke(n1, "sayName")
	s.Invoke(n2, "sayName")
	s.Log(s.Invoke(n1, "hasOwnProperty", "sayName"))
	s.Log(s.Same(s.Get(n1, "sayName"), s.Get(n2, "sayName")))
	s.Log(s.InstanceOf(n1, person))

	if s.Err() != nil {
		return
	}
	_, err := s.Model.Call(s.Func(named), vm.Undefined, vm.NewString("jsfanboy 3"))
	switch {
	case errors.Is(err, vm.ErrCalledWithoutNew):
		s.Log("calling without new throws")
	case err != nil:
		s.fail(err)
	default:
		s.Log("called without new")
	}
}

// sayName logs this.name.
func sayName(s *Session) vm.NativeFn {
	return func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		s.Log(s.Get(this, "name"))
		return vm.Undefined, s.Err()
	}
}

// personToString renders "[Person <name>]".
func personToString(s *Session) vm.NativeFn {
	return func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return vm.NewString("[Person " + s.Get(this, "name").ToString() + "]"), s.Err()
	}
}

// initName stores the first argument as the own property "name".
func initName(m *vm.Model, this *vm.PlainObject, args []vm.Value) error {
	return m.SetProperty(this, "name", arg(args, 0))
}
