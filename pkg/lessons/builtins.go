package lessons

import (
	"protochain/pkg/vm"
)

func runBuiltins(s *Session) {
	array := s.Builtin("Array")
	str := s.Builtin("String")

	add := s.Fn("", 2, func(_ *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		return vm.NumberValue(args[0].AsNumber() + args[1].AsNumber()), nil
	})
	s.Extend(array, "sum", s.Fn("", 0, func(m *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return m.Invoke(this, "reduce", add)
	}))

	numbers := s.Model.NewArray()
	for i := 1; i <= 6; i++ {
		numbers.Push(vm.NumberValue(float64(i)))
	}

	s.Log(s.Invoke(numbers, "sum"))
	s.Log(s.Invoke(numbers, "join", " + ").ToString() + " = " + s.Invoke(numbers, "sum").ToString())
	s.Log(s.Invoke(numbers, "hasOwnProperty", "sum"))
	s.Log(s.InstanceOf(numbers, array))

	s.Extend(str, "capitalize", s.Fn("", 0, func(m *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		first := s.Invoke(s.Invoke(this, "charAt", 0), "toUpperCase")
		rest := s.Invoke(this, "substring", 1)
		return vm.NewString(first.ToString() + rest.ToString()), s.Err()
	}))

	message := vm.NewString("hello, world!")

	s.Log(s.Invoke(message, "capitalize"))
	s.Log(s.Same(s.Invoke(s.Func(s.Builtin("Object")), "getPrototypeOf", message), s.Proto(str)))
	s.Log(s.Invoke(s.New(str, "boxed"), "capitalize"))
}
