package lessons

import (
	"protochain/pkg/vm"
)

func runPrototypes(s *Session) {
	object := s.Builtin("Object")

	book := s.New(object)
	s.Set(book, "title", "ES5 Prototypes")

	s.Log(s.Has(book, "title"))
	s.Log(s.Has(book, "hasOwnProperty"))
	s.Log(s.Invoke(book, "hasOwnProperty", "title"))

	hasPrototypeProperty := func(obj any, name string) bool {
		return s.Has(obj, name) && !s.Invoke(obj, "hasOwnProperty", name).IsTruthy()
	}
	s.Log(hasPrototypeProperty(book, "title"))
	s.Log(hasPrototypeProperty(book, "hasOwnProperty"))
	s.Log(book)

	someObject := s.New(object)
	s.Log(s.Same(s.Invoke(s.Func(object), "getPrototypeOf", someObject), s.Proto(object)))
	s.Log(s.Invoke(s.Proto(object), "isPrototypeOf", someObject))

	s.Log(s.Invoke(someObject, "toString"))
	s.Set(someObject, "toString", s.Fn("", 0, func(*vm.Model, vm.Value, []vm.Value) (vm.Value, error) {
		return vm.NewString("some custom string"), nil
	}))
	s.Log(s.Invoke(someObject, "toString"))
	s.Log(s.Invoke(someObject, "hasOwnProperty", "toString"))

	s.Delete(someObject, "toString")
	s.Log(s.Invoke(someObject, "toString"))

	bare := s.Invoke(s.Func(object), "create", vm.Null)
	s.Log(s.Has(bare, "toString"))
}
