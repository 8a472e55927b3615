package lessons

func runPrototypesWithConstructors(s *Session) {
	person := s.Define("Person", initName)
	s.Extend(person, "sayName", s.Fn("", 0, sayName(s)))

	person1 := s.New(person, "jsfanboy")
	person2 := s.New(person, "jsfanboy 2")

	s.Invoke(person1, "sayName")
	s.Invoke(person2, "sayName")
	s.Log(s.Same(s.Get(person1, "sayName"), s.Get(person2, "sayName")))
	s.Log(s.Invoke(person1, "hasOwnProperty", "sayName"))

	s.Extend(person, "favorites", s.Model.NewArray())
	s.Invoke(s.Get(person1, "favorites"), "push", "Pizza")
	s.Invoke(s.Get(person2, "favorites"), "push", "Burgers")

	s.Log(s.Get(person1, "favorites"))
	s.Log(s.Same(s.Get(person1, "favorites"), s.Get(person2, "favorites")))

	s.Replace(person, s.Literal(
		"constructor", s.Func(person),
		"sayName", s.Fn("", 0, sayName(s)),
		"toString", s.Fn("", 0, personToString(s)),
	))

	person3 := s.New(person, "jsfanboy 3")

	s.Invoke(person3, "sayName")
	s.Log(s.Invoke(person3, "toString"))
	s.Log(s.InstanceOf(person3, person))
	s.Log(s.Same(s.Get(person3, "constructor"), s.Func(person)))
	s.Log(s.Same(s.Get(person3, "constructor"), s.Func(s.Builtin("Object"))))

	s.Log(s.InstanceOf(person1, person))
	s.Log(s.Get(person1, "favorites"))
	s.Log(s.Get(person3, "favorites"))

	// no back-link this time
	s.Replace(person, s.Literal(
		"sayName", s.Fn("", 0, sayName(s)),
	))

	person4 := s.New(person, "jsfanboy 4")

	s.Invoke(person4, "sayName")
	s.Log(s.InstanceOf(person4, person))
	s.Log(s.Same(s.Get(person4, "constructor"), s.Func(person)))
	s.Log(s.Same(s.Get(person4, "constructor"), s.Func(s.Builtin("Object"))))
}
