package vm

import "errors"

// Sentinel causes carried by the model's typed errors. Test with errors.Is.
var (
	ErrUnknownConstructor   = errors.New("unknown constructor")
	ErrDuplicateConstructor = errors.New("constructor already registered")
	ErrCyclicPrototypeChain = errors.New("cyclic prototype chain")
	ErrNotCallable          = errors.New("not a function")
	ErrCalledWithoutNew     = errors.New("constructor invoked without new")
	ErrNotExtensible        = errors.New("object is not extensible")
	ErrReadOnly             = errors.New("property is read-only")
	ErrNotAnObject          = errors.New("not an object")
)
