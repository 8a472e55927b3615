package builtins

import (
	"protochain/pkg/vm"
)

// BuiltinInitializer is implemented by each builtin module
type BuiltinInitializer interface {
	// Name returns the module name (e.g., "Array", "String", "console")
	Name() string

	// Priority returns initialization order (lower = earlier)
	Priority() int

	// InitRuntime installs constructors and prototype methods into the model
	InitRuntime(ctx *RuntimeContext) error
}

// RuntimeContext provides everything needed for runtime initialization
type RuntimeContext struct {
	// The model being populated
	Model *vm.Model

	// Define a global value
	DefineGlobal func(name string, value vm.Value) error

	// Built-in prototypes of the model's realm
	ObjectPrototype   *vm.PlainObject
	FunctionPrototype *vm.PlainObject
	ArrayPrototype    *vm.PlainObject
	StringPrototype   *vm.PlainObject
	NumberPrototype   *vm.PlainObject
	BooleanPrototype  *vm.PlainObject
}

// Priority constants for initialization order
const (
	PriorityObject   = 0   // Object must be first (base prototype)
	PriorityFunction = 1   // Function second (inherits from Object)
	PriorityArray    = 3   // Array third (inherits from Object)
	PriorityString   = 10  // String primitives
	PriorityNumber   = 11  // Number primitives
	PriorityBoolean  = 12  // Boolean primitives
	PriorityConsole  = 102 // Console object
)
