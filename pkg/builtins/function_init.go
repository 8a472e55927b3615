package builtins

import (
	"protochain/pkg/vm"
)

type FunctionInitializer struct{}

func (f *FunctionInitializer) Name() string {
	return "Function"
}

func (f *FunctionInitializer) Priority() int {
	return PriorityFunction
}

func (f *FunctionInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	functionProto := ctx.FunctionPrototype

	// Function.prototype.call(thisArg, ...args)
	method(m, functionProto, "call", 1, func(m *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
		return m.Call(this, args[0], args[1:]...)
	})
	method(m, functionProto, "toString", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return vm.NewString(this.ToString()), nil
	})
	return nil
}
