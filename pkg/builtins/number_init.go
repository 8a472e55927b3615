package builtins

import (
	"strconv"

	perrors "protochain/pkg/errors"
	"protochain/pkg/vm"
)

type NumberInitializer struct{}

func (n *NumberInitializer) Name() string {
	return "Number"
}

func (n *NumberInitializer) Priority() int {
	return PriorityNumber
}

func (n *NumberInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	numberProto := ctx.NumberPrototype

	method(m, numberProto, "toString", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		f, err := thisNumber("toString", this)
		return vm.NewString(vm.NumberValue(f).ToString()), err
	})
	method(m, numberProto, "toFixed", 1, func(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
		f, err := thisNumber("toFixed", this)
		if err != nil {
			return vm.Undefined, err
		}
		digits := 0
		if args[0].Type() == vm.TypeNumber {
			digits = int(args[0].AsNumber())
		}
		if digits < 0 || digits > 100 {
			return vm.Undefined, &perrors.CallError{Function: "Number.prototype.toFixed", Msg: "digits argument must be between 0 and 100"}
		}
		return vm.NewString(strconv.FormatFloat(f, 'f', digits, 64)), nil
	})
	method(m, numberProto, "valueOf", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		f, err := thisNumber("valueOf", this)
		return vm.NumberValue(f), err
	})

	_, err := registerConstructor(ctx, "Number", func(_ *vm.Model, this *vm.PlainObject, args []vm.Value) error {
		f := 0.0
		if len(args) > 0 && args[0].Type() == vm.TypeNumber {
			f = args[0].AsNumber()
		}
		this.SetPrimitive(vm.NumberValue(f))
		return nil
	}, numberProto)
	return err
}

func thisNumber(fnName string, this vm.Value) (float64, error) {
	if this.Type() == vm.TypeNumber {
		return this.AsNumber(), nil
	}
	if this.IsObject() {
		if prim, ok := this.AsPlainObject().Primitive(); ok && prim.Type() == vm.TypeNumber {
			return prim.AsNumber(), nil
		}
	}
	return 0, (&perrors.CallError{Function: "Number.prototype." + fnName, Msg: "requires a number receiver, got " + this.TypeOf()}).CausedBy(vm.ErrNotAnObject)
}

type BooleanInitializer struct{}

func (b *BooleanInitializer) Name() string {
	return "Boolean"
}

func (b *BooleanInitializer) Priority() int {
	return PriorityBoolean
}

func (b *BooleanInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	booleanProto := ctx.BooleanPrototype

	unwrap := func(this vm.Value) (vm.Value, error) {
		if this.Type() == vm.TypeBoolean {
			return this, nil
		}
		if this.IsObject() {
			if prim, ok := this.AsPlainObject().Primitive(); ok && prim.Type() == vm.TypeBoolean {
				return prim, nil
			}
		}
		return vm.Undefined, (&perrors.CallError{Function: "Boolean.prototype", Msg: "requires a boolean receiver, got " + this.TypeOf()}).CausedBy(vm.ErrNotAnObject)
	}
	method(m, booleanProto, "toString", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		v, err := unwrap(this)
		return vm.NewString(v.ToString()), err
	})
	method(m, booleanProto, "valueOf", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		return unwrap(this)
	})

	_, err := registerConstructor(ctx, "Boolean", func(_ *vm.Model, this *vm.PlainObject, args []vm.Value) error {
		truthy := len(args) > 0 && args[0].IsTruthy()
		this.SetPrimitive(vm.BooleanValue(truthy))
		return nil
	}, booleanProto)
	return err
}
