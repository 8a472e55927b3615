package builtins

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	perrors "protochain/pkg/errors"
	"protochain/pkg/vm"
)

// Case mapping follows the Unicode default (locale-independent) rules, so
// "ß" upper-cases to "SS". A Caser is stateful and is not shared.
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }
func toLower(s string) string { return cases.Lower(language.Und).String(s) }

type StringInitializer struct{}

func (s *StringInitializer) Name() string {
	return "String"
}

func (s *StringInitializer) Priority() int {
	return PriorityString
}

func (s *StringInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	stringProto := ctx.StringPrototype

	method(m, stringProto, "charAt", 1, stringCharAtImpl)
	method(m, stringProto, "substring", 2, stringSubstringImpl)
	method(m, stringProto, "toUpperCase", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		str, err := thisString("toUpperCase", this)
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NewString(toUpper(str)), nil
	})
	method(m, stringProto, "toLowerCase", 0, func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		str, err := thisString("toLowerCase", this)
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NewString(toLower(str)), nil
	})
	method(m, stringProto, "concat", 1, func(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
		str, err := thisString("concat", this)
		if err != nil {
			return vm.Undefined, err
		}
		var b strings.Builder
		b.WriteString(str)
		for _, a := range args {
			b.WriteString(a.ToString())
		}
		return vm.NewString(b.String()), nil
	})
	valueOf := func(_ *vm.Model, this vm.Value, _ []vm.Value) (vm.Value, error) {
		str, err := thisString("valueOf", this)
		return vm.NewString(str), err
	}
	method(m, stringProto, "toString", 0, valueOf)
	method(m, stringProto, "valueOf", 0, valueOf)

	_, err := registerConstructor(ctx, "String", func(_ *vm.Model, this *vm.PlainObject, args []vm.Value) error {
		str := ""
		if len(args) > 0 {
			str = args[0].ToString()
		}
		this.SetPrimitive(vm.NewString(str))
		return nil
	}, stringProto)
	return err
}

// thisString unwraps a string primitive or String wrapper receiver.
func thisString(fnName string, this vm.Value) (string, error) {
	if this.Type() == vm.TypeString {
		return this.AsString(), nil
	}
	if this.IsObject() {
		if prim, ok := this.AsPlainObject().Primitive(); ok && prim.Type() == vm.TypeString {
			return prim.AsString(), nil
		}
	}
	return "", (&perrors.CallError{Function: "String.prototype." + fnName, Msg: "requires a string receiver, got " + this.TypeOf()}).CausedBy(vm.ErrNotAnObject)
}

// toIndex converts an argument to an integer position, clamped to [0, n].
func toIndex(v vm.Value, def int, n int) int {
	if v.IsUndefined() {
		return def
	}
	f := math.NaN()
	if v.Type() == vm.TypeNumber {
		f = v.AsNumber()
	}
	if math.IsNaN(f) {
		return 0
	}
	switch {
	case f < 0:
		return 0
	case f > float64(n):
		return n
	}
	return int(f)
}

// Positions count runes rather than UTF-16 code units.
func stringCharAtImpl(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	str, err := thisString("charAt", this)
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(str)
	idx := toIndex(args[0], 0, len(runes))
	if idx >= len(runes) {
		return vm.NewString(""), nil
	}
	return vm.NewString(string(runes[idx])), nil
}

func stringSubstringImpl(_ *vm.Model, this vm.Value, args []vm.Value) (vm.Value, error) {
	str, err := thisString("substring", this)
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(str)
	start := toIndex(args[0], 0, len(runes))
	end := toIndex(args[1], len(runes), len(runes))
	if start > end {
		start, end = end, start
	}
	return vm.NewString(string(runes[start:end])), nil
}
