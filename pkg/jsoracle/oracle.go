// Package jsoracle runs JavaScript on a real engine and records what it
// prints, so the object model's output can be checked against the language.
package jsoracle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

const maxInspectDepth = 8

// Run executes source on a fresh runtime and returns the lines passed to
// console.log, formatted the way Node prints them.
func Run(source string) ([]string, error) {
	rt := goja.New()
	var lines []string

	console := rt.NewObject()
	log := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = inspect(arg, false, 0)
		}
		lines = append(lines, strings.Join(parts, " "))
		return goja.Undefined()
	}
	if err := console.Set("log", log); err != nil {
		return nil, err
	}
	if err := rt.Set("console", console); err != nil {
		return nil, err
	}

	if _, err := rt.RunString(source); err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			return lines, fmt.Errorf("script threw: %s", exc.Value().String())
		}
		return lines, fmt.Errorf("run script: %w", err)
	}
	return lines, nil
}

func inspect(v goja.Value, nested bool, depth int) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		if s, isStr := v.Export().(string); isStr && nested {
			return quote(s)
		}
		return v.String()
	}

	if _, isFn := goja.AssertFunction(obj); isFn {
		if name := obj.Get("name"); name != nil && name.String() != "" {
			return "[Function: " + name.String() + "]"
		}
		return "[Function (anonymous)]"
	}

	switch obj.ClassName() {
	case "String":
		return "[String: " + quote(obj.String()) + "]"
	case "Number", "Boolean":
		return "[" + obj.ClassName() + ": " + obj.String() + "]"
	case "Array":
		if depth >= maxInspectDepth {
			return "[Array]"
		}
		n := int(obj.Get("length").ToInteger())
		if n == 0 {
			return "[]"
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			parts[i] = inspect(obj.Get(strconv.Itoa(i)), true, depth+1)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	}

	if depth >= maxInspectDepth {
		return "[Object]"
	}
	keys := obj.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + inspect(obj.Get(k), true, depth+1)
	}
	prefix := ""
	if ctor, isObj := obj.Get("constructor").(*goja.Object); isObj {
		if name := ctor.Get("name"); name != nil && name.String() != "Object" && name.String() != "" {
			prefix = name.String() + " "
		}
	}
	if len(parts) == 0 {
		return prefix + "{}"
	}
	return prefix + "{ " + strings.Join(parts, ", ") + " }"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
