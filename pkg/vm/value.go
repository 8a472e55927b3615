package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// cleanExponentialFormat removes leading zeros from exponent to match JS format
// e.g., "1e-07" -> "1e-7", "1e+25" -> "1e+25"
func cleanExponentialFormat(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'e' || s[i] == 'E' {
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				sign := s[i+1]
				j := i + 2
				for j < len(s) && s[j] == '0' {
					j++
				}
				if j >= len(s) {
					return s[:i+2] + "0"
				}
				return s[:i+1] + string(sign) + s[j:]
			}
			break
		}
	}
	return s
}

type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject // plain objects, arrays and functions
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "<unknown>"
	}
}

// Value is a tagged union over the values the object model can store.
// The zero Value is Undefined.
type Value struct {
	typ ValueType
	num float64
	str string
	obj *PlainObject
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, num: 1}
	False     = Value{typ: TypeBoolean}
)

func BooleanValue(b bool) Value {
	if b {
		return True
	}
	return False
}

func NumberValue(f float64) Value {
	return Value{typ: TypeNumber, num: f}
}

func NewString(s string) Value {
	return Value{typ: TypeString, str: s}
}

// NewValueFromPlainObject wraps an object. A nil object becomes Null.
func NewValueFromPlainObject(o *PlainObject) Value {
	if o == nil {
		return Null
	}
	return Value{typ: TypeObject, obj: o}
}

func (v Value) Type() ValueType { return v.typ }

func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }
func (v Value) IsNull() bool      { return v.typ == TypeNull }
func (v Value) IsObject() bool    { return v.typ == TypeObject }

// IsCallable reports whether the value is a function object.
func (v Value) IsCallable() bool {
	return v.typ == TypeObject && v.obj.class == ClassFunction
}

// IsArray reports whether the value is an array object.
func (v Value) IsArray() bool {
	return v.typ == TypeObject && v.obj.class == ClassArray
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic("value is not a boolean")
	}
	return v.num != 0
}

func (v Value) AsNumber() float64 {
	if v.typ != TypeNumber {
		panic("value is not a number")
	}
	return v.num
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic("value is not a string")
	}
	return v.str
}

func (v Value) AsPlainObject() *PlainObject {
	if v.typ != TypeObject {
		panic("value is not an object")
	}
	return v.obj
}

// TypeOf returns the result of the typeof operator.
func (v Value) TypeOf() string {
	if v.IsCallable() {
		return "function"
	}
	if v.typ == TypeNull {
		return "object"
	}
	return v.typ.String()
}

// IsTruthy follows the ToBoolean conversion.
func (v Value) IsTruthy() bool {
	switch v.typ {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.num != 0
	case TypeNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case TypeString:
		return v.str != ""
	default:
		return true
	}
}

// StrictEquals implements ===. Objects compare by identity.
func (v Value) StrictEquals(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean, TypeNumber:
		return v.num == other.num
	case TypeString:
		return v.str == other.str
	default:
		return v.obj == other.obj
	}
}

// ToString performs the string conversion used for concatenation. Arrays
// join their elements with commas and objects become "[object Object]";
// a user-defined toString is only honoured by Model.ToString.
func (v Value) ToString() string {
	return v.toString(nil)
}

// toString carries the arrays currently being joined; an array met again
// inside itself renders as "".
func (v Value) toString(seen map[*PlainObject]bool) string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.num)
	case TypeString:
		return v.str
	}
	o := v.obj
	switch {
	case o.class == ClassArray:
		if seen[o] {
			return ""
		}
		if seen == nil {
			seen = make(map[*PlainObject]bool)
		}
		seen[o] = true
		defer delete(seen, o)
		elems := o.Elements()
		parts := make([]string, len(elems))
		for i, e := range elems {
			if e.typ == TypeUndefined || e.typ == TypeNull {
				continue
			}
			parts[i] = e.toString(seen)
		}
		return strings.Join(parts, ",")
	case o.class == ClassFunction:
		return fmt.Sprintf("function %s() { [native code] }", o.name)
	default:
		return "[object Object]"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return cleanExponentialFormat(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Inspect renders the value the way console.log prints it.
func (v Value) Inspect() string {
	return v.inspectWithDepth(false, 0, 8)
}

// InspectNested is used for nested contexts where strings should be quoted
func (v Value) InspectNested() string {
	return v.inspectWithDepth(true, 0, 8)
}

func (v Value) inspectWithDepth(nested bool, depth int, maxDepth int) string {
	switch v.typ {
	case TypeString:
		if nested {
			return "'" + strings.ReplaceAll(v.str, "'", "\\'") + "'"
		}
		return v.str
	case TypeObject:
	default:
		return v.ToString()
	}

	o := v.obj
	if o.class == ClassFunction {
		if o.name != "" {
			return fmt.Sprintf("[Function: %s]", o.name)
		}
		return "[Function (anonymous)]"
	}
	if prim, ok := o.Primitive(); ok {
		label := strings.ToUpper(prim.typ.String()[:1]) + prim.typ.String()[1:]
		return "[" + label + ": " + prim.inspectWithDepth(true, depth+1, maxDepth) + "]"
	}
	if depth >= maxDepth {
		if o.class == ClassArray {
			return "[Array]"
		}
		return "[Object]"
	}

	if o.class == ClassArray {
		elems := o.Elements()
		if len(elems) == 0 {
			return "[]"
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.inspectWithDepth(true, depth+1, maxDepth)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	}

	keys := o.OwnKeys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		pv, _ := o.GetOwn(k)
		parts = append(parts, k+": "+pv.inspectWithDepth(true, depth+1, maxDepth))
	}
	prefix := ""
	if name := o.constructorName(); name != "" && name != "Object" {
		prefix = name + " "
	}
	if len(parts) == 0 {
		return prefix + "{}"
	}
	return prefix + "{ " + strings.Join(parts, ", ") + " }"
}

func (v Value) String() string {
	return v.Inspect()
}
