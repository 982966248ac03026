// Package value implements the runtime value model shared by the
// compiler's constant pool and the VM's operand stack.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags a Value with its dynamic type.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is a tagged sum of {nil, bool, number, string}. The zero Value is
// Nil.
type Value struct {
	kind   Kind
	number float64
	str    string
	boolean bool
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number constructs a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }

// AsBool returns the boolean payload. Callers must check IsBool first.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload. Callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.number }

// AsString returns the string payload. Callers must check IsString first.
func (v Value) AsString() string { return v.str }

// Truthy implements the language's truthiness coercion: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.boolean
	default:
		return true
	}
}

// Equal implements value equality: tags must match, numbers compare by
// IEEE-754 equality (so NaN != NaN), strings compare by content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number
	case KindString:
		return v.str == other.str
	}
	return false
}

// TypeName returns a short human-readable name for the value's kind, used
// in runtime error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "unknown"
}

// String formats the value the way `print` renders it: numbers via the
// host's default float rendering (minimal decimals), booleans as
// true/false, nil as nil, strings verbatim.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindString:
		return v.str
	}
	return "<invalid value>"
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Repeat implements the String * Number extension: the string is
// repeated an integer-truncated number of times. Non-positive counts
// yield the empty string.
func Repeat(s string, n float64) string {
	count := int(n)
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
