package format

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindUint
	KindFloat
	KindVector
	KindList
	KindMap
	KindOpaque
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOpaque:
		return "opaque"
	case KindRaw:
		return "raw"
	}
	return "unknown"
}

// Value is the closed set of things the formatter knows how to render.
// Only the types declared in this file implement it.
type Value interface {
	Kind() Kind
}

type nullValue struct{}

// Null is the absent value.
var Null Value = nullValue{}

type (
	// String is a text value.
	String string
	// Bool is a boolean value.
	Bool bool
	// Int is a signed integer value.
	Int int64
	// Uint is an unsigned integer value.
	Uint uint64
	// Float is a floating point value.
	Float float64
	// Vector is a 2-4 component numeric tuple, rendered as (x, y, z).
	Vector []float64
	// List is an ordered collection.
	List []Value
	// Map is an ordered key/value collection.
	Map []Entry
	// Raw is text that was already rendered in both forms.
	Raw Text
)

// Opaque wraps a value the formatter renders with fmt.Sprint.
type Opaque struct{ V any }

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// NamedValue is one field listed by LogState.
type NamedValue struct {
	Name  string
	Value any
}

func (nullValue) Kind() Kind { return KindNull }
func (String) Kind() Kind    { return KindString }
func (Bool) Kind() Kind      { return KindBool }
func (Int) Kind() Kind       { return KindInt }
func (Uint) Kind() Kind      { return KindUint }
func (Float) Kind() Kind     { return KindFloat }
func (Vector) Kind() Kind    { return KindVector }
func (List) Kind() Kind      { return KindList }
func (Map) Kind() Kind       { return KindMap }
func (Opaque) Kind() Kind    { return KindOpaque }
func (Raw) Kind() Kind       { return KindRaw }

// Valuer lets a type choose its own formatter variant.
type Valuer interface {
	ChanlogValue() Value
}

// Vec builds a Vector from components.
func Vec(components ...float64) Vector { return Vector(components) }

// Of adapts an arbitrary Go value into a Value. It is the only place that
// inspects dynamic types.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case Valuer:
		return x.ChanlogValue()
	case Text:
		return Raw(x)
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint:
		return Uint(x)
	case uint8:
		return Uint(x)
	case uint16:
		return Uint(x)
	case uint32:
		return Uint(x)
	case uint64:
		return Uint(x)
	case uintptr:
		return Uint(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case [2]float32:
		return Vector{float64(x[0]), float64(x[1])}
	case [3]float32:
		return Vector{float64(x[0]), float64(x[1]), float64(x[2])}
	case [4]float32:
		return Vector{float64(x[0]), float64(x[1]), float64(x[2]), float64(x[3])}
	case [2]float64:
		return Vector(x[:])
	case [3]float64:
		return Vector(x[:])
	case [4]float64:
		return Vector(x[:])
	case [2]int:
		return Vector{float64(x[0]), float64(x[1])}
	case [3]int:
		return Vector{float64(x[0]), float64(x[1]), float64(x[2])}
	case error:
		return Opaque{V: x}
	case fmt.Stringer:
		return Opaque{V: x}
	}
	return ofReflect(reflect.ValueOf(v))
}

func ofReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return Opaque{V: rv.Interface()}
	case reflect.Slice:
		if rv.IsNil() {
			return List{}
		}
		fallthrough
	case reflect.Array:
		out := make(List, rv.Len())
		for i := range out {
			out[i] = Of(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(Map, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, Entry{Key: Of(iter.Key().Interface()), Value: Of(iter.Value().Interface())})
		}
		sortEntries(out)
		return out
	}
	if !rv.IsValid() {
		return Null
	}
	return Opaque{V: rv.Interface()}
}

// sortEntries orders map entries numerically when both keys are numbers and
// by their printed form otherwise.
func sortEntries(m Map) {
	sort.SliceStable(m, func(i, j int) bool {
		a, aok := numericKey(m[i].Key)
		b, bok := numericKey(m[j].Key)
		if aok && bok {
			return a < b
		}
		return defaultPlain.Format(m[i].Key, false).Plain < defaultPlain.Format(m[j].Key, false).Plain
	})
}

func numericKey(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Uint:
		return float64(x), true
	case Float:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return float64(x), true
	}
	return 0, false
}
