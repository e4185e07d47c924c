// Package model classifies and manipulates JSON-like values held in native Go
// types (nil, bool, numbers, string, slices and maps) as produced by
// encoding/json, sigs.k8s.io/yaml or hand-written literals.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValueKind enumerates the JSON value categories recognized by the validator.
// The string form of each kind is the matching JSON Schema type name.
//
// Values:
//
//	ValueInvalid | ValueNull | ValueBool | ValueInteger | ValueNumber | ValueString | ValueArray | ValueObject
type ValueKind string

const (
	ValueInvalid ValueKind = "invalid"
	ValueNull    ValueKind = "null"
	ValueBool    ValueKind = "boolean"
	ValueInteger ValueKind = "integer"
	ValueNumber  ValueKind = "number"
	ValueString  ValueKind = "string"
	ValueArray   ValueKind = "array"
	ValueObject  ValueKind = "object"
)

// IsNumeric reports whether the kind is integer or number.
func (k ValueKind) IsNumeric() bool {
	return k == ValueInteger || k == ValueNumber
}

// Entry is one key/value pair of an object value. Key is the coerced string
// form of the original map key.
type Entry struct {
	Key   string
	Value any
}

// KindOf classifies v. Booleans are never numeric, and a number whose value
// has no fractional component is an integer regardless of its Go type.
//
// Parameters:
//
//	v any: The value to classify.
//
// Returns:
//
//	ValueKind: The kind of v, ValueInvalid for Go values with no JSON counterpart.
func KindOf(v any) ValueKind {
	switch tv := v.(type) {
	case nil:
		return ValueNull
	case bool:
		return ValueBool
	case string:
		return ValueString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ValueInteger
	case float32:
		return floatKind(float64(tv))
	case float64:
		return floatKind(tv)
	case json.Number:
		if _, err := tv.Int64(); err == nil {
			return ValueInteger
		}
		f, err := tv.Float64()
		if err != nil {
			return ValueInvalid
		}
		return floatKind(f)
	case []any:
		return ValueArray
	case map[string]any, map[any]any:
		return ValueObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ValueArray
	case reflect.Map:
		return ValueObject
	default:
		return ValueInvalid
	}
}

func floatKind(f float64) ValueKind {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ValueNumber
	}
	if math.Trunc(f) == f {
		return ValueInteger
	}
	return ValueNumber
}

// Float returns the numeric payload of v as a float64.
//
// Returns:
//
//	float64: The numeric value.
//	bool: True when v is an integer or number.
func Float(v any) (float64, bool) {
	switch tv := v.(type) {
	case bool, nil:
		return 0, false
	case int:
		return float64(tv), true
	case int8:
		return float64(tv), true
	case int16:
		return float64(tv), true
	case int32:
		return float64(tv), true
	case int64:
		return float64(tv), true
	case uint:
		return float64(tv), true
	case uint8:
		return float64(tv), true
	case uint16:
		return float64(tv), true
	case uint32:
		return float64(tv), true
	case uint64:
		return float64(tv), true
	case float32:
		return float64(tv), true
	case float64:
		return tv, true
	case json.Number:
		f, err := tv.Float64()
		return f, err == nil
	}
	return 0, false
}

// Rat returns the exact value of a finite number.
//
// Returns:
//
//	*big.Rat: The value, exact for every integer width and for the float64
//	          reading of fractions.
//	bool: True when v is a finite number.
func Rat(v any) (*big.Rat, bool) {
	switch tv := v.(type) {
	case bool, nil:
		return nil, false
	case int:
		return new(big.Rat).SetInt64(int64(tv)), true
	case int8:
		return new(big.Rat).SetInt64(int64(tv)), true
	case int16:
		return new(big.Rat).SetInt64(int64(tv)), true
	case int32:
		return new(big.Rat).SetInt64(int64(tv)), true
	case int64:
		return new(big.Rat).SetInt64(tv), true
	case uint:
		return new(big.Rat).SetUint64(uint64(tv)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(tv)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(tv)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(tv)), true
	case uint64:
		return new(big.Rat).SetUint64(tv), true
	case json.Number:
		// Fractions take the float64 path so that "0.1" equals 0.1.
		if i, err := tv.Int64(); err == nil {
			return new(big.Rat).SetInt64(i), true
		}
	}
	f, ok := Float(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetFloat64(f), true
}

// CompareNumbers compares two numbers without rounding either to float64,
// so int64(1<<53+1) is above float64(1<<53).
//
// Returns:
//
//	int: -1, 0 or +1 as a is less than, equal to or greater than b.
//	bool: False when either side is not a number or is NaN.
func CompareNumbers(a, b any) (int, bool) {
	fa, okA := Float(a)
	fb, okB := Float(b)
	if !okA || !okB || math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, false
	}
	if math.IsInf(fa, 0) || math.IsInf(fb, 0) {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	ra, _ := Rat(a)
	rb, _ := Rat(b)
	return ra.Cmp(rb), true
}

// DecimalPlaces returns the number of digits after the decimal point in the
// shortest text that round-trips v. Integers have zero decimal places.
//
// Returns:
//
//	int: Digit count after the decimal point.
//	bool: True when v is numeric.
func DecimalPlaces(v any) (int, bool) {
	kind := KindOf(v)
	if !kind.IsNumeric() {
		return 0, false
	}
	if kind == ValueInteger {
		return 0, true
	}
	f, _ := Float(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(text, '.')
	if dot < 0 {
		return 0, true
	}
	return len(text) - dot - 1, true
}

// RuneLength returns the character count of a string value.
func RuneLength(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	return utf8.RuneCountInString(s), true
}

// KeyString coerces a map key of any type to the comparable string form
// used for property matching.
func KeyString(k any) string {
	switch tk := k.(type) {
	case string:
		return tk
	case fmt.Stringer:
		return tk.String()
	default:
		return fmt.Sprint(k)
	}
}

// Entries returns the entries of an object value sorted by coerced key.
//
// Parameters:
//
//	v any: The object value.
//
// Returns:
//
//	[]Entry: Entries in ascending key order.
//	bool: True when v is an object.
func Entries(v any) ([]Entry, bool) {
	var entries []Entry
	switch tv := v.(type) {
	case map[string]any:
		entries = make([]Entry, 0, len(tv))
		for k, val := range tv {
			entries = append(entries, Entry{Key: k, Value: val})
		}
	case map[any]any:
		entries = make([]Entry, 0, len(tv))
		for k, val := range tv {
			entries = append(entries, Entry{Key: KeyString(k), Value: val})
		}
	default:
		rv, ok := mapValue(v)
		if !ok {
			return nil, false
		}
		entries = make([]Entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Entry{Key: KeyString(iter.Key().Interface()), Value: iter.Value().Interface()})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, true
}

// Lookup returns the member of obj whose coerced key equals key.
//
// Returns:
//
//	any: The member value.
//	bool: True when obj is an object containing key.
func Lookup(obj any, key string) (any, bool) {
	switch tv := obj.(type) {
	case map[string]any:
		val, ok := tv[key]
		return val, ok
	case map[any]any:
		if val, ok := tv[key]; ok {
			return val, true
		}
		for k, val := range tv {
			if KeyString(k) == key {
				return val, true
			}
		}
		return nil, false
	}
	rv, ok := mapValue(obj)
	if !ok {
		return nil, false
	}
	iter := rv.MapRange()
	for iter.Next() {
		if KeyString(iter.Key().Interface()) == key {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

// Has reports whether obj is an object containing key.
func Has(obj any, key string) bool {
	_, ok := Lookup(obj, key)
	return ok
}

// Set stores val under key in the object obj, mutating it in place.
//
// Returns:
//
//	bool: False when obj is not a writable object or val does not fit its element type.
func Set(obj any, key string, val any) bool {
	switch tv := obj.(type) {
	case map[string]any:
		if tv == nil {
			return false
		}
		tv[key] = val
		return true
	case map[any]any:
		if tv == nil {
			return false
		}
		tv[key] = val
		return true
	}
	rv, ok := mapValue(obj)
	if !ok || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return false
	}
	ev := reflect.ValueOf(val)
	elemType := rv.Type().Elem()
	if val == nil {
		ev = reflect.Zero(elemType)
	}
	if !ev.Type().AssignableTo(elemType) {
		return false
	}
	rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), ev)
	return true
}

// Elements returns the items of an array value.
//
// Returns:
//
//	[]any: The items, in order.
//	bool: True when v is an array.
func Elements(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// Clone returns a deep copy of v. Maps and slices are copied recursively into
// map[string]any / map[any]any / []any; scalars are returned unchanged.
func Clone(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(tv))
		for k, val := range tv {
			cp[k] = Clone(val)
		}
		return cp
	case map[any]any:
		cp := make(map[any]any, len(tv))
		for k, val := range tv {
			cp[k] = Clone(val)
		}
		return cp
	case []any:
		cp := make([]any, len(tv))
		for i, val := range tv {
			cp[i] = Clone(val)
		}
		return cp
	}
	switch KindOf(v) {
	case ValueObject:
		entries, _ := Entries(v)
		cp := make(map[string]any, len(entries))
		for _, e := range entries {
			cp[e.Key] = Clone(e.Value)
		}
		return cp
	case ValueArray:
		items, _ := Elements(v)
		cp := make([]any, len(items))
		for i, val := range items {
			cp[i] = Clone(val)
		}
		return cp
	default:
		return v
	}
}

// Normalize returns a canonical copy of v: objects become map[string]any,
// arrays []any, integers int64 (float64 when out of range), other numbers
// float64. Values with no JSON counterpart are rendered with fmt.Sprint.
func Normalize(v any) any {
	switch kind := KindOf(v); kind {
	case ValueNull, ValueBool, ValueString:
		return v
	case ValueInteger, ValueNumber:
		return normalizeNumber(v, kind)
	case ValueArray:
		items, _ := Elements(v)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Normalize(item)
		}
		return out
	case ValueObject:
		entries, _ := Entries(v)
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[e.Key] = Normalize(e.Value)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

func normalizeNumber(v any, kind ValueKind) any {
	switch tv := v.(type) {
	case int64:
		return tv
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i
		}
	case uint64:
		if tv > math.MaxInt64 {
			return float64(tv)
		}
		return int64(tv)
	case uint:
		if uint64(tv) > math.MaxInt64 {
			return float64(tv)
		}
		return int64(tv)
	}
	f, _ := Float(v)
	if kind == ValueInteger && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

func mapValue(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return reflect.Value{}, false
	}
	return rv, true
}
