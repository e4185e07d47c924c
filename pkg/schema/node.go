// Package schema provides a read-only, typed view over draft-03 style schema
// documents held in the generic value model.
package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"

	jptr "github.com/qri-io/jsonpointer"
	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/model"
)

// Recognized schema keywords.
const (
	KeySchema               = "$schema"
	KeyType                 = "type"
	KeyDisallow             = "disallow"
	KeyProperties           = "properties"
	KeyItems                = "items"
	KeyAdditionalProperties = "additionalProperties"
	KeyExtends              = "extends"
	KeyEnum                 = "enum"
	KeyPattern              = "pattern"
	KeyMinimum              = "minimum"
	KeyMaximum              = "maximum"
	KeyMinimumCanEqual      = "minimumCanEqual"
	KeyMaximumCanEqual      = "maximumCanEqual"
	KeyMinItems             = "minItems"
	KeyMaxItems             = "maxItems"
	KeyMinLength            = "minLength"
	KeyMaxLength            = "maxLength"
	KeyMaxDecimal           = "maxDecimal"
	KeyRequired             = "required"
	KeyOptional             = "optional"
	KeyReadonly             = "readonly"
	KeyDefault              = "default"
	KeyRequires             = "requires"
	KeyTitle                = "title"
	KeyDescription          = "description"
)

// Node is one schema position: a mapping of keywords. The zero Node is the
// empty schema, which accepts any value. A Node never modifies the document
// it was built from.
type Node struct {
	kw map[string]any
	id uintptr
}

// FromValue wraps a schema document or sub-document.
//
// Parameters:
//
//	v any: nil (empty schema), a Node, map[string]any or any other map whose
//	       keys are coerced to strings.
//
// Returns:
//
//	Node: The schema view.
//	error: A *ValidationError when v is not a mapping.
func FromValue(v any) (Node, error) {
	switch tv := v.(type) {
	case nil:
		return Node{}, nil
	case Node:
		return tv, nil
	case *Node:
		if tv == nil {
			return Node{}, nil
		}
		return *tv, nil
	case map[string]any:
		return Node{kw: tv, id: identity(tv)}, nil
	}
	entries, ok := model.Entries(v)
	if !ok {
		return Node{}, invalid(nil, "", "schema must be an object, got %s", model.KindOf(v))
	}
	kw := make(map[string]any, len(entries))
	for _, e := range entries {
		kw[e.Key] = e.Value
	}
	return Node{kw: kw, id: identity(v)}, nil
}

// MustFromValue is like FromValue but panics on error. Useful for schemas
// declared in Go code.
func MustFromValue(v any) Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// identity returns an address that is shared by every Node built from the
// same underlying map, used to detect schema cycles.
func identity(v any) uintptr {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return 0
	}
	return rv.Pointer()
}

// ID returns the identity of the underlying document map, zero for the
// empty schema.
func (n Node) ID() uintptr { return n.id }

// IsEmpty reports whether the node has no keywords.
func (n Node) IsEmpty() bool { return len(n.kw) == 0 }

// Has reports whether keyword key is present.
func (n Node) Has(key string) bool {
	_, ok := n.kw[key]
	return ok
}

// Get returns the raw value of keyword key.
func (n Node) Get(key string) (any, bool) {
	v, ok := n.kw[key]
	return v, ok
}

// Keywords returns the present keyword names in sorted order.
func (n Node) Keywords() []string {
	keys := make([]string, 0, len(n.kw))
	for k := range n.kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bool returns the value of a boolean keyword. Non-boolean values are
// treated as absent.
//
// Returns:
//
//	bool: The keyword value.
//	bool: True when the keyword is present and boolean.
func (n Node) Bool(key string) (bool, bool) {
	b, ok := n.kw[key].(bool)
	return b, ok
}

// Number returns the value of a numeric keyword.
//
// Returns:
//
//	float64: The keyword value.
//	bool: True when the keyword is present.
//	error: A *ValidationError when the keyword is present but not numeric.
func (n Node) Number(key string) (float64, bool, error) {
	v, ok, err := n.Bound(key)
	if !ok || err != nil {
		return 0, false, err
	}
	f, _ := model.Float(v)
	return f, true, nil
}

// Bound is like Number but returns the keyword value as written, for exact
// comparison with model.CompareNumbers.
func (n Node) Bound(key string) (any, bool, error) {
	v, ok := n.kw[key]
	if !ok {
		return nil, false, nil
	}
	if !model.KindOf(v).IsNumeric() {
		return nil, false, invalid(nil, key, "must be a number, got %s", model.Format(v))
	}
	return v, true, nil
}

// Count returns the value of a non-negative integer keyword (lengths, item
// counts, digit counts). Values beyond the int range saturate at math.MaxInt.
func (n Node) Count(key string) (int, bool, error) {
	v, ok := n.kw[key]
	if !ok {
		return 0, false, nil
	}
	f, isNum := model.Float(v)
	if !isNum || model.KindOf(v) != model.ValueInteger || f < 0 {
		return 0, false, invalid(nil, key, "must be a non-negative integer, got %s", model.Format(v))
	}
	if f >= float64(math.MaxInt) {
		return math.MaxInt, true, nil
	}
	return int(f), true, nil
}

// CanEqual reports whether the bound named by key ("minimumCanEqual" or
// "maximumCanEqual") is inclusive. Bounds are inclusive unless the keyword
// is explicitly false.
func (n Node) CanEqual(key string) bool {
	if b, ok := n.Bool(key); ok {
		return b
	}
	return true
}

// IsOptional reports whether a property (or tuple position) described by
// this node may be absent: "optional": true or "required": false.
// When both keywords are present and disagree, "optional" decides.
//
// Returns:
//
//	bool: True when the property may be absent.
//	bool: True when "optional" and "required" are both present and conflict.
func (n Node) IsOptional() (optional bool, conflict bool) {
	opt, hasOpt := n.Bool(KeyOptional)
	req, hasReq := n.Bool(KeyRequired)
	switch {
	case hasOpt && hasReq:
		return opt, opt == req
	case hasOpt:
		return opt, false
	case hasReq:
		return !req, false
	default:
		return false, false
	}
}

// Readonly reports whether defaults must not be written for this property.
func (n Node) Readonly() bool {
	b, _ := n.Bool(KeyReadonly)
	return b
}

// Default returns the declared default value.
func (n Node) Default() (any, bool) {
	return n.Get(KeyDefault)
}

// Requires returns the property names that must accompany this property.
func (n Node) Requires() ([]string, error) {
	v, ok := n.kw[KeyRequires]
	if !ok {
		return nil, nil
	}
	if s, isStr := v.(string); isStr {
		return []string{s}, nil
	}
	items, isArr := model.Elements(v)
	if !isArr {
		return nil, invalid(nil, KeyRequires, "must be a property name or a list of names, got %s", model.Format(v))
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		s, isStr := item.(string)
		if !isStr {
			return nil, invalid(nil, KeyRequires, "list entries must be strings, got %s", model.Format(item))
		}
		names = append(names, s)
	}
	return names, nil
}

// Pattern compiles the "pattern" keyword. The expression must match the
// whole string, so it is compiled as ^(?:expr)$.
//
// Returns:
//
//	*regexp.Regexp: The anchored expression.
//	string: The expression as written in the schema.
//	bool: True when the keyword is present.
//	error: A *ValidationError when the keyword is not a valid expression.
func (n Node) Pattern() (*regexp.Regexp, string, bool, error) {
	v, ok := n.kw[KeyPattern]
	if !ok {
		return nil, "", false, nil
	}
	s, isStr := v.(string)
	if !isStr {
		return nil, "", false, invalid(nil, KeyPattern, "must be a string, got %s", model.Format(v))
	}
	// "a)(b" only compiles once wrapped, so the raw text is checked first.
	if _, err := regexp.Compile(s); err != nil {
		return nil, "", false, invalid(nil, KeyPattern, "invalid regular expression %q: %v", s, err).WithCause(err)
	}
	re, err := regexp.Compile("^(?:" + s + ")$")
	if err != nil {
		return nil, "", false, invalid(nil, KeyPattern, "invalid regular expression %q: %v", s, err).WithCause(err)
	}
	return re, s, true, nil
}

// Enum returns the allowed values of the "enum" keyword.
func (n Node) Enum() ([]any, bool, error) {
	v, ok := n.kw[KeyEnum]
	if !ok {
		return nil, false, nil
	}
	items, isArr := model.Elements(v)
	if !isArr {
		return nil, false, invalid(nil, KeyEnum, "must be a list, got %s", model.Format(v))
	}
	return items, true, nil
}

// Property is one entry of the "properties" keyword.
type Property struct {
	Name   string
	Schema Node
}

// Properties returns the declared properties sorted by name.
func (n Node) Properties() ([]Property, error) {
	v, ok := n.kw[KeyProperties]
	if !ok {
		return nil, nil
	}
	entries, isObj := model.Entries(v)
	if !isObj {
		return nil, invalid(nil, KeyProperties, "must be an object, got %s", model.Format(v))
	}
	props := make([]Property, 0, len(entries))
	for _, e := range entries {
		child, err := FromValue(e.Value)
		if err != nil {
			return nil, invalid(nil, KeyProperties, "property %q: schema must be an object", e.Key)
		}
		props = append(props, Property{Name: e.Key, Schema: child})
	}
	return props, nil
}

// Extends returns the ancestor schemas named by "extends": a single schema
// or a list of schemas.
func (n Node) Extends() ([]Node, error) {
	v, ok := n.kw[KeyExtends]
	if !ok || v == nil {
		return nil, nil
	}
	if model.KindOf(v) == model.ValueObject {
		parent, err := FromValue(v)
		if err != nil {
			return nil, err
		}
		return []Node{parent}, nil
	}
	items, isArr := model.Elements(v)
	if !isArr {
		return nil, invalid(nil, KeyExtends, "must be a schema or a list of schemas, got %s", model.Format(v))
	}
	parents := make([]Node, 0, len(items))
	for i, item := range items {
		if model.KindOf(item) != model.ValueObject {
			return nil, invalid(nil, KeyExtends, "entry %d must be a schema, got %s", i, model.Format(item))
		}
		parent, err := FromValue(item)
		if err != nil {
			return nil, err
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

// String renders the node for log output.
func (n Node) String() string {
	if n.IsEmpty() {
		return "{}"
	}
	return model.Format(n.kw)
}

// invalid reports a malformed keyword as a validation failure at path.
func invalid(path jptr.Pointer, keyword string, format string, args ...any) *verr.ValidationError {
	return verr.NewValidationError(path, keyword, "invalid schema: %s", fmt.Sprintf(format, args...))
}
