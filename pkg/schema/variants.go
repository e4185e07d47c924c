package schema

import (
	"github.com/vhavlena/verischema/pkg/model"
)

// Type names accepted by "type" and "disallow".
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNull    = "null"
	TypeAny     = "any"
)

// TypeSpecKind discriminates the shapes of "type" and "disallow".
type TypeSpecKind int

const (
	// TypeAbsent: the keyword is not present.
	TypeAbsent TypeSpecKind = iota
	// TypeName: a single type name.
	TypeName
	// TypeNameList: a list of type names.
	TypeNameList
	// TypeSchemaList: a list of sub-schemas; plain names in a mixed list are
	// promoted to {"type": name}.
	TypeSchemaList
)

// TypeSpec is the resolved form of a "type" or "disallow" keyword.
type TypeSpec struct {
	Kind    TypeSpecKind
	Names   []string
	Schemas []Node
}

// Type resolves the "type" keyword.
func (n Node) Type() (TypeSpec, error) { return n.typeSpec(KeyType) }

// Disallow resolves the "disallow" keyword.
func (n Node) Disallow() (TypeSpec, error) { return n.typeSpec(KeyDisallow) }

func (n Node) typeSpec(key string) (TypeSpec, error) {
	v, ok := n.kw[key]
	if !ok {
		return TypeSpec{Kind: TypeAbsent}, nil
	}
	if name, isStr := v.(string); isStr {
		return TypeSpec{Kind: TypeName, Names: []string{name}}, nil
	}
	items, isArr := model.Elements(v)
	if !isArr {
		return TypeSpec{}, invalid(nil, key, "must be a type name or a list, got %s", model.Format(v))
	}

	names := make([]string, 0, len(items))
	allNames := true
	for _, item := range items {
		switch tv := item.(type) {
		case string:
			names = append(names, tv)
		default:
			if model.KindOf(item) != model.ValueObject {
				return TypeSpec{}, invalid(nil, key, "list entries must be type names or schemas, got %s", model.Format(item))
			}
			allNames = false
		}
	}
	if allNames {
		return TypeSpec{Kind: TypeNameList, Names: names}, nil
	}

	schemas := make([]Node, 0, len(items))
	for _, item := range items {
		if name, isStr := item.(string); isStr {
			schemas = append(schemas, Node{kw: map[string]any{KeyType: name}})
			continue
		}
		sub, err := FromValue(item)
		if err != nil {
			return TypeSpec{}, err
		}
		schemas = append(schemas, sub)
	}
	return TypeSpec{Kind: TypeSchemaList, Schemas: schemas}, nil
}

// MatchesName reports whether a value of kind k satisfies the type name.
// "number" covers integers, "integer" never covers booleans and "any"
// covers everything. Unknown names match nothing.
func MatchesName(name string, k model.ValueKind) bool {
	switch name {
	case TypeAny:
		return true
	case TypeNumber:
		return k.IsNumeric()
	case TypeInteger:
		return k == model.ValueInteger
	case TypeString, TypeBoolean, TypeObject, TypeArray, TypeNull:
		return string(k) == name
	default:
		return false
	}
}

// ItemsKind discriminates the shapes of "items".
type ItemsKind int

const (
	ItemsAbsent ItemsKind = iota
	// ItemsUniform: one schema for every element.
	ItemsUniform
	// ItemsTuple: element i is validated by schema i.
	ItemsTuple
)

// Items is the resolved form of the "items" keyword.
type Items struct {
	Kind    ItemsKind
	Uniform Node
	Tuple   []Node
}

// Items resolves the "items" keyword.
func (n Node) Items() (Items, error) {
	v, ok := n.kw[KeyItems]
	if !ok {
		return Items{Kind: ItemsAbsent}, nil
	}
	if model.KindOf(v) == model.ValueObject {
		uniform, err := FromValue(v)
		if err != nil {
			return Items{}, err
		}
		return Items{Kind: ItemsUniform, Uniform: uniform}, nil
	}
	elems, isArr := model.Elements(v)
	if !isArr {
		return Items{}, invalid(nil, KeyItems, "must be a schema or a list of schemas, got %s", model.Format(v))
	}
	tuple := make([]Node, 0, len(elems))
	for i, elem := range elems {
		if model.KindOf(elem) != model.ValueObject {
			return Items{}, invalid(nil, KeyItems, "entry %d must be a schema, got %s", i, model.Format(elem))
		}
		sub, err := FromValue(elem)
		if err != nil {
			return Items{}, err
		}
		tuple = append(tuple, sub)
	}
	return Items{Kind: ItemsTuple, Tuple: tuple}, nil
}

// AdditionalKind discriminates the shapes of "additionalProperties".
type AdditionalKind int

const (
	AdditionalAbsent AdditionalKind = iota
	// AdditionalAllowed: explicitly true.
	AdditionalAllowed
	// AdditionalForbidden: explicitly false.
	AdditionalForbidden
	// AdditionalSchema: undeclared members must match Schema.
	AdditionalSchema
)

// Additional is the resolved additional-properties policy of a node.
type Additional struct {
	Kind   AdditionalKind
	Schema Node
}

// AdditionalProperties resolves the "additionalProperties" keyword, which
// may be a boolean or a schema.
func (n Node) AdditionalProperties() (Additional, error) {
	v, ok := n.kw[KeyAdditionalProperties]
	if !ok {
		return Additional{Kind: AdditionalAbsent}, nil
	}
	if b, isBool := v.(bool); isBool {
		if b {
			return Additional{Kind: AdditionalAllowed}, nil
		}
		return Additional{Kind: AdditionalForbidden}, nil
	}
	if model.KindOf(v) != model.ValueObject {
		return Additional{}, invalid(nil, KeyAdditionalProperties, "must be a boolean or a schema, got %s", model.Format(v))
	}
	sub, err := FromValue(v)
	if err != nil {
		return Additional{}, err
	}
	return Additional{Kind: AdditionalSchema, Schema: sub}, nil
}
