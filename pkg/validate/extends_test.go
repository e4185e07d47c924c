package validate

import (
	"errors"
	"testing"

	verr "github.com/vhavlena/verischema/pkg/err"
)

func TestExtends(t *testing.T) {
	t.Parallel()
	prop01 := obj{"type": "number", "minimum": 10}
	schemaDoc := obj{"type": "object", "properties": obj{
		"prop01": prop01,
		"prop02": obj{"extends": prop01},
	}}

	expectValid(t, obj{"prop01": 21, "prop02": 21}, schemaDoc)
	expectValid(t, obj{"prop01": 10, "prop02": 20}, schemaDoc)
	expectInvalid(t, obj{"prop01": 9, "prop02": 21}, schemaDoc)
	ve := expectInvalid(t, obj{"prop01": 10, "prop02": 9}, schemaDoc)
	if ve.Keyword != "minimum" || ve.Location() != "#/prop02" {
		t.Fatalf("unexpected error: %v", ve)
	}
}

func TestExtendsBothMustPass(t *testing.T) {
	t.Parallel()
	base := obj{"type": "integer", "minimum": 0}
	child := obj{"extends": base, "maximum": 100}

	expectValid(t, 50, child)
	expectInvalid(t, -1, child)
	expectInvalid(t, 101, child)
	expectInvalid(t, 1.5, child)
}

func TestExtendsChainAndList(t *testing.T) {
	t.Parallel()
	root := obj{"type": "string"}
	middle := obj{"extends": root, "minLength": 2}
	leaf := obj{"extends": list{middle, obj{"maxLength": 4}}}

	expectValid(t, "abc", leaf)
	expectInvalid(t, "a", leaf)
	expectInvalid(t, "abcde", leaf)
	expectInvalid(t, 12, leaf)
	expectInvalid(t, "abc", obj{"extends": 3})
}

func TestExtendsCycle(t *testing.T) {
	t.Parallel()
	self := obj{"type": "number"}
	self["extends"] = self

	a := obj{"minimum": 1}
	b := obj{"extends": a}
	a["extends"] = b

	for name, schemaDoc := range map[string]obj{"self": self, "mutual": a} {
		t.Run(name, func(t *testing.T) {
			err := Validate(5, schemaDoc, WithMaxDepth(100000))
			if !errors.Is(err, verr.ErrExtendsCycle) {
				t.Fatalf("expected ErrExtendsCycle, got %v", err)
			}
			if !errors.Is(err, verr.ErrValidation) {
				t.Fatalf("cycle must also be a validation error: %v", err)
			}
		})
	}
}

func TestExtendsSharedAncestorIsNotACycle(t *testing.T) {
	t.Parallel()
	base := obj{"type": "integer"}
	schemaDoc := obj{"extends": list{base, base}, "properties": obj{}}
	expectValid(t, 3, schemaDoc)

	nested := obj{"extends": base, "items": obj{"extends": base}}
	expectValid(t, list{1, 2}, obj{"items": nested})
}
