package validate

import (
	"math"
	"testing"

	"github.com/vhavlena/verischema/pkg/model"
)

func TestMaximum(t *testing.T) {
	t.Parallel()
	bare := obj{"type": "object", "properties": obj{
		"prop01": obj{"type": "number", "maximum": 10},
		"prop02": obj{"type": "integer", "maximum": 20},
	}}
	expectValid(t, obj{"prop01": 5, "prop02": 10}, bare)
	expectValid(t, obj{"prop01": 10, "prop02": 20}, bare)
	expectInvalid(t, obj{"prop01": 11, "prop02": 19}, bare)
	expectInvalid(t, obj{"prop01": 9, "prop02": 21}, bare)

	canEqual := obj{"type": "object", "properties": obj{
		"prop01": obj{"type": "number", "maximum": 10, "maximumCanEqual": true},
		"prop02": obj{"type": "integer", "maximum": 20, "maximumCanEqual": false},
	}}
	expectValid(t, obj{"prop01": 10, "prop02": 10}, canEqual)
	expectValid(t, obj{"prop01": 10, "prop02": 19}, canEqual)
	expectInvalid(t, obj{"prop01": 11, "prop02": 19}, canEqual)
	ve := expectInvalid(t, obj{"prop01": 9, "prop02": 20}, canEqual)
	if ve.Keyword != "maximum" || ve.Location() != "#/prop02" {
		t.Fatalf("unexpected error: %v", ve)
	}
}

func TestMinimum(t *testing.T) {
	t.Parallel()
	bare := obj{"type": "object", "properties": obj{
		"prop01": obj{"type": "number", "minimum": 10},
		"prop02": obj{"type": "integer", "minimum": 20},
	}}
	expectValid(t, obj{"prop01": 21, "prop02": 21}, bare)
	expectValid(t, obj{"prop01": 10, "prop02": 20}, bare)
	expectInvalid(t, obj{"prop01": 9, "prop02": 21}, bare)
	expectInvalid(t, obj{"prop01": 10, "prop02": 19}, bare)

	canEqual := obj{"type": "object", "properties": obj{
		"prop01": obj{"type": "number", "minimum": 10, "minimumCanEqual": false},
		"prop02": obj{"type": "integer", "minimum": 19, "minimumCanEqual": true},
	}}
	expectValid(t, obj{"prop01": 11, "prop02": 19}, canEqual)
	expectInvalid(t, obj{"prop01": 10, "prop02": 19}, canEqual)
	expectInvalid(t, obj{"prop01": 11, "prop02": 18}, canEqual)
}

func TestRangeProperty(t *testing.T) {
	t.Parallel()
	values := []any{-3, 0, 4.5, 9.999, 10, 10.0, 10.001, 11, int64(25), uint8(10)}
	bound := 10.0

	for _, v := range values {
		f, _ := model.Float(v)
		if got := Validate(v, obj{"maximum": bound}) == nil; got != (f <= bound) {
			t.Errorf("maximum %v with %v: valid=%t", bound, v, got)
		}
		if got := Validate(v, obj{"maximum": bound, "maximumCanEqual": false}) == nil; got != (f < bound) {
			t.Errorf("exclusive maximum %v with %v: valid=%t", bound, v, got)
		}
		if got := Validate(v, obj{"minimum": bound}) == nil; got != (f >= bound) {
			t.Errorf("minimum %v with %v: valid=%t", bound, v, got)
		}
		if got := Validate(v, obj{"minimum": bound, "minimumCanEqual": false}) == nil; got != (f > bound) {
			t.Errorf("exclusive minimum %v with %v: valid=%t", bound, v, got)
		}
	}

	expectValid(t, "11", obj{"maximum": 10})
	expectInvalid(t, 1, obj{"maximum": "ten"})
}

func TestRangeLargeIntegers(t *testing.T) {
	t.Parallel()
	const limit = 1 << 53
	expectInvalid(t, int64(limit+1), obj{"maximum": int64(limit)})
	expectInvalid(t, int64(limit+1), obj{"maximum": float64(limit)})
	expectValid(t, int64(limit+1), obj{"maximum": int64(limit + 1)})
	expectInvalid(t, int64(limit), obj{"minimum": int64(limit + 1)})
	expectInvalid(t, int64(limit+1), obj{"maximum": int64(limit + 1), "maximumCanEqual": false})
	expectValid(t, uint64(math.MaxUint64), obj{"minimum": int64(math.MaxInt64)})
	expectInvalid(t, uint64(math.MaxUint64-1), obj{"minimum": uint64(math.MaxUint64)})
}

func TestRangeNonFinite(t *testing.T) {
	t.Parallel()
	expectValid(t, math.Inf(1), obj{"minimum": 10})
	expectInvalid(t, math.Inf(1), obj{"maximum": 10})
	expectValid(t, 1e308, obj{"maximum": math.Inf(1)})
	expectInvalid(t, math.NaN(), obj{"maximum": 10})
	expectInvalid(t, math.NaN(), obj{"minimum": 10})
}

func TestLength(t *testing.T) {
	t.Parallel()
	expectValid(t, "a", obj{"maxLength": 1e20})
	expectInvalid(t, "a", obj{"minLength": 1e20})
	phase(t, "minLength", obj{"minLength": 4}, true, "test", "string", 123, list{1, 2, "3"}, "ünïc")
	phase(t, "minLength", obj{"minLength": 4}, false, "car", "ünï")
	phase(t, "maxLength", obj{"maxLength": 4}, true, "test", "car", 12345, list{1, 2, "3", 4, 5}, "ñññ")
	phase(t, "maxLength", obj{"maxLength": 4}, false, "string")
}

func TestLengthProperty(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "a", "abc", "abcd", "abcdefgh"} {
		for n := 0; n < 6; n++ {
			valid := Validate(s, obj{"minLength": n}) == nil
			if valid != (len(s) >= n) {
				t.Errorf("minLength %d with %q: valid=%t", n, s, valid)
			}
		}
	}
}

func TestMaxDecimal(t *testing.T) {
	t.Parallel()
	schemaDoc := obj{"type": "number", "maxDecimal": 3}
	phase(t, "maxDecimal", schemaDoc, true, 10.20, 10.204, 10, 0.5)
	phase(t, "maxDecimal", schemaDoc, false, 10.04092, 0.0001)
	expectValid(t, "1.23456", obj{"maxDecimal": 1})
}

func TestPattern(t *testing.T) {
	t.Parallel()
	schemaDoc := obj{"pattern": `^[A-Za-z0-9][A-Za-z0-9\.]*@([A-Za-z0-9]+\.)+[A-Za-z0-9]+$`}

	expectValid(t, "my.email01@gmail.com", schemaDoc)
	expectValid(t, 123, schemaDoc)
	ve := expectInvalid(t, "whatever", schemaDoc)
	if ve.Keyword != "pattern" {
		t.Fatalf("unexpected error: %v", ve)
	}

	// The expression must cover the whole string.
	expectValid(t, "abc", obj{"pattern": "abc"})
	ve = expectInvalid(t, "xx-abc-yy", obj{"pattern": "abc"})
	if ve.Keyword != "pattern" {
		t.Fatalf("unexpected error: %v", ve)
	}
	expectInvalid(t, "abcabc", obj{"pattern": "abc"})
	expectValid(t, "yes", obj{"pattern": "yes|no"})
	expectInvalid(t, "yesno", obj{"pattern": "yes|no"})
	expectInvalid(t, "x", obj{"pattern": "a)(b"})

	ve = expectInvalid(t, "x", obj{"pattern": "("})
	if ve.Keyword != "pattern" {
		t.Fatalf("unexpected error: %v", ve)
	}
}

func TestEnum(t *testing.T) {
	t.Parallel()
	schemaDoc := obj{"enum": list{"test", true, 123, list{"???"}, obj{"k": list{1, 2}}}}

	phase(t, "enum", schemaDoc, true, "test", true, 123, 123.0, int64(123), list{"???"}, obj{"k": list{1.0, 2}})
	phase(t, "enum", schemaDoc, false, "unknown", false, 124, list{"???", "!"}, obj{"k": list{2, 1}}, nil)
	expectInvalid(t, 1, obj{"enum": 1})

	expectInvalid(t, math.NaN(), obj{"enum": list{"NaN"}})
	expectInvalid(t, math.NaN(), obj{"enum": list{math.NaN()}})
	expectInvalid(t, math.Inf(1), obj{"enum": list{"+Inf", 1e308}})
	expectValid(t, math.Inf(-1), obj{"enum": list{"-Inf", math.Inf(-1)}})
}

func TestMetadata(t *testing.T) {
	t.Parallel()
	expectValid(t, "whatever", obj{"title": "My Title for My Schema"})
	expectValid(t, "whatever", obj{"description": "My Description for My Schema"})

	ve := expectInvalid(t, "whatever", obj{"title": 1233})
	if ve.Keyword != "title" {
		t.Fatalf("unexpected error: %v", ve)
	}
	ve = expectInvalid(t, "whatever", obj{"description": 1233})
	if ve.Keyword != "description" {
		t.Fatalf("unexpected error: %v", ve)
	}
}
