package model

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/open-policy-agent/opa/ast"
)

// Equal reports whether a and b hold the same JSON value. Objects compare
// without regard to key order and numbers compare by numeric value, so
// int64(123) equals float64(123).
//
// Parameters:
//
//	a any: The first value.
//	b any: The second value.
//
// Returns:
//
//	bool: True when both values are structurally equal.
func Equal(a, b any) bool {
	na, nb := Normalize(a), Normalize(b)
	if containsNaN(na) || containsNaN(nb) {
		return false
	}
	return toTerm(na, nonFiniteMarker).Value.Compare(toTerm(nb, nonFiniteMarker).Value) == 0
}

// Format renders v in a compact JSON-like form for error messages.
func Format(v any) string {
	return toTerm(Normalize(v), nonFiniteText).String()
}

// nonFiniteMarker maps an infinity to a set term. Decoded documents never
// hold sets, so an infinity only equals the same infinity.
func nonFiniteMarker(f float64) *ast.Term {
	return ast.SetTerm(nonFiniteText(f))
}

func nonFiniteText(f float64) *ast.Term {
	return ast.StringTerm(strconv.FormatFloat(f, 'g', -1, 64))
}

// containsNaN reports whether a normalized value holds NaN at any depth.
func containsNaN(v any) bool {
	switch tv := v.(type) {
	case float64:
		return math.IsNaN(tv)
	case []any:
		for _, item := range tv {
			if containsNaN(item) {
				return true
			}
		}
	case map[string]any:
		for _, item := range tv {
			if containsNaN(item) {
				return true
			}
		}
	}
	return false
}

// toTerm converts a normalized value into an OPA AST term.
//
// Parameters:
//
//	v any: A value produced by Normalize.
//	nonFinite func(float64) *ast.Term: Renders NaN and the infinities.
//
// Returns:
//
//	*ast.Term: The equivalent term.
func toTerm(v any, nonFinite func(float64) *ast.Term) *ast.Term {
	switch tv := v.(type) {
	case nil:
		return ast.NullTerm()
	case bool:
		return ast.BooleanTerm(tv)
	case string:
		return ast.StringTerm(tv)
	case int64:
		return ast.NumberTerm(json.Number(strconv.FormatInt(tv, 10)))
	case float64:
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return nonFinite(tv)
		}
		return ast.NumberTerm(json.Number(strconv.FormatFloat(tv, 'g', -1, 64)))
	case []any:
		terms := make([]*ast.Term, len(tv))
		for i, item := range tv {
			terms[i] = toTerm(item, nonFinite)
		}
		return ast.ArrayTerm(terms...)
	case map[string]any:
		items := make([][2]*ast.Term, 0, len(tv))
		for k, item := range tv {
			items = append(items, ast.Item(ast.StringTerm(k), toTerm(item, nonFinite)))
		}
		return ast.ObjectTerm(items...)
	default:
		return ast.StringTerm(KeyString(v))
	}
}
