package validate

import (
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
)

// leafChecker is a stateless predicate for one group of leaf keywords.
type leafChecker func(value any, node schema.Node, st state) error

// leafCheckers run in this order after the structural rules.
var leafCheckers = []leafChecker{
	checkRange,
	checkDecimals,
	checkLength,
	checkPattern,
	checkEnum,
	checkMetadata,
}

func checkLeaves(value any, node schema.Node, st state) error {
	for _, check := range leafCheckers {
		if err := check(value, node, st); err != nil {
			return err
		}
	}
	return nil
}

// checkRange enforces "minimum" and "maximum" on numbers. Bounds are
// inclusive unless minimumCanEqual/maximumCanEqual is false.
func checkRange(value any, node schema.Node, st state) error {
	if !model.KindOf(value).IsNumeric() {
		return nil
	}

	minimum, ok, err := node.Bound(schema.KeyMinimum)
	if err != nil {
		return st.locate(err)
	}
	if ok {
		inclusive := node.CanEqual(schema.KeyMinimumCanEqual)
		order, known := model.CompareNumbers(value, minimum)
		if !known || order < 0 || (!inclusive && order == 0) {
			return st.fail(schema.KeyMinimum, "%s is below the minimum of %s%s", model.Format(value), model.Format(minimum), exclusiveNote(inclusive))
		}
	}

	maximum, ok, err := node.Bound(schema.KeyMaximum)
	if err != nil {
		return st.locate(err)
	}
	if ok {
		inclusive := node.CanEqual(schema.KeyMaximumCanEqual)
		order, known := model.CompareNumbers(value, maximum)
		if !known || order > 0 || (!inclusive && order == 0) {
			return st.fail(schema.KeyMaximum, "%s is above the maximum of %s%s", model.Format(value), model.Format(maximum), exclusiveNote(inclusive))
		}
	}
	return nil
}

func exclusiveNote(inclusive bool) string {
	if inclusive {
		return ""
	}
	return " (exclusive)"
}

// checkDecimals enforces "maxDecimal" on numbers.
func checkDecimals(value any, node schema.Node, st state) error {
	places, ok := model.DecimalPlaces(value)
	if !ok {
		return nil
	}
	limit, ok, err := node.Count(schema.KeyMaxDecimal)
	if err != nil {
		return st.locate(err)
	}
	if ok && places > limit {
		return st.fail(schema.KeyMaxDecimal, "%s has %d decimal places, more than %d", model.Format(value), places, limit)
	}
	return nil
}

// checkLength enforces "minLength" and "maxLength" on strings.
func checkLength(value any, node schema.Node, st state) error {
	length, ok := model.RuneLength(value)
	if !ok {
		return nil
	}
	if limit, ok, err := node.Count(schema.KeyMinLength); err != nil {
		return st.locate(err)
	} else if ok && length < limit {
		return st.fail(schema.KeyMinLength, "string of length %d is shorter than %d", length, limit)
	}
	if limit, ok, err := node.Count(schema.KeyMaxLength); err != nil {
		return st.locate(err)
	} else if ok && length > limit {
		return st.fail(schema.KeyMaxLength, "string of length %d is longer than %d", length, limit)
	}
	return nil
}

// checkPattern requires strings to match "pattern" in full.
func checkPattern(value any, node schema.Node, st state) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	re, expr, ok, err := node.Pattern()
	if err != nil {
		return st.locate(err)
	}
	if ok && !re.MatchString(s) {
		return st.fail(schema.KeyPattern, "%q does not match %s", s, expr)
	}
	return nil
}

func checkEnum(value any, node schema.Node, st state) error {
	members, ok, err := node.Enum()
	if err != nil {
		return st.locate(err)
	}
	if !ok {
		return nil
	}
	for _, member := range members {
		if model.Equal(value, member) {
			return nil
		}
	}
	return st.fail(schema.KeyEnum, "%s is not one of %s", model.Format(value), model.Format(members))
}

// checkMetadata requires "title" and "description" to be strings. They never
// constrain the value itself.
func checkMetadata(_ any, node schema.Node, st state) error {
	for _, key := range []string{schema.KeyTitle, schema.KeyDescription} {
		v, ok := node.Get(key)
		if !ok {
			continue
		}
		if _, isStr := v.(string); !isStr {
			return st.fail(key, "invalid schema: must be a string, got %s", model.Format(v))
		}
	}
	return nil
}
