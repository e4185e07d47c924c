package validate

import (
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
)

// validateArray applies "minItems", "maxItems" and "items" to a sequence.
func (c Context) validateArray(value any, node schema.Node, st state) error {
	elems, _ := model.Elements(value)

	if limit, ok, err := node.Count(schema.KeyMinItems); err != nil {
		return st.locate(err)
	} else if ok && len(elems) < limit {
		return st.fail(schema.KeyMinItems, "array has %d items, fewer than %d", len(elems), limit)
	}
	if limit, ok, err := node.Count(schema.KeyMaxItems); err != nil {
		return st.locate(err)
	} else if ok && len(elems) > limit {
		return st.fail(schema.KeyMaxItems, "array has %d items, more than %d", len(elems), limit)
	}

	items, err := node.Items()
	if err != nil {
		return st.locate(err)
	}
	switch items.Kind {
	case schema.ItemsUniform:
		for i, elem := range elems {
			if err := c.validateNode(elem, items.Uniform, st.index(i)); err != nil {
				return err
			}
		}
	case schema.ItemsTuple:
		return c.validateTuple(elems, node, items.Tuple, st)
	}
	return nil
}

// validateTuple checks element i against schema i. Elements past the tuple
// fall under strict mode and then the array's "additionalProperties".
func (c Context) validateTuple(elems []any, node schema.Node, tuple []schema.Node, st state) error {
	for i, elemSchema := range tuple {
		pos := st.index(i)
		if i >= len(elems) {
			if !c.isOptional(elemSchema, pos) {
				return pos.fail(schema.KeyItems, "tuple element %d is missing", i)
			}
			continue
		}
		if err := c.validateNode(elems[i], elemSchema, pos); err != nil {
			return err
		}
	}
	if len(elems) <= len(tuple) {
		return nil
	}

	first := len(tuple)
	if c.Strict() {
		return st.index(first).fail(schema.KeyAdditionalProperties, "array has %d elements, the tuple declares %d", len(elems), len(tuple))
	}
	policy, err := node.AdditionalProperties()
	if err != nil {
		return st.locate(err)
	}
	switch policy.Kind {
	case schema.AdditionalForbidden:
		return st.index(first).fail(schema.KeyAdditionalProperties, "array has %d elements, the tuple declares %d", len(elems), len(tuple))
	case schema.AdditionalSchema:
		for i := first; i < len(elems); i++ {
			if err := c.validateNode(elems[i], policy.Schema, st.index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
