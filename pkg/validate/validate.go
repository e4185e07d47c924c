// Package validate checks JSON-like values against draft-03 style schema
// documents and fills in declared defaults.
//
// A call walks the value and the schema in lockstep and stops at the first
// violated constraint, which is returned as a *err.ValidationError. For every
// schema node the evaluation order is: extends, type, disallow, the object or
// array rules, then the leaf constraints.
package validate

import (
	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
)

// Validate checks value against schemaDoc.
//
// Parameters:
//
//	value any: The value to check. Declared defaults of missing optional
//	           properties are written into its maps in place.
//	schemaDoc any: The schema document, a schema.Node, or nil to use the
//	           schema embedded under "$schema" in value.
//	opts ...Option: Call configuration.
//
// Returns:
//
//	error: nil when value conforms, otherwise the first violation as a
//	       *err.ValidationError.
func Validate(value any, schemaDoc any, opts ...Option) error {
	return NewContext(opts...).Validate(value, schemaDoc)
}

// ValidateCopy is like Validate but leaves value untouched: defaults are
// written into a deep copy, which is returned on success.
func ValidateCopy(value any, schemaDoc any, opts ...Option) (any, error) {
	patched := model.Clone(value)
	if err := Validate(patched, schemaDoc, opts...); err != nil {
		return nil, err
	}
	return patched, nil
}

// Validate checks value against schemaDoc with the configuration of c.
func (c Context) Validate(value any, schemaDoc any) error {
	st := state{}
	if schemaDoc == nil {
		carrier, ok := embeddedSchema(value)
		if !ok {
			return nil
		}
		if model.KindOf(carrier) != model.ValueObject {
			return st.child(schema.KeySchema).fail(schema.KeySchema, "embedded schema must be an object, got %s", model.KindOf(carrier))
		}
		schemaDoc = carrier
		st.skip = schema.KeySchema
	}

	node, err := schema.FromValue(schemaDoc)
	if err != nil {
		return st.locate(err)
	}
	err = c.validateNode(value, node, st)
	if err != nil {
		c.logger.With(map[string]any{"path": locationOf(err)}).Debugf("validation failed: %v", err)
	}
	return err
}

func embeddedSchema(value any) (any, bool) {
	if model.KindOf(value) != model.ValueObject {
		return nil, false
	}
	return model.Lookup(value, schema.KeySchema)
}

// validateNode runs every keyword of node against value at position st.
func (c Context) validateNode(value any, node schema.Node, st state) error {
	if st.depth > c.maxDepth {
		return st.fail("", "nesting deeper than %d levels", c.maxDepth).WithCause(verr.ErrDepthExceeded)
	}
	if err := c.resolveExtends(value, node, st); err != nil {
		return err
	}
	if err := c.checkType(value, node, st); err != nil {
		return err
	}
	if err := c.checkDisallow(value, node, st); err != nil {
		return err
	}

	switch model.KindOf(value) {
	case model.ValueObject:
		if err := c.validateObject(value, node, st); err != nil {
			return err
		}
	case model.ValueArray:
		if err := c.validateArray(value, node, st); err != nil {
			return err
		}
	}
	return checkLeaves(value, node, st)
}
