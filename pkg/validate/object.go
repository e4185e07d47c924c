package validate

import (
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
)

// validateObject applies "properties", "requires" and the
// additional-properties policy to a mapping value.
func (c Context) validateObject(value any, node schema.Node, st state) error {
	props, err := node.Properties()
	if err != nil {
		return st.locate(err)
	}

	declared := make(map[string]struct{}, len(props))
	for _, prop := range props {
		declared[prop.Name] = struct{}{}
		if prop.Name == st.skip {
			continue
		}
		pos := st.child(prop.Name)

		member, present := model.Lookup(value, prop.Name)
		if !present {
			if err := c.missingProperty(value, prop, pos); err != nil {
				return err
			}
			continue
		}
		if err := c.validateNode(member, prop.Schema, pos); err != nil {
			return err
		}

		requires, err := prop.Schema.Requires()
		if err != nil {
			return pos.locate(err)
		}
		for _, other := range requires {
			if !model.Has(value, other) {
				return pos.fail(schema.KeyRequires, "property %q requires property %q", prop.Name, other)
			}
		}
	}

	return c.checkAdditionalMembers(value, node, declared, st)
}

// missingProperty decides what an absent property means: a violation when
// it is required, otherwise an opportunity to write its default.
func (c Context) missingProperty(value any, prop schema.Property, pos state) error {
	if !c.isOptional(prop.Schema, pos) {
		return pos.fail(schema.KeyRequired, "required property %q is missing", prop.Name)
	}

	def, ok := prop.Schema.Default()
	if !ok || !c.allowDefaults || prop.Schema.Readonly() {
		return nil
	}
	if !model.Set(value, prop.Name, model.Clone(def)) {
		c.logger.With(map[string]any{"path": pos.location()}).Debugf("default for %q not written: object is not writable", prop.Name)
	}
	return nil
}

// isOptional reads the optional/required spelling of node and warns when
// the two keywords disagree.
func (c Context) isOptional(node schema.Node, pos state) bool {
	optional, conflict := node.IsOptional()
	if conflict {
		c.logger.With(map[string]any{"path": pos.location()}).Warnf("both %q and %q are set; using optional=%t", schema.KeyOptional, schema.KeyRequired, optional)
	}
	return optional
}

// checkAdditionalMembers applies the additional-properties policy to the
// members of value that are not in declared.
func (c Context) checkAdditionalMembers(value any, node schema.Node, declared map[string]struct{}, st state) error {
	entries, _ := model.Entries(value)
	extras := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := declared[e.Key]; ok {
			continue
		}
		if st.skip != "" && e.Key == st.skip {
			continue
		}
		extras = append(extras, e)
	}
	if len(extras) == 0 {
		return nil
	}

	if c.Strict() {
		return st.child(extras[0].Key).fail(schema.KeyAdditionalProperties, "additional property %q is not allowed", extras[0].Key)
	}
	policy, err := node.AdditionalProperties()
	if err != nil {
		return st.locate(err)
	}
	switch policy.Kind {
	case schema.AdditionalForbidden:
		return st.child(extras[0].Key).fail(schema.KeyAdditionalProperties, "additional property %q is not allowed", extras[0].Key)
	case schema.AdditionalSchema:
		for _, e := range extras {
			if err := c.validateNode(e.Value, policy.Schema, st.child(e.Key)); err != nil {
				return err
			}
		}
	}
	return nil
}
