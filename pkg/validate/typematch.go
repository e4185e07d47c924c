package validate

import (
	"strings"

	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
)

// checkType enforces the "type" keyword.
//
// A list of sub-schemas is a union: the value must satisfy at least one
// alternative. Alternatives are probed without default injection; the first
// one that matches is then re-run with the caller's context so that only its
// defaults are written.
func (c Context) checkType(value any, node schema.Node, st state) error {
	spec, err := node.Type()
	if err != nil {
		return st.locate(err)
	}

	switch spec.Kind {
	case schema.TypeName, schema.TypeNameList:
		if matchesAnyName(spec.Names, model.KindOf(value)) {
			return nil
		}
		return st.fail(schema.KeyType, "%s is %s, want %s", model.Format(value), model.KindOf(value), describeNames(spec.Names))
	case schema.TypeSchemaList:
		idx, err := c.firstMatch(value, spec.Schemas, st)
		if err != nil {
			return err
		}
		if idx < 0 {
			return st.fail(schema.KeyType, "%s matches none of the %d allowed schemas", model.Format(value), len(spec.Schemas))
		}
		if !c.allowDefaults {
			return nil
		}
		return c.validateNode(value, spec.Schemas[idx], st.same())
	default:
		return nil
	}
}

// checkDisallow enforces the "disallow" keyword, the inverse of "type".
// Disallowed schemas are only probed, so they never inject defaults.
func (c Context) checkDisallow(value any, node schema.Node, st state) error {
	spec, err := node.Disallow()
	if err != nil {
		return st.locate(err)
	}

	switch spec.Kind {
	case schema.TypeName, schema.TypeNameList:
		kind := model.KindOf(value)
		for _, name := range spec.Names {
			if schema.MatchesName(name, kind) {
				return st.fail(schema.KeyDisallow, "%s is of disallowed type %s", model.Format(value), name)
			}
		}
		return nil
	case schema.TypeSchemaList:
		idx, err := c.firstMatch(value, spec.Schemas, st)
		if err != nil {
			return err
		}
		if idx >= 0 {
			return st.fail(schema.KeyDisallow, "%s matches disallowed schema %d", model.Format(value), idx)
		}
		return nil
	default:
		return nil
	}
}

// firstMatch returns the index of the first alternative value satisfies, or
// -1. Violations inside alternatives are discarded; extends cycles and depth
// overflows are not.
func (c Context) firstMatch(value any, alternatives []schema.Node, st state) (int, error) {
	probe := c.probing()
	for i, alt := range alternatives {
		err := probe.validateNode(value, alt, st.same())
		if err == nil {
			return i, nil
		}
		if isStructural(err) || !verr.IsValidationError(err) {
			return -1, err
		}
		c.logger.With(map[string]any{"path": st.location(), "alternative": i}).Debugf("alternative rejected: %v", err)
	}
	return -1, nil
}

func matchesAnyName(names []string, kind model.ValueKind) bool {
	for _, name := range names {
		if schema.MatchesName(name, kind) {
			return true
		}
	}
	return false
}

func describeNames(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return "one of [" + strings.Join(names, ", ") + "]"
}
