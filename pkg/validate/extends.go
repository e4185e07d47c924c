package validate

import (
	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/schema"
)

// resolveExtends validates value against every ancestor named by the
// "extends" keyword of node before node's own keywords are looked at.
// Ancestors may extend further; a node met again on its own chain is a cycle.
func (c Context) resolveExtends(value any, node schema.Node, st state) error {
	parents, err := node.Extends()
	if err != nil {
		return st.locate(err)
	}
	if len(parents) == 0 {
		return nil
	}

	inner := st.extending(node.ID())
	for _, parent := range parents {
		if inner.resolving(parent.ID()) {
			return st.fail(schema.KeyExtends, "schema extends itself").WithCause(verr.ErrExtendsCycle)
		}
		if err := c.validateNode(value, parent, inner); err != nil {
			return err
		}
	}
	return nil
}
