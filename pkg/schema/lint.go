package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"strconv"

	jptr "github.com/qri-io/jsonpointer"
	qjsonschema "github.com/qri-io/jsonschema"
	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/model"
)

//go:embed meta_schema.json
var metaSchemaJSON []byte

// LintIssue is one malformed keyword found in a schema document.
type LintIssue struct {
	// Path is the JSON pointer of the offending keyword inside the schema document.
	Path    string
	Message string
}

func (i LintIssue) String() string {
	return "#" + i.Path + ": " + i.Message
}

// Lint checks the keyword shapes of every schema node in doc against the
// embedded meta-schema. It reports type and range mistakes such as
// "minItems": "four" before any value is validated.
//
// Parameters:
//
//	ctx context.Context: Passed to the meta-schema validator.
//	doc []byte: A JSON or YAML schema document.
//
// Returns:
//
//	[]LintIssue: The issues found, in document order; empty for a clean document.
//	error: ErrInvalidSchemaDocument when doc cannot be decoded or is not an object.
func Lint(ctx context.Context, doc []byte) ([]LintIssue, error) {
	root, err := model.Decode(doc)
	if err != nil {
		return nil, verr.ErrLint(err)
	}
	return LintValue(ctx, root)
}

// LintValue is like Lint for a schema document that is already decoded.
func LintValue(ctx context.Context, root any) ([]LintIssue, error) {
	if model.KindOf(root) != model.ValueObject {
		return nil, verr.ErrLint(invalid(nil, "", "schema must be an object, got %s", model.KindOf(root)))
	}
	meta := &qjsonschema.Schema{}
	if err := json.Unmarshal(metaSchemaJSON, meta); err != nil {
		return nil, verr.ErrLint(err)
	}

	var issues []LintIssue
	var walk func(node any, at jptr.Pointer) error
	walk = func(node any, at jptr.Pointer) error {
		data, err := json.Marshal(model.Normalize(node))
		if err != nil {
			return verr.ErrLint(err)
		}
		keyErrs, err := meta.ValidateBytes(ctx, data)
		if err != nil {
			return verr.ErrLint(err)
		}
		for _, ke := range keyErrs {
			path := ke.PropertyPath
			if path == "/" {
				path = ""
			}
			issues = append(issues, LintIssue{Path: at.String() + path, Message: ke.Message})
		}
		for _, child := range childSchemas(node, at) {
			if err := walk(child.node, child.at); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, jptr.Pointer{}); err != nil {
		return nil, err
	}
	return issues, nil
}

type located struct {
	node any
	at   jptr.Pointer
}

// childSchemas lists the sub-schemas nested directly under node.
func childSchemas(node any, at jptr.Pointer) []located {
	var out []located
	add := func(v any, tokens ...string) {
		if model.KindOf(v) == model.ValueObject {
			out = append(out, located{node: v, at: descend(at, tokens...)})
		}
	}
	addEach := func(v any, key string) {
		if model.KindOf(v) == model.ValueObject {
			add(v, key)
			return
		}
		items, _ := model.Elements(v)
		for i, item := range items {
			add(item, key, strconv.Itoa(i))
		}
	}

	if props, ok := model.Lookup(node, KeyProperties); ok {
		entries, _ := model.Entries(props)
		for _, e := range entries {
			add(e.Value, KeyProperties, e.Key)
		}
	}
	for _, key := range []string{KeyItems, KeyExtends, KeyType, KeyDisallow} {
		if v, ok := model.Lookup(node, key); ok {
			addEach(v, key)
		}
	}
	if v, ok := model.Lookup(node, KeyAdditionalProperties); ok {
		add(v, KeyAdditionalProperties)
	}
	return out
}

func descend(at jptr.Pointer, tokens ...string) jptr.Pointer {
	next := make(jptr.Pointer, 0, len(at)+len(tokens))
	next = append(next, at...)
	return append(next, tokens...)
}
