package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	verr "github.com/vhavlena/verischema/pkg/err"
	"sigs.k8s.io/yaml"
)

// Decode converts a JSON or YAML document into the generic value model.
// Objects become map[string]any, arrays []any; integral numbers are decoded
// as int64 and every other number as float64.
//
// Parameters:
//
//	data []byte: The document bytes. JSON is accepted as a subset of YAML.
//
// Returns:
//
//	any: The decoded value.
//	error: ErrDecode wrapping the parser error when the document is malformed.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", verr.ErrDecode)
	}
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", verr.ErrDecode, err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", verr.ErrDecode, err)
	}
	return fromJSONNumbers(raw)
}

// DecodeFile reads the document at path and decodes it with Decode.
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, verr.ErrDecodeFile(path, err)
	}
	v, err := Decode(data)
	if err != nil {
		return nil, verr.ErrDecodeFile(path, err)
	}
	return v, nil
}

// Encode renders v as a YAML document.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(Normalize(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", verr.ErrUnsupportedDocument, err)
	}
	return out, nil
}

// fromJSONNumbers replaces every json.Number in a freshly decoded tree with
// int64 or float64.
func fromJSONNumbers(v any) (any, error) {
	switch tv := v.(type) {
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i, nil
		}
		f, err := tv.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s: %w", verr.ErrDecode, tv, err)
		}
		return f, nil
	case []any:
		for i, item := range tv {
			conv, err := fromJSONNumbers(item)
			if err != nil {
				return nil, err
			}
			tv[i] = conv
		}
		return tv, nil
	case map[string]any:
		for k, item := range tv {
			conv, err := fromJSONNumbers(item)
			if err != nil {
				return nil, fmt.Errorf("model: decode field %s: %w", k, err)
			}
			tv[k] = conv
		}
		return tv, nil
	default:
		return v, nil
	}
}
