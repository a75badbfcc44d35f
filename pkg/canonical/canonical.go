// Package canonical produces a deterministic JSON form of arbitrary values.
//
// Object keys are sorted lexicographically at every depth, arrays keep their
// order, and numbers are carried through untouched as json.Number. The compact
// form (Marshal) is the only input accepted for payload hashing. The indented
// form (MarshalIndent) is derived from the same tree and is for display only.
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Bytes is a compact canonical serialization. Only values of this type can be
// hashed into a payload commitment.
type Bytes []byte

func (b Bytes) String() string {
	return string(b)
}

// Object is a JSON object whose keys are held in sorted order.
type Object struct {
	Keys   []string
	Values map[string]any
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Canonicalize converts v into a tree of *Object, []any, string, json.Number,
// bool and nil. Struct field order and map iteration order have no influence on
// the result.
func Canonicalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value for canonicalization: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode value for canonicalization: %w", err)
	}
	return sortTree(generic), nil
}

func sortTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		values := make(map[string]any, len(t))
		for k, vv := range t {
			keys = append(keys, k)
			values[k] = sortTree(vv)
		}
		sort.Strings(keys)
		return &Object{Keys: keys, Values: values}
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = sortTree(t[i])
		}
		return out
	default:
		return t
	}
}

// Marshal returns the compact canonical serialization of v.
func Marshal(v any) (Bytes, error) {
	tree, err := Canonicalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := encode(&buf, tree); err != nil {
		return nil, err
	}
	return Bytes(buf.Bytes()), nil
}

// MarshalIndent renders v with two space indentation and sorted keys.
func MarshalIndent(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent canonical JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, k := range t.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, t.Values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, vv := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, vv); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeScalar(buf, t)
	}
}

// encodeScalar writes a primitive without HTML escaping so that characters
// such as '&' and '<' appear literally.
func encodeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode canonical value: %w", err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
