package value

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
)

// DecodeYAML decodes every document of a YAML stream, keeping mapping order.
func DecodeYAML(r io.Reader) ([]Value, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())

	var docs []Value
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}

		v, err := FromGo(doc)
		if err != nil {
			return nil, fmt.Errorf("decode YAML document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, v)
	}
}

// MarshalYAML renders objects as yaml.MapSlice so member order survives.
func (v Value) MarshalYAML() (any, error) {
	return v.toYAML(), nil
}

func (v Value) toYAML() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		if i, err := v.number.Int64(); err == nil {
			return i
		}
		f, err := strconv.ParseFloat(v.number.String(), 64)
		if err != nil {
			return v.number.String()
		}
		return f
	case KindString:
		return v.text
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.data)
	case KindArray:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.toYAML())
		}
		return out
	case KindObject:
		out := make(yaml.MapSlice, 0, len(v.members))
		for _, m := range v.members {
			out = append(out, yaml.MapItem{Key: m.Key, Value: m.Value.toYAML()})
		}
		return out
	default:
		return nil
	}
}

// EncodeYAML renders v as a YAML document.
func EncodeYAML(v Value) ([]byte, error) {
	payload, err := yaml.Marshal(v.toYAML())
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return payload, nil
}
