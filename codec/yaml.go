/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/registry"
)

// EncodeYAML returns the registry as a YAML mapping in catalog order. Scalars
// are tagged so that every value reads back as its declared type.
func EncodeYAML(r *registry.Registry) ([]byte, error) {
	doc, err := Encode(r)
	if err != nil {
		return nil, err
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range memberOrder(doc) {
		v := &yaml.Node{Kind: yaml.ScalarNode}
		switch x := doc[name].(type) {
		case bool:
			v.Tag, v.Value = "!!bool", strconv.FormatBool(x)
		case int:
			v.Tag, v.Value = "!!int", strconv.Itoa(x)
		case float64:
			v.Tag, v.Value = "!!float", formatDouble(x)
		case string:
			v.Tag, v.Value = "!!str", x
		default:
			return nil, errors.NewInvalidStateError(name, "encode yaml")
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, v)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML applies a YAML mapping with the same typing rules as JSON:
// !!bool, !!int, !!float and !!str scalars stand for boolean, integer,
// floating and string members.
func DecodeYAML(r *registry.Registry, data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.NewParseError("invalid YAML text", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return errors.NewParseError("empty YAML document", nil)
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return errors.NewParseError("expected a YAML mapping", nil)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		v, err := yamlValue(mapping.Content[i+1])
		if err != nil {
			return err
		}
		if err := decodeMember(r, mapping.Content[i].Value, v); err != nil {
			return err
		}
	}
	return nil
}

func yamlValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return []any{}, nil
	case yaml.MappingNode:
		return map[string]any{}, nil
	}

	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.NewParseError(fmt.Sprintf("line %d", n.Line), err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, errors.NewParseError(fmt.Sprintf("line %d", n.Line), err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.NewParseError(fmt.Sprintf("line %d", n.Line), err)
		}
		return f, nil
	case "!!null":
		return nil, nil
	}
	return n.Value, nil
}
