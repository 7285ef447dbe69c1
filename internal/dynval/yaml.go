package dynval

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Custom YAML tags understood by the adapter.
const (
	TagTuple   = "!tuple"
	TagFloat32 = "!f32"
	TagInt32   = "!i32"
)

// FromYAML decodes a YAML document. An empty document yields an empty map.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 {
		return MapOf(), nil
	}
	return FromNode(&doc)
}

// FromNode converts a yaml.v3 node tree. Mapping order is preserved.
func FromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return MapOf(), nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := FromNode(n.Content[i])
			if err != nil {
				return Value{}, err
			}
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return Value{}, fmt.Errorf("key %s: %w", k, err)
			}
			entries = append(entries, Entry{Key: k, Value: v})
		}
		return Value{kind: MapKind, entries: entries}, nil
	case yaml.SequenceNode:
		return sequenceFromNode(n)
	}
	return Value{}, fmt.Errorf("line %d: unknown yaml node kind %d", n.Line, n.Kind)
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch tag := n.ShortTag(); tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(f), nil
	case "!!str", "!!timestamp", "!!binary":
		return String(n.Value), nil
	default:
		return Value{}, fmt.Errorf("line %d: %w %q on scalar", n.Line, ErrUnsupportedTag, tag)
	}
}

func sequenceFromNode(n *yaml.Node) (Value, error) {
	items := make([]Value, len(n.Content))
	for i, c := range n.Content {
		v, err := FromNode(c)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}

	var force ElemType
	switch tag := n.ShortTag(); tag {
	case "!!seq":
	case TagTuple:
		return TupleOf(items...), nil
	case TagFloat32:
		force = ElemFloat32
	case TagInt32:
		force = ElemInt32
	default:
		return Value{}, fmt.Errorf("line %d: %w %q on sequence", n.Line, ErrUnsupportedTag, tag)
	}

	v, err := FromSequence(items, force)
	if err != nil {
		return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}
