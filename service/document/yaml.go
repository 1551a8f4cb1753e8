package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument holds every document of a stream. Fields are read and set in
// the first one; the rest are re-encoded untouched.
type yamlDocument struct {
	docs []*yaml.Node
}

func parseYAML(data []byte) (*yamlDocument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if len(docs) == 0 || docs[0].Kind != yaml.DocumentNode || len(docs[0].Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrNotMapping)
	}
	if root := resolveAlias(docs[0].Content[0]); root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrNotMapping, yamlKind(root))
	}
	return &yamlDocument{docs: docs}, nil
}

func (d *yamlDocument) mapping() *yaml.Node {
	return resolveAlias(d.docs[0].Content[0])
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar (" + n.ShortTag() + ")"
	default:
		return "empty"
	}
}

// valueIndex returns the index in m.Content of the value stored under key, or -1.
func valueIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i + 1
		}
	}
	return -1
}

func (d *yamlDocument) Lookup(path []string) (any, bool) {
	cur := d.mapping()
	for _, key := range path {
		if cur.Kind != yaml.MappingNode {
			return nil, false
		}
		idx := valueIndex(cur, key)
		if idx < 0 {
			return nil, false
		}
		cur = resolveAlias(cur.Content[idx])
	}
	if cur.Kind == yaml.ScalarNode {
		if cur.ShortTag() == "!!str" {
			return cur.Value, true
		}
		var v any
		if err := cur.Decode(&v); err != nil {
			return cur.Value, true
		}
		return v, true
	}
	return cur, true
}

func (d *yamlDocument) SetString(path []string, value string) error {
	if len(path) == 0 {
		return errors.New("empty field path")
	}
	m := d.mapping()
	for i, key := range path[:len(path)-1] {
		idx := valueIndex(m, key)
		if idx < 0 {
			child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			m.Content = append(m.Content, stringNode(key), child)
			m = child
			continue
		}
		child := resolveAlias(m.Content[idx])
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: %q is %s", ErrNotMapping, joinPath(path[:i+1]), yamlKind(child))
		}
		if m.Content[idx].Kind == yaml.AliasNode || d.hasAliases(child) {
			return fmt.Errorf("%w: %q", ErrSharedValue, joinPath(path[:i+1]))
		}
		m = child
	}

	key := path[len(path)-1]
	idx := valueIndex(m, key)
	if idx < 0 {
		m.Content = append(m.Content, stringNode(key), stringNode(value))
		return nil
	}
	existing := m.Content[idx]
	if existing.Anchor != "" {
		d.detachAliases(existing)
	}
	if existing.Kind == yaml.ScalarNode {
		// The !!str tag makes the encoder quote values that would re-read as numbers.
		existing.Tag = "!!str"
		existing.Value = value
		return nil
	}
	replacement := stringNode(value)
	replacement.LineComment = m.Content[idx].LineComment
	m.Content[idx] = replacement
	return nil
}

// walk visits every node of every document without following aliases.
func (d *yamlDocument) walk(fn func(n *yaml.Node)) {
	var visit func(n *yaml.Node)
	visit = func(n *yaml.Node) {
		fn(n)
		for _, c := range n.Content {
			visit(c)
		}
	}
	for _, doc := range d.docs {
		visit(doc)
	}
}

func (d *yamlDocument) hasAliases(target *yaml.Node) bool {
	if target.Anchor == "" {
		return false
	}
	found := false
	d.walk(func(n *yaml.Node) {
		if n.Kind == yaml.AliasNode && n.Alias == target {
			found = true
		}
	})
	return found
}

// detachAliases turns every alias of target into a copy of its current value,
// so later edits to target leave those fields alone.
func (d *yamlDocument) detachAliases(target *yaml.Node) {
	snapshot := *target
	snapshot.Anchor = ""
	d.walk(func(n *yaml.Node) {
		if n.Kind != yaml.AliasNode || n.Alias != target {
			return
		}
		c := snapshot
		c.HeadComment, c.LineComment, c.FootComment = n.HeadComment, n.LineComment, n.FootComment
		*n = c
	})
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func (d *yamlDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range d.docs {
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
