package ast

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// MarshalIndentJSON renders the tree as indented JSON, built
// incrementally with sjson.Set rather than a struct tag walk, since
// Node's shape (pointer-cycle-free but recursive) is easiest to grow
// one field at a time.
func (n *Node) MarshalIndentJSON() ([]byte, error) {
	raw, err := n.marshalJSON()
	if err != nil {
		return nil, err
	}
	return pretty.Pretty([]byte(raw)), nil
}

func (n *Node) marshalJSON() (string, error) {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "kind", n.Kind().String())
	if err != nil {
		return "", fmt.Errorf("ast: marshal kind: %w", err)
	}
	if n.Token.Text != "" {
		doc, err = sjson.Set(doc, "text", n.Token.Text)
		if err != nil {
			return "", fmt.Errorf("ast: marshal text: %w", err)
		}
	}
	doc, err = sjson.Set(doc, "virtual", n.IsVirtual)
	if err != nil {
		return "", fmt.Errorf("ast: marshal virtual: %w", err)
	}
	if n.Cached != nil {
		doc, err = sjson.Set(doc, "cached", n.Cached.String())
		if err != nil {
			return "", fmt.Errorf("ast: marshal cached: %w", err)
		}
	}

	if len(n.Children) > 0 {
		doc, err = sjson.SetRaw(doc, "children", "[]")
		if err != nil {
			return "", fmt.Errorf("ast: marshal children: %w", err)
		}
		for i, c := range n.Children {
			childDoc, err := c.marshalJSON()
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("children.%d", i), childDoc)
			if err != nil {
				return "", fmt.Errorf("ast: marshal child %d: %w", i, err)
			}
		}
	}

	return doc, nil
}
