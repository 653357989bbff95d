package wm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// NormalizeI3Tree rewrites an i3 GET_TREE document into the sway layout:
// dock areas are dropped, the workspaces held by each output's "content"
// container become direct children of the output, and the internal __i3
// output is removed. Fields the rewrite does not touch are preserved.
func NormalizeI3Tree(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse i3 tree: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse i3 tree: unexpected data after the root object")
	}
	normalizeNode(root)
	out, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode normalised tree: %w", err)
	}
	return out, nil
}

func normalizeNode(n map[string]any) {
	children, ok := n["nodes"].([]any)
	if !ok {
		return
	}
	typ, _ := n["type"].(string)

	kept := make([]any, 0, len(children))
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			kept = append(kept, c)
			continue
		}
		childType, _ := child["type"].(string)
		switch {
		case childType == "dockarea":
			continue
		case typ == "root" && childType == "output" && child["name"] == "__i3":
			continue
		case typ == "output" && childType == "con":
			if grand, ok := child["nodes"].([]any); ok {
				kept = append(kept, grand...)
			}
			continue
		}
		kept = append(kept, child)
	}
	for _, c := range kept {
		if child, ok := c.(map[string]any); ok {
			normalizeNode(child)
		}
	}
	n["nodes"] = kept
}
