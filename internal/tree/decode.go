package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is the sentinel wrapped by every Decode failure.
var ErrMalformed = errors.New("malformed layout tree")

// DecodeError describes where in the document decoding failed.
type DecodeError struct {
	Path   string // e.g. "nodes[0].nodes[2]"; empty for the root
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	where := e.Path
	if where == "" {
		where = "root"
	}
	msg := fmt.Sprintf("%v at %s: %s", ErrMalformed, where, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// rawNode mirrors the fields the model reads. Pointers distinguish a missing
// field from its zero value.
type rawNode struct {
	Type    *string            `json:"type"`
	ID      *json.Number       `json:"id"`
	Focused *bool              `json:"focused"`
	Nodes   *[]json.RawMessage `json:"nodes"`
}

// Decode builds a tree from a GET_TREE document. Unknown fields are ignored;
// an unknown node type or a missing required field is an error wrapping
// ErrMalformed.
func Decode(data []byte) (*Node, error) {
	return decodeNode(data, "")
}

func decodeNode(data []byte, path string) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &DecodeError{Path: path, Reason: "expected a JSON object"}
	}

	// json.Unmarshal rejects anything after the object; ID is a json.Number
	// so large ids stay exact.
	var raw rawNode
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &DecodeError{Path: path, Reason: "invalid JSON", Err: err}
	}

	if raw.Type == nil {
		return nil, &DecodeError{Path: path, Reason: `missing "type"`}
	}
	kind := Kind(*raw.Type)
	if !kind.Valid() {
		return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unrecognized node type %q", *raw.Type)}
	}
	if raw.Nodes == nil {
		return nil, &DecodeError{Path: path, Reason: `missing "nodes"`}
	}

	node := &Node{Kind: kind}
	if kind == KindCon {
		if raw.ID == nil {
			return nil, &DecodeError{Path: path, Reason: `con without "id"`}
		}
		id, err := strconv.ParseInt(raw.ID.String(), 10, 64)
		if err != nil {
			return nil, &DecodeError{Path: path, Reason: "con id is not an integer", Err: err}
		}
		if raw.Focused == nil {
			return nil, &DecodeError{Path: path, Reason: `con without "focused"`}
		}
		node.ID = id
		node.Focused = *raw.Focused
	}

	if len(*raw.Nodes) > 0 {
		node.Nodes = make([]*Node, 0, len(*raw.Nodes))
	}
	for i, childData := range *raw.Nodes {
		child, err := decodeNode(childData, childPath(path, i))
		if err != nil {
			return nil, err
		}
		node.Nodes = append(node.Nodes, child)
	}
	return node, nil
}

func childPath(parent string, i int) string {
	if parent == "" {
		return fmt.Sprintf("nodes[%d]", i)
	}
	return fmt.Sprintf("%s.nodes[%d]", parent, i)
}
