package bhttp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse decodes a Binary HTTP message into an AST.
// See MessageToNode for the node layout.
func Parse(data []byte) (ast.SchemaNode, error) {
	m, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return MessageToNode(m), nil
}

// ParseReader reads all data from r and parses it as a Binary HTTP message into an AST.
func ParseReader(r io.Reader) (ast.SchemaNode, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Parse(buf.Bytes())
}

// Render converts an AST node (from Parse or MessageToNode) back to Binary
// HTTP bytes. The node must be an ObjectNode with a "type" property of
// "request" or "response".
func Render(node ast.SchemaNode) ([]byte, error) {
	m, err := NodeToMessage(node)
	if err != nil {
		return nil, fmt.Errorf("bhttp: Render: %w", err)
	}
	return Marshal(m)
}
