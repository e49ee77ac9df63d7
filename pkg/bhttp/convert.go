package bhttp

import (
	"fmt"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// MessageToNode converts a Message to an AST ObjectNode.
//
// Requests:
//
//	{ "type": "request", "method": "GET", "scheme": "https",
//	  "authority": "", "path": "/hello.txt",
//	  "headers": [{"key": "host", "value": "www.example.com"}, ...],
//	  "content": "..." }
//
// Responses:
//
//	{ "type": "response", "statusCode": 200,
//	  "informational": [{"statusCode": 103, "headers": [...]}, ...],
//	  "headers": [...], "content": "..." }
//
// "content" is omitted when the message has none.
func MessageToNode(m *Message) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"headers": fieldsToNode(m.headerFields),
	}

	switch c := m.controlData.(type) {
	case RequestControlData:
		props["type"] = ast.NewLiteralNode("request", zeroPos)
		props["method"] = ast.NewLiteralNode(c.Method, zeroPos)
		props["scheme"] = ast.NewLiteralNode(c.Scheme, zeroPos)
		props["authority"] = ast.NewLiteralNode(c.Authority, zeroPos)
		props["path"] = ast.NewLiteralNode(c.Path, zeroPos)
	case ResponseControlData:
		props["type"] = ast.NewLiteralNode("response", zeroPos)
		props["statusCode"] = ast.NewLiteralNode(int64(c.finalStatus), zeroPos)
		interim := make([]ast.SchemaNode, len(c.informative))
		for i, ir := range c.informative {
			interim[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
				"statusCode": ast.NewLiteralNode(int64(ir.statusCode), zeroPos),
				"headers":    fieldsToNode(ir.fields),
			}, zeroPos)
		}
		props["informational"] = ast.NewArrayDataNode(interim, zeroPos)
	}

	if m.content != nil {
		props["content"] = ast.NewLiteralNode(string(m.content), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToMessage converts an AST ObjectNode, as produced by MessageToNode or
// Parse, back to a Message.
func NodeToMessage(node ast.SchemaNode) (*Message, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	var b *MessageBuilder
	switch msgType := literalString(props["type"]); msgType {
	case "request":
		b = NewRequestBuilder(RequestControlData{
			Method:    literalString(props["method"]),
			Scheme:    literalString(props["scheme"]),
			Authority: literalString(props["authority"]),
			Path:      literalString(props["path"]),
		})

	case "response":
		rb := NewResponseControlDataBuilder().SetFinalStatusCode(nodeToStatusCode(props["statusCode"]))
		if v, ok := props["informational"]; ok {
			arr, ok := v.(*ast.ArrayDataNode)
			if !ok {
				return nil, fmt.Errorf("expected ArrayDataNode for informational, got %T", v)
			}
			for _, elem := range arr.Elements() {
				ir, err := nodeToInformative(elem)
				if err != nil {
					return nil, err
				}
				rb.AddInformativeResponse(ir)
			}
		}
		ctrl, err := rb.Build()
		if err != nil {
			return nil, err
		}
		b = NewResponseBuilder(ctrl)

	default:
		return nil, fmt.Errorf("unknown message type %q", msgType)
	}

	if v, ok := props["headers"]; ok {
		fields, err := nodeToFields(v)
		if err != nil {
			return nil, err
		}
		b.SetHeaderFields(fields)
	}
	if v, ok := props["content"]; ok {
		b.SetContent([]byte(literalString(v)))
	}
	return b.Build()
}

// NodeToInterface converts an AST node to native Go types.
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToInterface(v)
		}
		return m
	default:
		return nil
	}
}

func fieldsToNode(f Fields) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(f.entries))
	for i, e := range f.entries {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(e.Name, zeroPos),
			"value": ast.NewLiteralNode(e.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func nodeToFields(node ast.SchemaNode) (Fields, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return Fields{}, fmt.Errorf("expected ArrayDataNode for headers, got %T", node)
	}
	var fb FieldsBuilder
	for _, elem := range arr.Elements() {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		fb.Append(literalString(props["key"]), literalString(props["value"]))
	}
	return fb.Build(), nil
}

func nodeToInformative(node ast.SchemaNode) (InformativeResponse, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return InformativeResponse{}, fmt.Errorf("expected ObjectNode for informational response, got %T", node)
	}
	props := obj.Properties()
	fields := EmptyFields
	if v, ok := props["headers"]; ok {
		var err error
		if fields, err = nodeToFields(v); err != nil {
			return InformativeResponse{}, err
		}
	}
	return NewInformativeResponse(nodeToStatusCode(props["statusCode"]), fields)
}

// literalString returns the string value of a literal node, or "".
func literalString(node ast.SchemaNode) string {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return ""
	}
	s, _ := lit.Value().(string)
	return s
}

// nodeToStatusCode extracts the status code from a literal node.
func nodeToStatusCode(node ast.SchemaNode) int {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return 0
	}
	switch code := lit.Value().(type) {
	case int64:
		return int(code)
	case int:
		return code
	case float64:
		return int(code)
	case string:
		n, _ := strconv.Atoi(code)
		return n
	}
	return 0
}
