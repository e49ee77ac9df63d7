package bhttp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shapestone/shape-bhttp/internal/http1"
)

// DefaultScheme is the scheme given to HTTP/1.1 requests whose target does
// not name one.
const DefaultScheme = "https"

// FromHTTP1 converts an HTTP/1.1 message in wire form to a Message.
// Data starting with "HTTP/" is a response (with any leading 1xx interim
// responses); anything else is a request.
//
// Request targets map to control data as follows:
//
//	/path?query                  scheme "https", authority "", path "/path?query"
//	https://host/path            scheme "https", authority "host", path "/path"
//	*                            scheme "https", authority "", path "*"
//	host:443 (CONNECT)           scheme "", authority "host:443", path ""
//
// Header fields keep their order; names are lowercased. A chunked body is
// decoded and Transfer-Encoding dropped.
func FromHTTP1(data []byte) (*Message, error) {
	if bytes.HasPrefix(data, []byte("HTTP/")) {
		return fromHTTP1Response(data)
	}
	return fromHTTP1Request(data)
}

func fromHTTP1Request(data []byte) (*Message, error) {
	req, err := http1.ParseRequest(data)
	if err != nil {
		return nil, fmt.Errorf("bhttp: %w", err)
	}
	return NewRequestBuilder(requestTarget(req.Method, req.Target)).
		SetHeaderFields(fromHTTP1Headers(req.Headers)).
		SetContent(req.Body).
		Build()
}

func fromHTTP1Response(data []byte) (*Message, error) {
	resp, err := http1.ParseResponse(data)
	if err != nil {
		return nil, fmt.Errorf("bhttp: %w", err)
	}

	rb := NewResponseControlDataBuilder().SetFinalStatusCode(resp.StatusCode)
	for _, ir := range resp.Interim {
		info, err := NewInformativeResponse(ir.StatusCode, fromHTTP1Headers(ir.Headers))
		if err != nil {
			return nil, err
		}
		rb.AddInformativeResponse(info)
	}
	ctrl, err := rb.Build()
	if err != nil {
		return nil, err
	}

	return NewResponseBuilder(ctrl).
		SetHeaderFields(fromHTTP1Headers(resp.Headers)).
		SetContent(resp.Body).
		Build()
}

// requestTarget splits an RFC 9112 request-target into control data.
func requestTarget(method, target string) RequestControlData {
	c := RequestControlData{Method: method, Scheme: DefaultScheme, Path: target}

	switch {
	case strings.HasPrefix(target, "/") || target == "*":
		// origin-form, asterisk-form
	case method == "CONNECT":
		c.Scheme, c.Authority, c.Path = "", target, ""
	default:
		if scheme, rest, ok := strings.Cut(target, "://"); ok {
			c.Scheme = strings.ToLower(scheme)
			c.Authority, c.Path = rest, "/"
			if i := strings.IndexAny(rest, "/?"); i >= 0 {
				c.Authority, c.Path = rest[:i], rest[i:]
				if c.Path[0] == '?' {
					c.Path = "/" + c.Path
				}
			}
		}
	}
	return c
}

func fromHTTP1Headers(headers []http1.Header) Fields {
	var fb FieldsBuilder
	for _, h := range headers {
		fb.Append(h.Key, h.Value)
	}
	return fb.Build()
}

func toHTTP1Headers(f Fields) []http1.Header {
	if f.Len() == 0 {
		return nil
	}
	headers := make([]http1.Header, f.Len())
	for i, e := range f.entries {
		headers[i] = http1.Header{Key: e.Name, Value: e.Value}
	}
	return headers
}

// HTTP1 renders m as an HTTP/1.1 message.
//
// Requests use origin-form (authority-form for CONNECT); a non-empty
// authority becomes a Host field when none is present. Responses emit each
// informative response before the final one. Content-Length is added when
// there is content and no such field; with a chunked Transfer-Encoding field
// the content is sent as a single chunk.
//
// Field names and values, the method and the path are validated, and an
// error is returned for anything that would break the line structure.
func (m *Message) HTTP1() ([]byte, error) {
	switch c := m.controlData.(type) {
	case RequestControlData:
		req := &http1.Request{
			Method:  c.Method,
			Target:  c.Path,
			Headers: toHTTP1Headers(m.headerFields),
			Body:    m.content,
		}
		if req.Target == "" {
			req.Target = c.Authority
		}
		if c.Authority != "" && !m.headerFields.Has("Host") && c.Method != "CONNECT" {
			req.Headers = append([]http1.Header{{Key: "host", Value: c.Authority}}, req.Headers...)
		}
		out, err := http1.AppendRequest(nil, req)
		if err != nil {
			return nil, fmt.Errorf("bhttp: %w", err)
		}
		return out, nil

	case ResponseControlData:
		resp := &http1.Response{
			StatusCode: c.finalStatus,
			Headers:    toHTTP1Headers(m.headerFields),
			Body:       m.content,
		}
		for _, ir := range c.informative {
			resp.Interim = append(resp.Interim, http1.Interim{
				StatusCode: ir.statusCode,
				Headers:    toHTTP1Headers(ir.fields),
			})
		}
		out, err := http1.AppendResponse(nil, resp)
		if err != nil {
			return nil, fmt.Errorf("bhttp: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("bhttp: HTTP1: unsupported control data %T", m.controlData)
}
