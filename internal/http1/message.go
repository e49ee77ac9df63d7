// Package http1 parses and renders HTTP/1.1 messages in their textual wire
// form (RFC 9112). It is the bridge between the HTTP/1.1 exchanges that
// Binary HTTP messages are usually described with and the binary encoding.
//
// Responses may be preceded by any number of interim (1xx) responses, which
// are kept in order.
package http1

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformed is the cause of every parse failure.
var ErrMalformed = errors.New("http1: malformed message")

// Header is a single header key-value pair, case preserved.
type Header struct {
	Key   string
	Value string
}

// Request is an HTTP/1.1 request.
type Request struct {
	Method  string
	Target  string // request-target in any of the four RFC 9112 forms
	Version string
	Headers []Header
	Body    []byte
}

// Interim is a 1xx response that precedes the final response.
type Interim struct {
	StatusCode int
	Reason     string
	Headers    []Header
}

// Response is an HTTP/1.1 response with its interim responses.
type Response struct {
	Version    string
	Interim    []Interim
	StatusCode int
	Reason     string
	Headers    []Header
	Body       []byte
}

// get returns the first header value for key (case-insensitive).
func get(headers []Header, key string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

// contentLength returns the Content-Length value, or -1 if absent.
func contentLength(headers []Header) (int, error) {
	v, ok := get(headers, "Content-Length")
	if !ok {
		return -1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrMalformed, "invalid Content-Length %q", v)
	}
	return n, nil
}

// isChunked reports whether Transfer-Encoding contains "chunked".
func isChunked(headers []Header) bool {
	v, _ := get(headers, "Transfer-Encoding")
	return strings.Contains(strings.ToLower(v), "chunked")
}

// withoutTransferEncoding drops Transfer-Encoding once the body is decoded.
func withoutTransferEncoding(headers []Header) []Header {
	out := headers[:0:0]
	for _, h := range headers {
		if !strings.EqualFold(h.Key, "Transfer-Encoding") {
			out = append(out, h)
		}
	}
	return out
}
