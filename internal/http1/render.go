package http1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

const defaultVersion = "HTTP/1.1"

// AppendRequest appends the HTTP/1.1 wire form of req to buf.
// Content-Length is added when a body is present and neither
// Content-Length nor chunked Transfer-Encoding is set. A chunked body is
// written as a single chunk.
//
// The method must be a token, the target must not contain whitespace or
// control bytes, and every header must pass httpguts validation, so no
// input can add lines to the head.
func AppendRequest(buf []byte, req *Request) ([]byte, error) {
	if req.Method == "" {
		return nil, errors.New("http1: request method is empty")
	}
	if !httpguts.ValidHeaderFieldName(req.Method) {
		return nil, errors.Errorf("http1: invalid request method %q", req.Method)
	}
	if req.Target == "" {
		return nil, errors.New("http1: request target is empty")
	}
	if !validToken(req.Target) {
		return nil, errors.Errorf("http1: invalid request target %q", req.Target)
	}

	version, err := versionOrDefault(req.Version)
	if err != nil {
		return nil, err
	}
	if err := validateHeaders(req.Headers); err != nil {
		return nil, err
	}

	buf = appendRequestLine(buf, req.Method, req.Target, version)
	buf = appendHead(buf, req.Headers, req.Body)
	return appendBody(buf, req.Headers, req.Body), nil
}

// AppendResponse appends the HTTP/1.1 wire form of resp, interim responses
// first, to buf. Empty reasons are filled from net/http.StatusText.
// Headers and reasons are validated as in AppendRequest.
func AppendResponse(buf []byte, resp *Response) ([]byte, error) {
	version, err := versionOrDefault(resp.Version)
	if err != nil {
		return nil, err
	}
	for _, ir := range resp.Interim {
		if err := validateStatus(ir.StatusCode, ir.Reason); err != nil {
			return nil, err
		}
		if err := validateHeaders(ir.Headers); err != nil {
			return nil, err
		}
	}
	if err := validateStatus(resp.StatusCode, resp.Reason); err != nil {
		return nil, err
	}
	if err := validateHeaders(resp.Headers); err != nil {
		return nil, err
	}

	for _, ir := range resp.Interim {
		buf = appendStatusLine(buf, version, ir.StatusCode, ir.Reason)
		buf = appendHeaders(buf, ir.Headers)
		buf = appendCRLF(buf)
	}

	buf = appendStatusLine(buf, version, resp.StatusCode, resp.Reason)
	buf = appendHead(buf, resp.Headers, resp.Body)
	return appendBody(buf, resp.Headers, resp.Body), nil
}

func versionOrDefault(version string) (string, error) {
	if version == "" {
		return defaultVersion, nil
	}
	if !strings.HasPrefix(version, "HTTP/") || !validToken(version) {
		return "", errors.Errorf("http1: invalid version %q", version)
	}
	return version, nil
}

func validateStatus(code int, reason string) error {
	if code < 100 || code > 999 {
		return errors.Errorf("http1: invalid status code %d", code)
	}
	if strings.ContainsAny(reason, "\r\n") {
		return errors.Errorf("http1: invalid reason phrase %q", reason)
	}
	return nil
}

func validateHeaders(headers []Header) error {
	for _, h := range headers {
		if !httpguts.ValidHeaderFieldName(h.Key) {
			return errors.Errorf("http1: invalid header field name %q", h.Key)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return errors.Errorf("http1: invalid header field value for %q", h.Key)
		}
	}
	return nil
}

// validToken reports whether s has no whitespace or control bytes.
func validToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c <= ' ' || c == 0x7f {
			return false
		}
	}
	return true
}

// appendHead appends headers, an automatic Content-Length if needed, and
// the empty line ending the head.
func appendHead(buf []byte, headers []Header, body []byte) []byte {
	buf = appendHeaders(buf, headers)
	_, hasLength := get(headers, "Content-Length")
	if len(body) > 0 && !hasLength && !isChunked(headers) {
		buf = append(buf, "Content-Length: "...)
		buf = strconv.AppendInt(buf, int64(len(body)), 10)
		buf = appendCRLF(buf)
	}
	return appendCRLF(buf)
}

// appendBody appends body, as one chunk plus the last chunk when the
// headers select chunked transfer coding.
func appendBody(buf []byte, headers []Header, body []byte) []byte {
	if !isChunked(headers) {
		return append(buf, body...)
	}
	if len(body) > 0 {
		buf = strconv.AppendInt(buf, int64(len(body)), 16)
		buf = appendCRLF(buf)
		buf = append(buf, body...)
		buf = appendCRLF(buf)
	}
	buf = append(buf, '0')
	return appendCRLF(appendCRLF(buf))
}

// appendHeaders appends all headers in "Key: Value\r\n" format.
func appendHeaders(buf []byte, headers []Header) []byte {
	for _, h := range headers {
		buf = append(buf, h.Key...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Value...)
		buf = appendCRLF(buf)
	}
	return buf
}

func appendCRLF(buf []byte) []byte {
	return append(buf, '\r', '\n')
}

// appendRequestLine appends "METHOD TARGET VERSION\r\n" to buf.
func appendRequestLine(buf []byte, method, target, version string) []byte {
	buf = append(buf, method...)
	buf = append(buf, ' ')
	buf = append(buf, target...)
	buf = append(buf, ' ')
	buf = append(buf, version...)
	return appendCRLF(buf)
}

// appendStatusLine appends "VERSION STATUS REASON\r\n" to buf.
func appendStatusLine(buf []byte, version string, statusCode int, reason string) []byte {
	if reason == "" {
		reason = http.StatusText(statusCode)
	}
	buf = append(buf, version...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(statusCode), 10)
	buf = append(buf, ' ')
	buf = append(buf, reason...)
	return appendCRLF(buf)
}
