package http1

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"

	"github.com/shapestone/shape-bhttp/internal/tokenizer"
)

// scanner walks the head of a message one line at a time.
type scanner struct {
	data []byte
	pos  int
	line int // 1-indexed line number of the last line read
}

// next returns the next line without its CRLF or bare LF ending.
func (s *scanner) next() (string, error) {
	if s.pos >= len(s.data) {
		return "", errors.Wrapf(ErrMalformed, "unexpected end of input after line %d", s.line)
	}
	s.line++
	rest := s.data[s.pos:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		s.pos = len(s.data)
		return string(rest), nil
	}
	s.pos += i + 1
	return string(bytes.TrimSuffix(rest[:i], []byte{'\r'})), nil
}

// rest returns the unread bytes.
func (s *scanner) rest() []byte {
	return s.data[s.pos:]
}

// headers reads field lines up to and including the empty line.
func (s *scanner) headers() ([]Header, error) {
	var headers []Header
	for {
		line, err := s.next()
		if err != nil {
			return nil, errors.Wrap(err, "reading headers")
		}
		if line == "" {
			return headers, nil
		}
		key, value, ok := tokenizer.FieldLine(line)
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "line %d: malformed header line %q", s.line, line)
		}
		headers = append(headers, Header{Key: key, Value: value})
	}
}

// ParseRequest parses an HTTP/1.1 request. A request without Content-Length
// or chunked Transfer-Encoding has no body.
func ParseRequest(data []byte) (*Request, error) {
	s := &scanner{data: data}

	line, err := s.next()
	if err != nil {
		return nil, errors.Wrap(err, "reading request line")
	}
	words := tokenizer.StartLine(line, 3)
	if len(words) != 3 || words[0] == "" || words[1] == "" {
		return nil, errors.Wrapf(ErrMalformed, "malformed request line %q", line)
	}

	headers, err := s.headers()
	if err != nil {
		return nil, err
	}

	req := &Request{Method: words[0], Target: words[1], Version: words[2], Headers: headers}
	req.Body, req.Headers, err = body(s.rest(), headers, false)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ParseResponse parses an HTTP/1.1 response. Leading 1xx responses are
// collected as interim responses. A final response without Content-Length
// or chunked Transfer-Encoding takes the rest of the input as its body.
func ParseResponse(data []byte) (*Response, error) {
	s := &scanner{data: data}
	resp := &Response{}

	for {
		line, err := s.next()
		if err != nil {
			return nil, errors.Wrap(err, "reading status line")
		}
		version, code, reason, err := parseStatusLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", s.line)
		}
		headers, err := s.headers()
		if err != nil {
			return nil, err
		}

		if code >= 100 && code <= 199 {
			resp.Interim = append(resp.Interim, Interim{StatusCode: code, Reason: reason, Headers: headers})
			continue
		}

		resp.Version = version
		resp.StatusCode = code
		resp.Reason = reason
		resp.Body, resp.Headers, err = body(s.rest(), headers, true)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
}

func parseStatusLine(line string) (version string, code int, reason string, err error) {
	words := tokenizer.StartLine(line, 3)
	if len(words) < 2 || len(words[0]) < len("HTTP/") || words[0][:5] != "HTTP/" {
		return "", 0, "", errors.Wrapf(ErrMalformed, "malformed status line %q", line)
	}
	code, convErr := strconv.Atoi(words[1])
	if convErr != nil || len(words[1]) != 3 {
		return "", 0, "", errors.Wrapf(ErrMalformed, "invalid status code %q", words[1])
	}
	if len(words) == 3 {
		reason = words[2]
	}
	return words[0], code, reason, nil
}

// body extracts the message body from rest according to the framing headers.
// Chunked bodies are decoded and Transfer-Encoding is dropped from the
// returned headers.
func body(rest []byte, headers []Header, toEOF bool) ([]byte, []Header, error) {
	if isChunked(headers) {
		b, err := Dechunk(rest)
		if err != nil {
			return nil, nil, err
		}
		return b, withoutTransferEncoding(headers), nil
	}

	n, err := contentLength(headers)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case n > len(rest):
		return nil, nil, errors.Wrapf(ErrMalformed, "body truncated: Content-Length %d, %d bytes available", n, len(rest))
	case n > 0:
		return bytes.Clone(rest[:n]), headers, nil
	case n == 0:
		return nil, headers, nil
	}

	if toEOF && len(rest) > 0 {
		return bytes.Clone(rest), headers, nil
	}
	return nil, headers, nil
}
