package bhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

// FromHTTPRequest converts a net/http request to a Message. The body is
// read to EOF. Header names are emitted in sorted order so the encoding is
// deterministic; Host comes from r.Host.
func FromHTTPRequest(r *http.Request) (*Message, error) {
	scheme := DefaultScheme
	path := "/"
	if r.URL != nil {
		if r.URL.Scheme != "" {
			scheme = r.URL.Scheme
		}
		path = r.URL.RequestURI()
	}
	authority := r.Host
	if authority == "" && r.URL != nil {
		authority = r.URL.Host
	}

	body, err := readBody(r.Body)
	if err != nil {
		return nil, fmt.Errorf("bhttp: read request body: %w", err)
	}

	return NewRequestBuilder(RequestControlData{
		Method:    r.Method,
		Scheme:    scheme,
		Authority: authority,
		Path:      path,
	}).SetHeaderFields(fromHTTPHeader(r.Header)).SetContent(body).Build()
}

// FromHTTPResponse converts a net/http response to a Message. The body is
// read to EOF but not closed.
func FromHTTPResponse(resp *http.Response) (*Message, error) {
	ctrl, err := NewResponseControlDataBuilder().SetFinalStatusCode(resp.StatusCode).Build()
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bhttp: read response body: %w", err)
	}
	return NewResponseBuilder(ctrl).
		SetHeaderFields(fromHTTPHeader(resp.Header)).
		SetContent(body).
		Build()
}

// HTTPRequest converts a request Message to a net/http client request.
// The URL host is the authority, or the Host field when the authority is
// empty. Field names and values are validated before they reach net/http.
func (m *Message) HTTPRequest() (*http.Request, error) {
	c, ok := m.RequestControlData()
	if !ok {
		return nil, fmt.Errorf("bhttp: HTTPRequest called on a response")
	}
	if !httpguts.ValidHostHeader(c.Authority) {
		return nil, fmt.Errorf("bhttp: invalid authority %q", c.Authority)
	}

	header, err := toHTTPHeader(m.headerFields)
	if err != nil {
		return nil, err
	}
	host := c.Authority
	if host == "" {
		// Origin-form requests carry the authority in the Host field.
		host = header.Get("Host")
		if !httpguts.ValidHostHeader(host) {
			return nil, fmt.Errorf("bhttp: invalid host field %q", host)
		}
	}
	header.Del("Host")

	u := &url.URL{Scheme: c.Scheme, Host: host}
	target, err := url.ParseRequestURI(c.Path)
	if err != nil {
		return nil, fmt.Errorf("bhttp: invalid path %q: %w", c.Path, err)
	}
	u.Path, u.RawPath, u.RawQuery = target.Path, target.RawPath, target.RawQuery

	req, err := http.NewRequest(c.Method, u.String(), bytes.NewReader(m.content))
	if err != nil {
		return nil, fmt.Errorf("bhttp: %w", err)
	}
	req.Header = header
	req.ContentLength = int64(len(m.content))
	return req, nil
}

// HTTPResponse converts a response Message to a net/http response.
// Informative responses are not represented.
func (m *Message) HTTPResponse() (*http.Response, error) {
	c, ok := m.ResponseControlData()
	if !ok {
		return nil, fmt.Errorf("bhttp: HTTPResponse called on a request")
	}
	header, err := toHTTPHeader(m.headerFields)
	if err != nil {
		return nil, err
	}
	return &http.Response{
		Status:        strconv.Itoa(c.finalStatus) + " " + http.StatusText(c.finalStatus),
		StatusCode:    c.finalStatus,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(m.content)),
		ContentLength: int64(len(m.content)),
	}, nil
}

func readBody(body io.Reader) ([]byte, error) {
	if body == nil || body == http.NoBody {
		return nil, nil
	}
	return io.ReadAll(body)
}

func fromHTTPHeader(h http.Header) Fields {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var fb FieldsBuilder
	for _, name := range names {
		for _, v := range h[name] {
			fb.Append(name, v)
		}
	}
	return fb.Build()
}

func toHTTPHeader(f Fields) (http.Header, error) {
	h := make(http.Header, f.Len())
	for _, e := range f.entries {
		if !httpguts.ValidHeaderFieldName(e.Name) {
			return nil, fmt.Errorf("bhttp: invalid header field name %q", e.Name)
		}
		if !httpguts.ValidHeaderFieldValue(e.Value) {
			return nil, fmt.Errorf("bhttp: invalid header field value for %q", e.Name)
		}
		h.Add(e.Name, e.Value)
	}
	return h, nil
}
