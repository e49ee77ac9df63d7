package bhttp

import (
	"github.com/shapestone/shape-bhttp/internal/wire"
)

// String interning for common field names and request tokens.
//
// The Go compiler optimizes map lookups with string([]byte) keys
// to avoid allocating the temporary string (the mapaccess optimization).
// This means intern(fieldNames, someBytes) is zero-alloc for known names.

var requestTokens = map[string]string{
	"GET": "GET", "HEAD": "HEAD", "POST": "POST",
	"PUT": "PUT", "DELETE": "DELETE", "CONNECT": "CONNECT",
	"OPTIONS": "OPTIONS", "TRACE": "TRACE", "PATCH": "PATCH",
	"https": "https", "http": "http",
	"": "", "/": "/", "*": "*",
}

var fieldNames = map[string]string{
	"accept":            "accept",
	"accept-encoding":   "accept-encoding",
	"accept-language":   "accept-language",
	"accept-ranges":     "accept-ranges",
	"age":               "age",
	"authorization":     "authorization",
	"cache-control":     "cache-control",
	"content-encoding":  "content-encoding",
	"content-length":    "content-length",
	"content-type":      "content-type",
	"cookie":            "cookie",
	"date":              "date",
	"etag":              "etag",
	"expires":           "expires",
	"host":              "host",
	"if-modified-since": "if-modified-since",
	"if-none-match":     "if-none-match",
	"last-modified":     "last-modified",
	"link":              "link",
	"location":          "location",
	"origin":            "origin",
	"range":             "range",
	"referer":           "referer",
	"server":            "server",
	"set-cookie":        "set-cookie",
	"user-agent":        "user-agent",
	"vary":              "vary",
	"via":               "via",
	"www-authenticate":  "www-authenticate",
	"x-forwarded-for":   "x-forwarded-for",
}

// intern returns the canonical string for b if table has one.
func intern(table map[string]string, b []byte) string {
	if s, ok := table[string(b)]; ok {
		return s
	}
	return string(b)
}

// readInterned reads a length-prefixed string, interning it through table.
func readInterned(r *wire.Reader, table map[string]string) (string, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return "", err
	}
	b, err := r.ReadExactly(n)
	if err != nil {
		return "", err
	}
	return intern(table, b), nil
}
