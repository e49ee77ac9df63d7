package bhttp

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder reads a Binary HTTP message from an input stream.
//
// A known-length message followed by padding has no terminator, so the
// decoder consumes the stream to EOF and decodes it as a single message.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads r to EOF and decodes the message.
func (dec *Decoder) Decode() (*Message, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(dec.r); err != nil {
		return nil, fmt.Errorf("bhttp: decode: %w", err)
	}
	return Unmarshal(buf.Bytes())
}

// DecodeRequest decodes the stream and fails unless it holds a request.
func (dec *Decoder) DecodeRequest() (*Message, error) {
	m, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	if !m.IsRequest() {
		return nil, fmt.Errorf("bhttp: data is a response but a request was expected")
	}
	return m, nil
}

// DecodeResponse decodes the stream and fails unless it holds a response.
func (dec *Decoder) DecodeResponse() (*Message, error) {
	m, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	if m.IsRequest() {
		return nil, fmt.Errorf("bhttp: data is a request but a response was expected")
	}
	return m, nil
}
