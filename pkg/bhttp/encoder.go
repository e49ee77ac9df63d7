package bhttp

import (
	"io"
)

// Encoder writes Binary HTTP messages to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the Binary HTTP encoding of m, including padding, to the stream.
func (enc *Encoder) Encode(m *Message) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	_, err = enc.w.Write(data)
	return err
}
